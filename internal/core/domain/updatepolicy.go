package domain

// Entity names a mutable entity type for update-policy lookups.
type Entity string

const (
	EntityUser   Entity = "user"
	EntityClinic Entity = "clinic"
	EntityDriver Entity = "driver"
	EntityPickup Entity = "pickup"
)

// updateAllowLists is the permission table keyed by (entity, role). A field
// name absent from the caller's list rejects the whole update.
var updateAllowLists = map[Entity]map[Role][]string{
	EntityUser: {
		RoleAdmin:  {"name", "cpf", "birthday", "phone", "cnh", "address", "email", "password", "administrator"},
		RoleDriver: {"phone", "cnh", "address", "password"},
	},
	EntityClinic: {
		RoleAdmin:  {"name", "cnpj", "phone", "contact", "address"},
		RoleDriver: {"phone", "contact", "address"},
	},
	EntityDriver: {
		// The driver update route is admin-only; the driver role has no list.
		RoleAdmin: {"region"},
	},
	EntityPickup: {
		RoleAdmin:  {"clinic", "driver", "note", "date", "done"},
		RoleDriver: {"note", "done"},
	},
}

// CheckUpdateAllowed is the pure policy check: every submitted field name
// must be in the allow-list for (entity, role), otherwise the update is
// rejected wholesale. An empty field set is trivially valid.
func CheckUpdateAllowed(entity Entity, role Role, fields []string) error {
	allowed := make(map[string]struct{})
	for _, f := range updateAllowLists[entity][role] {
		allowed[f] = struct{}{}
	}
	for _, f := range fields {
		if _, ok := allowed[f]; !ok {
			return ErrUpdateNotPermitted
		}
	}
	return nil
}
