package ports

import "encoding/json"

// Patch is a partial update taken verbatim from the request body. Keeping the
// raw message per field lets the policy check run on the submitted field
// names before anything is decoded or applied.
type Patch map[string]json.RawMessage

// Fields returns the set of submitted field names.
func (p Patch) Fields() []string {
	fields := make([]string, 0, len(p))
	for name := range p {
		fields = append(fields, name)
	}
	return fields
}
