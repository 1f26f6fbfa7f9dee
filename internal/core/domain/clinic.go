package domain

import "time"

// Clinic is a sample-collection site. It owns no relations; pickups reference it.
type Clinic struct {
	ID        string    `json:"id"`
	CNPJ      int64     `json:"cnpj"`
	Name      string    `json:"name"`
	Address   Address   `json:"address"`
	Phone     int64     `json:"phone,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}
