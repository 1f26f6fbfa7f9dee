package domain

import "time"

// Pickup schedules a sample collection at a clinic by a driver. The photo is
// stored on the same document but excluded from default reads; it is fetched
// and mutated through dedicated photo operations.
type Pickup struct {
	ID        string    `json:"id"`
	ClinicID  string    `json:"clinic"`
	DriverID  string    `json:"driver"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}
