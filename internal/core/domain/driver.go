package domain

import "time"

// CityList is one weekday bucket of serviceable cities.
type CityList struct {
	Cities []string `json:"cities" bson:"cities"`
}

// Region holds the seven independent weekday buckets of a driver's coverage.
type Region struct {
	Monday    CityList `json:"monday" bson:"monday"`
	Tuesday   CityList `json:"tuesday" bson:"tuesday"`
	Wednesday CityList `json:"wednesday" bson:"wednesday"`
	Thursday  CityList `json:"thursday" bson:"thursday"`
	Friday    CityList `json:"friday" bson:"friday"`
	Saturday  CityList `json:"saturday" bson:"saturday"`
	Sunday    CityList `json:"sunday" bson:"sunday"`
}

// Driver is a role-extension of a User: exactly one driver record per user
// that has one, created explicitly by an administrator.
type Driver struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Region    Region    `json:"region"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}
