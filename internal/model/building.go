package model

import "time"

// Apartment is a residential unit.  The set of apartments is regenerated as a
// whole by the reset operation.
type Apartment struct {
	ID         uint64    `json:"id"`
	UnitNumber string    `json:"unit_number"`
	Floor      int       `json:"floor"`
	Label      string    `json:"label"`
	AreaType   string    `json:"area_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// Area is a common or service space (lobby, boiler room, ...).
type Area struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	AreaType    AreaType  `json:"area_type"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category groups tasks by trade (plumbing, electrical, ...).
type Category struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
