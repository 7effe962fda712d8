package model

import "time"

// Asset is a piece of equipment with an optional service interval.
type Asset struct {
	ID             uint64        `json:"id"`
	Name           string        `json:"name"`
	Category       *string       `json:"category"`
	AreaType       AssetLocation `json:"area_type"`
	AreaID         *uint64       `json:"area_id"`
	ApartmentID    *uint64       `json:"apartment_id"`
	ContractorID   *uint64       `json:"contractor_id"`
	SerialNumber   *string       `json:"serial_number"`
	InstalledOn    *string       `json:"installed_on"`
	NextDueDate    *string       `json:"next_due_date"`
	IntervalDays   *int          `json:"interval_days"`
	Notes          *string       `json:"notes"`
	AreaName       *string       `json:"area_name"`
	ApartmentUnit  *string       `json:"apartment_unit"`
	ContractorName *string       `json:"contractor_name"`
	CreatedAt      time.Time     `json:"created_at"`
}
