package model

import "time"

// PreventiveSchedule is a recurring upkeep item.  Only active schedules are
// listed.
type PreventiveSchedule struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	CategoryID     *uint64   `json:"category_id"`
	ApartmentID    *uint64   `json:"apartment_id"`
	AreaID         *uint64   `json:"area_id"`
	Frequency      Frequency `json:"frequency"`
	NextDueDate    string    `json:"next_due_date"`
	AssignedTo     *uint64   `json:"assigned_to"`
	Active         bool      `json:"active"`
	CategoryName   *string   `json:"category_name"`
	ApartmentUnit  *string   `json:"apartment_unit"`
	AreaName       *string   `json:"area_name"`
	AssignedToName *string   `json:"assigned_to_name"`
	CreatedAt      time.Time `json:"created_at"`
}
