package model

import "time"

// Task is a unit of maintenance work.  Every reference is optional.  DueDate
// is a DateLayout string and is compared by exact equality.
type Task struct {
	ID             uint64     `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	CategoryID     *uint64    `json:"category_id"`
	ApartmentID    *uint64    `json:"apartment_id"`
	AreaID         *uint64    `json:"area_id"`
	ContractorID   *uint64    `json:"contractor_id"`
	AssignedTo     *uint64    `json:"assigned_to"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	TaskType       TaskType   `json:"task_type"`
	DueDate        *string    `json:"due_date"`
	CompletedDate  *string    `json:"completed_date"`
	EstimatedCost  float64    `json:"estimated_cost"`
	ActualCost     *float64   `json:"actual_cost"`
	HoursSpent     *float64   `json:"hours_spent"`
	Remarks        *string    `json:"remarks"`
	CreatedBy      *uint64    `json:"created_by"`
	CategoryName   *string    `json:"category_name"`
	ApartmentUnit  *string    `json:"apartment_unit"`
	AreaName       *string    `json:"area_name"`
	AssignedToName *string    `json:"assigned_to_name"`
	ContractorName *string    `json:"contractor_name"`
	CreatedByName  *string    `json:"created_by_name"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TaskFilter narrows a task listing.  Zero values mean no filter.
type TaskFilter struct {
	Status     TaskStatus
	AssignedTo uint64
}

// DueReminder is a task selected by the reminder scan, joined with the data
// needed to write the email.
type DueReminder struct {
	TaskID        uint64
	Title         string
	Description   *string
	Priority      Priority
	DueDate       string
	AssigneeName  string
	AssigneeEmail string
	UnitNumber    *string
	AreaName      *string
}

// Location returns the unit or area label, or "N/A" when the task has neither.
func (r DueReminder) Location() string {
	if r.UnitNumber != nil && *r.UnitNumber != "" {
		return *r.UnitNumber
	}
	if r.AreaName != nil && *r.AreaName != "" {
		return *r.AreaName
	}
	return "N/A"
}
