package model

import "time"

// Contractor is an outside company or tradesperson.  ReviewCount and
// ReviewAverage are derived from contractor_reviews when listing.
type Contractor struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Company       *string   `json:"company"`
	Email         *string   `json:"email"`
	Phone         string    `json:"phone"`
	Specialty     *string   `json:"specialty"`
	Rating        float64   `json:"rating"`
	Notes         *string   `json:"notes"`
	ReviewCount   int       `json:"review_count"`
	ReviewAverage *float64  `json:"review_average"`
	CreatedAt     time.Time `json:"created_at"`
}

// ContractorReview is a 1..5 rating left by a user, optionally tied to a task.
type ContractorReview struct {
	ID            uint64    `json:"id"`
	ContractorID  uint64    `json:"contractor_id"`
	TaskID        *uint64   `json:"task_id"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment"`
	CreatedBy     *uint64   `json:"created_by"`
	CreatedByName *string   `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
}
