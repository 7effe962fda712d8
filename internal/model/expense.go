package model

import "time"

// Expense is money spent on an apartment, an area, or the building at large
// when neither reference is set.
type Expense struct {
	ID             uint64    `json:"id"`
	ApartmentID    *uint64   `json:"apartment_id"`
	AreaID         *uint64   `json:"area_id"`
	ContractorID   *uint64   `json:"contractor_id"`
	TaskID         *uint64   `json:"task_id"`
	Amount         float64   `json:"amount"`
	SpentOn        *string   `json:"spent_on"`
	Description    *string   `json:"description"`
	CreatedBy      *uint64   `json:"created_by"`
	ApartmentLabel *string   `json:"apartment_label"`
	AreaName       *string   `json:"area_name"`
	AreaType       *string   `json:"area_type"`
	ContractorName *string   `json:"contractor_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExpenseSummary totals expenses by where they were spent.
type ExpenseSummary struct {
	TotalBuilding     float64 `json:"total_building"`
	TotalApartments   float64 `json:"total_apartments"`
	TotalCommonAreas  float64 `json:"total_common_areas"`
	TotalServiceAreas float64 `json:"total_service_areas"`
}
