package repository

import (
	"context"
	"database/sql"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// ExpenseRepo stores expenses and computes their totals.
type ExpenseRepo struct{ db *sql.DB }

func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

// List returns expenses, most recent spending first, joined with the place
// and contractor they relate to.
func (r *ExpenseRepo) List(ctx context.Context) ([]*model.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.id, e.apartment_id, e.area_id, e.contractor_id, e.task_id, e.amount, e.spent_on,
		       e.description, e.created_by, e.created_at,
		       ap.label, ar.name, ar.area_type, c.name
		FROM expenses e
		LEFT JOIN apartments ap ON ap.id = e.apartment_id
		LEFT JOIN areas ar ON ar.id = e.area_id
		LEFT JOIN contractors c ON c.id = e.contractor_id
		ORDER BY e.spent_on DESC, e.id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (*model.Expense, error) {
		e := new(model.Expense)
		err := rs.Scan(&e.ID, &e.ApartmentID, &e.AreaID, &e.ContractorID, &e.TaskID, &e.Amount, &e.SpentOn,
			&e.Description, &e.CreatedBy, &e.CreatedAt,
			&e.ApartmentLabel, &e.AreaName, &e.AreaType, &e.ContractorName)
		return e, err
	})
}

func (r *ExpenseRepo) Create(ctx context.Context, e *model.Expense) (uint64, error) {
	return insertID(r.db.ExecContext(ctx, `
		INSERT INTO expenses (apartment_id, area_id, contractor_id, task_id, amount, spent_on, description, created_by)
		VALUES (?,?,?,?,?,?,?,?)`,
		e.ApartmentID, e.AreaID, e.ContractorID, e.TaskID, e.Amount, e.SpentOn, e.Description, e.CreatedBy))
}

func (r *ExpenseRepo) Update(ctx context.Context, e *model.Expense) error {
	return expectRow(r.db.ExecContext(ctx, `
		UPDATE expenses SET apartment_id=?, area_id=?, contractor_id=?, task_id=?, amount=?, spent_on=?, description=?
		WHERE id=?`,
		e.ApartmentID, e.AreaID, e.ContractorID, e.TaskID, e.Amount, e.SpentOn, e.Description, e.ID))
}

func (r *ExpenseRepo) Delete(ctx context.Context, id uint64) error {
	return expectRow(r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id=?", id))
}

// Summary totals every expense, the apartment expenses, and the expenses of
// common and service areas.
func (r *ExpenseRepo) Summary(ctx context.Context) (model.ExpenseSummary, error) {
	var s model.ExpenseSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(e.amount), 0),
		       COALESCE(SUM(CASE WHEN e.apartment_id IS NOT NULL THEN e.amount END), 0),
		       COALESCE(SUM(CASE WHEN ar.area_type = 'common' THEN e.amount END), 0),
		       COALESCE(SUM(CASE WHEN ar.area_type = 'service' THEN e.amount END), 0)
		FROM expenses e
		LEFT JOIN areas ar ON ar.id = e.area_id`).
		Scan(&s.TotalBuilding, &s.TotalApartments, &s.TotalCommonAreas, &s.TotalServiceAreas)
	return s, err
}
