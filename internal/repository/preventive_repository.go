package repository

import (
	"context"
	"database/sql"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// PreventiveRepo stores recurring upkeep schedules.
type PreventiveRepo struct{ db *sql.DB }

func NewPreventiveRepo(db *sql.DB) *PreventiveRepo { return &PreventiveRepo{db: db} }

// ListActive returns active schedules, soonest first.
func (r *PreventiveRepo) ListActive(ctx context.Context) ([]*model.PreventiveSchedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.description, p.category_id, p.apartment_id, p.area_id, p.frequency,
		       p.next_due_date, p.assigned_to, p.active, p.created_at,
		       c.name, a.unit_number, ar.name, u.name
		FROM preventive_schedules p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN apartments a ON p.apartment_id = a.id
		LEFT JOIN areas ar ON p.area_id = ar.id
		LEFT JOIN users u ON p.assigned_to = u.id
		WHERE p.active = 1
		ORDER BY p.next_due_date`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (*model.PreventiveSchedule, error) {
		p := new(model.PreventiveSchedule)
		err := rs.Scan(&p.ID, &p.Title, &p.Description, &p.CategoryID, &p.ApartmentID, &p.AreaID, &p.Frequency,
			&p.NextDueDate, &p.AssignedTo, &p.Active, &p.CreatedAt,
			&p.CategoryName, &p.ApartmentUnit, &p.AreaName, &p.AssignedToName)
		return p, err
	})
}

func (r *PreventiveRepo) Create(ctx context.Context, p *model.PreventiveSchedule) (uint64, error) {
	return insertID(r.db.ExecContext(ctx, `
		INSERT INTO preventive_schedules (
			title, description, category_id, apartment_id, area_id,
			frequency, next_due_date, assigned_to
		) VALUES (?,?,?,?,?,?,?,?)`,
		p.Title, p.Description, p.CategoryID, p.ApartmentID, p.AreaID,
		p.Frequency, p.NextDueDate, p.AssignedTo))
}
