package repository

import (
	"context"
	"database/sql"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// AreaRepo stores common and service areas.
type AreaRepo struct{ db *sql.DB }

func NewAreaRepo(db *sql.DB) *AreaRepo { return &AreaRepo{db: db} }

func (r *AreaRepo) List(ctx context.Context) ([]*model.Area, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, area_type, description, created_at FROM areas ORDER BY area_type, name")
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (*model.Area, error) {
		a := new(model.Area)
		err := rs.Scan(&a.ID, &a.Name, &a.AreaType, &a.Description, &a.CreatedAt)
		return a, err
	})
}

func (r *AreaRepo) Create(ctx context.Context, a *model.Area) (uint64, error) {
	return insertID(r.db.ExecContext(ctx,
		"INSERT INTO areas (name, area_type, description) VALUES (?,?,?)",
		a.Name, a.AreaType, a.Description))
}

func (r *AreaRepo) Update(ctx context.Context, a *model.Area) error {
	return expectRow(r.db.ExecContext(ctx,
		"UPDATE areas SET name=?, area_type=?, description=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		a.Name, a.AreaType, a.Description, a.ID))
}

func (r *AreaRepo) Delete(ctx context.Context, id uint64) error {
	return expectRow(r.db.ExecContext(ctx, "DELETE FROM areas WHERE id=?", id))
}
