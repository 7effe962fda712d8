package repository

import (
	"context"
	"database/sql"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// CategoryRepo stores task categories.  Names are unique.
type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (*model.Category, error) {
		c := new(model.Category)
		err := rs.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
		return c, err
	})
}

func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) (uint64, error) {
	return insertID(r.db.ExecContext(ctx,
		"INSERT INTO categories (name, description) VALUES (?,?)", c.Name, c.Description))
}

func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	return expectRow(r.db.ExecContext(ctx,
		"UPDATE categories SET name=?, description=? WHERE id=?", c.Name, c.Description, c.ID))
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	return expectRow(r.db.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id))
}
