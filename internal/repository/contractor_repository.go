package repository

import (
	"context"
	"database/sql"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// ContractorRepo stores contractors and their reviews.
type ContractorRepo struct{ db *sql.DB }

func NewContractorRepo(db *sql.DB) *ContractorRepo { return &ContractorRepo{db: db} }

// List returns contractors ordered by name with their review count and
// average rating.
func (r *ContractorRepo) List(ctx context.Context) ([]*model.Contractor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.company, c.email, c.phone, c.specialty, c.rating, c.notes, c.created_at,
		       COUNT(cr.id), AVG(cr.rating)
		FROM contractors c
		LEFT JOIN contractor_reviews cr ON cr.contractor_id = c.id
		GROUP BY c.id, c.name, c.company, c.email, c.phone, c.specialty, c.rating, c.notes, c.created_at
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (*model.Contractor, error) {
		c := new(model.Contractor)
		err := rs.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Specialty, &c.Rating,
			&c.Notes, &c.CreatedAt, &c.ReviewCount, &c.ReviewAverage)
		return c, err
	})
}

func (r *ContractorRepo) Create(ctx context.Context, c *model.Contractor) (uint64, error) {
	return insertID(r.db.ExecContext(ctx,
		`INSERT INTO contractors (name, company, email, phone, specialty, rating, notes)
		 VALUES (?,?,?,?,?,?,?)`,
		c.Name, c.Company, c.Email, c.Phone, c.Specialty, c.Rating, c.Notes))
}

func (r *ContractorRepo) Update(ctx context.Context, c *model.Contractor) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE contractors SET name=?, company=?, email=?, phone=?, specialty=?, rating=?, notes=?,
		        updated_at=CURRENT_TIMESTAMP
		 WHERE id=?`,
		c.Name, c.Company, c.Email, c.Phone, c.Specialty, c.Rating, c.Notes, c.ID))
}

func (r *ContractorRepo) Delete(ctx context.Context, id uint64) error {
	return expectRow(r.db.ExecContext(ctx, "DELETE FROM contractors WHERE id=?", id))
}

// ListReviews returns the reviews of one contractor, newest first.
func (r *ContractorRepo) ListReviews(ctx context.Context, contractorID uint64) ([]*model.ContractorReview, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cr.id, cr.contractor_id, cr.task_id, cr.rating, cr.comment, cr.created_by, u.name, cr.created_at
		FROM contractor_reviews cr
		LEFT JOIN users u ON u.id = cr.created_by
		WHERE cr.contractor_id = ?
		ORDER BY cr.created_at DESC, cr.id DESC`, contractorID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (*model.ContractorReview, error) {
		v := new(model.ContractorReview)
		err := rs.Scan(&v.ID, &v.ContractorID, &v.TaskID, &v.Rating, &v.Comment, &v.CreatedBy,
			&v.CreatedByName, &v.CreatedAt)
		return v, err
	})
}

// CreateReview inserts a review.  A missing contractor or task surfaces as
// ErrInvalidReference.
func (r *ContractorRepo) CreateReview(ctx context.Context, v *model.ContractorReview) (uint64, error) {
	return insertID(r.db.ExecContext(ctx,
		`INSERT INTO contractor_reviews (contractor_id, task_id, rating, comment, created_by)
		 VALUES (?,?,?,?,?)`,
		v.ContractorID, v.TaskID, v.Rating, v.Comment, v.CreatedBy))
}
