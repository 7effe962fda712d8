package repository

import (
	"context"
	"database/sql"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// AssetRepo stores building equipment.
type AssetRepo struct{ db *sql.DB }

func NewAssetRepo(db *sql.DB) *AssetRepo { return &AssetRepo{db: db} }

func (r *AssetRepo) List(ctx context.Context) ([]*model.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.category, a.area_type, a.area_id, a.apartment_id, a.contractor_id,
		       a.serial_number, a.installed_on, a.next_due_date, a.interval_days, a.notes, a.created_at,
		       ar.name, ap.unit_number, c.name
		FROM assets a
		LEFT JOIN areas ar ON ar.id = a.area_id
		LEFT JOIN apartments ap ON ap.id = a.apartment_id
		LEFT JOIN contractors c ON c.id = a.contractor_id
		ORDER BY a.next_due_date IS NULL, a.next_due_date, a.name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (*model.Asset, error) {
		a := new(model.Asset)
		err := rs.Scan(&a.ID, &a.Name, &a.Category, &a.AreaType, &a.AreaID, &a.ApartmentID, &a.ContractorID,
			&a.SerialNumber, &a.InstalledOn, &a.NextDueDate, &a.IntervalDays, &a.Notes, &a.CreatedAt,
			&a.AreaName, &a.ApartmentUnit, &a.ContractorName)
		return a, err
	})
}

func (r *AssetRepo) Create(ctx context.Context, a *model.Asset) (uint64, error) {
	return insertID(r.db.ExecContext(ctx, `
		INSERT INTO assets (name, category, area_type, area_id, apartment_id, contractor_id,
		                    serial_number, installed_on, next_due_date, interval_days, notes)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		a.Name, a.Category, a.AreaType, a.AreaID, a.ApartmentID, a.ContractorID,
		a.SerialNumber, a.InstalledOn, a.NextDueDate, a.IntervalDays, a.Notes))
}

func (r *AssetRepo) Update(ctx context.Context, a *model.Asset) error {
	return expectRow(r.db.ExecContext(ctx, `
		UPDATE assets SET name=?, category=?, area_type=?, area_id=?, apartment_id=?, contractor_id=?,
		       serial_number=?, installed_on=?, next_due_date=?, interval_days=?, notes=?,
		       updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		a.Name, a.Category, a.AreaType, a.AreaID, a.ApartmentID, a.ContractorID,
		a.SerialNumber, a.InstalledOn, a.NextDueDate, a.IntervalDays, a.Notes, a.ID))
}

func (r *AssetRepo) Delete(ctx context.Context, id uint64) error {
	return expectRow(r.db.ExecContext(ctx, "DELETE FROM assets WHERE id=?", id))
}
