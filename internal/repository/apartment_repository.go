package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// ErrInvalidLayout is returned when a reset asks for an empty or oversized
// building.
var ErrInvalidLayout = errors.New("floors and units_per_floor must be between 1 and 99")

// ApartmentLayout generates the apartments of a building with floors floors
// starting at startFloor and unitsPerFloor units on each.  Unit numbers are
// the floor followed by a two digit unit index ("101", "102", ... "1203").
// The result depends only on its arguments.
func ApartmentLayout(startFloor, floors, unitsPerFloor int) ([]model.Apartment, error) {
	if floors < 1 || floors > 99 || unitsPerFloor < 1 || unitsPerFloor > 99 || startFloor < 1 {
		return nil, ErrInvalidLayout
	}
	out := make([]model.Apartment, 0, floors*unitsPerFloor)
	for f := startFloor; f < startFloor+floors; f++ {
		for u := 1; u <= unitsPerFloor; u++ {
			unit := fmt.Sprintf("%d%02d", f, u)
			out = append(out, model.Apartment{
				UnitNumber: unit,
				Floor:      f,
				Label:      "Apt " + unit,
				AreaType:   "apartment",
			})
		}
	}
	return out, nil
}

type ApartmentRepo struct{ db *sql.DB }

func NewApartmentRepo(db *sql.DB) *ApartmentRepo { return &ApartmentRepo{db: db} }

// List returns every apartment ordered by floor then unit.
func (r *ApartmentRepo) List(ctx context.Context) ([]*model.Apartment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, unit_number, floor, label, area_type, created_at
		 FROM apartments ORDER BY area_type, floor, unit_number`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (*model.Apartment, error) {
		a := new(model.Apartment)
		err := rs.Scan(&a.ID, &a.UnitNumber, &a.Floor, &a.Label, &a.AreaType, &a.CreatedAt)
		return a, err
	})
}

// Reset deletes every apartment and inserts layout in a single transaction.
// References from tasks, assets, expenses and schedules are nulled by the
// foreign keys.  Either the whole new set is visible afterwards or the old
// set is left untouched.
func (r *ApartmentRepo) Reset(ctx context.Context, layout []model.Apartment) (n int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM apartments"); err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO apartments (unit_number, floor, label, area_type) VALUES (?,?,?,?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, a := range layout {
		if _, err = stmt.ExecContext(ctx, a.UnitNumber, a.Floor, a.Label, a.AreaType); err != nil {
			return 0, translate(err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return len(layout), nil
}
