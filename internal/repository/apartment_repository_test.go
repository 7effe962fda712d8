package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/go-cmp/cmp"
)

func TestApartmentLayout(t *testing.T) {
	got, err := ApartmentLayout(1, 2, 3)
	if err != nil {
		t.Fatalf("ApartmentLayout() error = %v", err)
	}
	var units []string
	for _, a := range got {
		units = append(units, a.UnitNumber)
		if a.Label != "Apt "+a.UnitNumber {
			t.Errorf("label %q does not match unit %q", a.Label, a.UnitNumber)
		}
	}
	want := []string{"101", "102", "103", "201", "202", "203"}
	if diff := cmp.Diff(want, units); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
	if got[4].Floor != 2 {
		t.Errorf("floor = %d, want 2", got[4].Floor)
	}
}

func TestApartmentLayoutIsDeterministic(t *testing.T) {
	a, _ := ApartmentLayout(2, 11, 12)
	b, _ := ApartmentLayout(2, 11, 12)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("layouts differ:\n%s", diff)
	}
	seen := map[string]bool{}
	for _, ap := range a {
		if seen[ap.UnitNumber] {
			t.Errorf("duplicate unit %s", ap.UnitNumber)
		}
		seen[ap.UnitNumber] = true
	}
	if len(a) != 132 {
		t.Errorf("len = %d, want 132", len(a))
	}
}

func TestApartmentLayoutRejectsBadInput(t *testing.T) {
	for _, in := range [][3]int{{1, 0, 4}, {1, 4, 0}, {0, 4, 4}, {1, 100, 1}, {1, 1, 100}} {
		if _, err := ApartmentLayout(in[0], in[1], in[2]); !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("ApartmentLayout%v error = %v", in, err)
		}
	}
}

func TestApartmentResetCommitsWholeLayout(t *testing.T) {
	db, mock := newMock(t)
	layout, _ := ApartmentLayout(1, 1, 2)

	mock.ExpectBegin()
	mock.ExpectExec(sqlLike("DELETE FROM apartments")).WillReturnResult(sqlmock.NewResult(0, 40))
	ins := mock.ExpectPrepare(sqlLike("INSERT INTO apartments (unit_number, floor, label, area_type)"))
	ins.ExpectExec().WithArgs("101", 1, "Apt 101", "apartment").WillReturnResult(sqlmock.NewResult(1, 1))
	ins.ExpectExec().WithArgs("102", 1, "Apt 102", "apartment").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	n, err := NewApartmentRepo(db).Reset(context.Background(), layout)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
}

func TestApartmentResetRollsBackMidInsert(t *testing.T) {
	tests := []struct {
		name    string
		failure error
		want    error
	}{
		{"driver error", errors.New("connection reset"), nil},
		{"duplicate unit", &mysql.MySQLError{Number: mysqlDuplicateEntry, Message: "Duplicate entry"}, ErrDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			layout, _ := ApartmentLayout(1, 1, 3)

			mock.ExpectBegin()
			mock.ExpectExec(sqlLike("DELETE FROM apartments")).WillReturnResult(sqlmock.NewResult(0, 40))
			ins := mock.ExpectPrepare(sqlLike("INSERT INTO apartments"))
			ins.ExpectExec().WithArgs("101", 1, "Apt 101", "apartment").WillReturnResult(sqlmock.NewResult(1, 1))
			ins.ExpectExec().WithArgs("102", 1, "Apt 102", "apartment").WillReturnError(tt.failure)
			mock.ExpectRollback()

			n, err := NewApartmentRepo(db).Reset(context.Background(), layout)
			if err == nil {
				t.Fatal("Reset() succeeded, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Reset() error = %v, want %v", err, tt.want)
			}
			if n != 0 {
				t.Errorf("n = %d, want 0", n)
			}
		})
	}
}

func TestApartmentResetRollsBackFailedDelete(t *testing.T) {
	db, mock := newMock(t)
	layout, _ := ApartmentLayout(1, 1, 1)

	mock.ExpectBegin()
	mock.ExpectExec(sqlLike("DELETE FROM apartments")).WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	if _, err := NewApartmentRepo(db).Reset(context.Background(), layout); err == nil {
		t.Fatal("Reset() succeeded, want error")
	}
}
