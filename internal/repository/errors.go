// Package repository holds the SQL behind every resource.  Each repo wraps
// the shared *sql.DB and runs one parameterized statement per call; only the
// apartment reset uses a transaction.
//
// The sentinel errors below let handlers map store failures onto HTTP
// statuses without inspecting driver errors themselves.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup finds no row or an update/delete
// affects zero rows.  Handlers translate it into a 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert hits the unique email index.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicate is returned for any other unique index violation.
var ErrDuplicate = errors.New("duplicate entry")

// ErrInvalidReference is returned when a foreign key points at a missing row.
var ErrInvalidReference = errors.New("referenced record does not exist")

const (
	mysqlDuplicateEntry = 1062
	mysqlNoReferenced   = 1452
)

// translate maps MySQL driver errors onto the sentinels above.
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlNoReferenced:
			return ErrInvalidReference
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// expectRow turns a zero RowsAffected into ErrNotFound.
func expectRow(res sql.Result, err error) error {
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// insertID returns the auto-increment id of an insert.
func insertID(res sql.Result, err error) (uint64, error) {
	if err != nil {
		return 0, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// collect scans every row with scan and closes rows.
func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
