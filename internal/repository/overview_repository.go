package repository

import (
	"context"
	"database/sql"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// OverviewRepo builds the admin dashboard.  Each figure is its own query;
// the result is not a consistent snapshot.
type OverviewRepo struct {
	db       *sql.DB
	expenses *ExpenseRepo
}

func NewOverviewRepo(db *sql.DB) *OverviewRepo {
	return &OverviewRepo{db: db, expenses: NewExpenseRepo(db)}
}

// Overview aggregates task, asset and expense figures.  today and weekEnd are
// DateLayout strings.
func (r *OverviewRepo) Overview(ctx context.Context, today, weekEnd string, upcoming int) (*model.Overview, error) {
	o := &model.Overview{TasksByStatus: map[model.TaskStatus]int{
		model.StatusPending: 0, model.StatusInProgress: 0, model.StatusCompleted: 0, model.StatusCancelled: 0,
	}}

	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM tasks GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status model.TaskStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		o.TasksByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const open = "status NOT IN ('completed', 'cancelled')"
	scalars := []struct {
		dst  *int
		q    string
		args []any
	}{
		{&o.OverdueTasks, "SELECT COUNT(*) FROM tasks WHERE " + open + " AND due_date < ?", []any{today}},
		{&o.DueThisWeek, "SELECT COUNT(*) FROM tasks WHERE " + open + " AND due_date BETWEEN ? AND ?", []any{today, weekEnd}},
		{&o.Apartments, "SELECT COUNT(*) FROM apartments", nil},
		{&o.Areas, "SELECT COUNT(*) FROM areas", nil},
		{&o.Contractors, "SELECT COUNT(*) FROM contractors", nil},
		{&o.Assets, "SELECT COUNT(*) FROM assets", nil},
		{&o.AssetsDue, "SELECT COUNT(*) FROM assets WHERE next_due_date <= ?", []any{weekEnd}},
		{&o.Users, "SELECT COUNT(*) FROM users", nil},
	}
	for _, s := range scalars {
		if err := r.db.QueryRowContext(ctx, s.q, s.args...).Scan(s.dst); err != nil {
			return nil, err
		}
	}

	if o.Expenses, err = r.expenses.Summary(ctx); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		taskSelect+" WHERE t."+open+" AND t.due_date >= ? ORDER BY t.due_date, t.id LIMIT ?", today, upcoming)
	if err != nil {
		return nil, err
	}
	if o.UpcomingTasks, err = scanTasks(rows); err != nil {
		return nil, err
	}
	return o, nil
}
