package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// TaskRepo stores maintenance tasks.
type TaskRepo struct{ db *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

const taskSelect = `
	SELECT t.id, t.title, t.description, t.category_id, t.apartment_id, t.area_id, t.contractor_id,
	       t.assigned_to, t.status, t.priority, t.task_type, t.due_date, t.completed_date,
	       t.estimated_cost, t.actual_cost, t.hours_spent, t.remarks, t.created_by,
	       t.created_at, t.updated_at,
	       c.name, a.unit_number, ar.name, u.name, ct.name, cr.name
	FROM tasks t
	LEFT JOIN categories c ON t.category_id = c.id
	LEFT JOIN apartments a ON t.apartment_id = a.id
	LEFT JOIN areas ar ON t.area_id = ar.id
	LEFT JOIN users u ON t.assigned_to = u.id
	LEFT JOIN contractors ct ON t.contractor_id = ct.id
	LEFT JOIN users cr ON t.created_by = cr.id`

func scanTask(row interface{ Scan(...any) error }) (*model.Task, error) {
	t := new(model.Task)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.CategoryID, &t.ApartmentID, &t.AreaID, &t.ContractorID,
		&t.AssignedTo, &t.Status, &t.Priority, &t.TaskType, &t.DueDate, &t.CompletedDate,
		&t.EstimatedCost, &t.ActualCost, &t.HoursSpent, &t.Remarks, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
		&t.CategoryName, &t.ApartmentUnit, &t.AreaName, &t.AssignedToName, &t.ContractorName, &t.CreatedByName)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func scanTasks(rows *sql.Rows) ([]*model.Task, error) {
	return collect(rows, func(rs *sql.Rows) (*model.Task, error) { return scanTask(rs) })
}

// List returns tasks latest due date first, optionally filtered.
func (r *TaskRepo) List(ctx context.Context, f model.TaskFilter) ([]*model.Task, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, f.Status)
	}
	if f.AssignedTo != 0 {
		where = append(where, "t.assigned_to = ?")
		args = append(args, f.AssignedTo)
	}
	q := taskSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY t.due_date DESC, FIELD(t.priority, 'urgent', 'high', 'medium', 'low'), t.id DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// Get returns one task or ErrNotFound.
func (r *TaskRepo) Get(ctx context.Context, id uint64) (*model.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, taskSelect+" WHERE t.id = ?", id))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

// Create inserts a task, including the completion fields so a task recorded
// after the fact keeps its date, cost and hours.  A reference to a missing
// row yields ErrInvalidReference.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) (uint64, error) {
	return insertID(r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			title, description, category_id, apartment_id, area_id, assigned_to,
			contractor_id, status, priority, task_type, due_date, completed_date,
			estimated_cost, actual_cost, hours_spent, remarks, created_by
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.Title, t.Description, t.CategoryID, t.ApartmentID, t.AreaID, t.AssignedTo,
		t.ContractorID, t.Status, t.Priority, t.TaskType, t.DueDate, t.CompletedDate,
		t.EstimatedCost, t.ActualCost, t.HoursSpent, t.Remarks, t.CreatedBy))
}

// Update replaces every editable column of the task.
func (r *TaskRepo) Update(ctx context.Context, t *model.Task) error {
	return expectRow(r.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, category_id = ?, apartment_id = ?, area_id = ?,
			assigned_to = ?, contractor_id = ?, status = ?, priority = ?, task_type = ?,
			due_date = ?, completed_date = ?, estimated_cost = ?,
			actual_cost = ?, hours_spent = ?, remarks = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		t.Title, t.Description, t.CategoryID, t.ApartmentID, t.AreaID,
		t.AssignedTo, t.ContractorID, t.Status, t.Priority, t.TaskType,
		t.DueDate, t.CompletedDate, t.EstimatedCost,
		t.ActualCost, t.HoursSpent, t.Remarks, t.ID))
}
