package repository

import (
	"context"
	"database/sql"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// Delivery outcomes recorded in reminder_deliveries.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// ReminderRepo selects tasks for the reminder job and records what was sent.
type ReminderRepo struct{ db *sql.DB }

func NewReminderRepo(db *sql.DB) *ReminderRepo { return &ReminderRepo{db: db} }

// DueOn returns the tasks whose due_date equals date exactly, that are not
// completed, whose assignee has an email, and that have not already been
// sent a reminder for that date.
func (r *ReminderRepo) DueOn(ctx context.Context, date string) ([]model.DueReminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.description, t.priority, t.due_date,
		       u.name, u.email, a.unit_number, ar.name
		FROM tasks t
		JOIN users u ON t.assigned_to = u.id
		LEFT JOIN apartments a ON t.apartment_id = a.id
		LEFT JOIN areas ar ON t.area_id = ar.id
		WHERE t.due_date = ?
		  AND t.status <> 'completed'
		  AND u.email IS NOT NULL AND u.email <> ''
		  AND NOT EXISTS (
		      SELECT 1 FROM reminder_deliveries d
		      WHERE d.task_id = t.id AND d.due_date = t.due_date
		        AND d.recipient = u.email AND d.status = 'sent')
		ORDER BY t.id`, date)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rs *sql.Rows) (model.DueReminder, error) {
		var d model.DueReminder
		err := rs.Scan(&d.TaskID, &d.Title, &d.Description, &d.Priority, &d.DueDate,
			&d.AssigneeName, &d.AssigneeEmail, &d.UnitNumber, &d.AreaName)
		return d, err
	})
}

// Record stores the outcome of one delivery attempt.  A later attempt for the
// same (task, date, recipient) overwrites the earlier one.
func (r *ReminderRepo) Record(ctx context.Context, d model.DueReminder, status string, sendErr error) error {
	var msg *string
	if sendErr != nil {
		s := sendErr.Error()
		msg = &s
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminder_deliveries (task_id, due_date, recipient, status, error)
		VALUES (?,?,?,?,?)
		ON DUPLICATE KEY UPDATE status = VALUES(status), error = VALUES(error), attempted_at = CURRENT_TIMESTAMP`,
		d.TaskID, d.DueDate, d.AssigneeEmail, status, msg)
	return err
}
