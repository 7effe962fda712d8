// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// TaskActivityQueue is the durable queue task events are published to.
const TaskActivityQueue = "task.activity"

// Task event actions.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionCompleted = "completed"
)

// TaskEvent is published after a task is created or updated.  It carries
// enough for a consumer to write an audit line without querying the
// database.
type TaskEvent struct {
	Action     string  `json:"action"`
	TaskID     uint64  `json:"task_id"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	AssignedTo *uint64 `json:"assigned_to,omitempty"`
	DueDate    *string `json:"due_date,omitempty"`
	ActorID    uint64  `json:"actor_id"`
	OccurredAt string  `json:"occurred_at"`
}
