package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/lmb/maintenance-tracker/internal/model"
	"github.com/lmb/maintenance-tracker/internal/queue"
	"github.com/lmb/maintenance-tracker/internal/service"
)

// TaskHandler serves maintenance tasks.  Every signed-in user may read,
// create and update tasks.
type TaskHandler struct {
	Tasks  TaskStore
	Events service.Publisher
	Log    logrus.FieldLogger
	Clock  Clock
}

func NewTaskHandler(s TaskStore, events service.Publisher, clock Clock, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{Tasks: s, Events: events, Clock: clock, Log: log}
}

type taskReq struct {
	Title         string   `json:"title"`
	Description   *string  `json:"description"`
	CategoryID    idField  `json:"category_id"`
	ApartmentID   idField  `json:"apartment_id"`
	AreaID        idField  `json:"area_id"`
	ContractorID  idField  `json:"contractor_id"`
	AssignedTo    idField  `json:"assigned_to"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
	TaskType      string   `json:"task_type"`
	DueDate       *string  `json:"due_date"`
	CompletedDate *string  `json:"completed_date"`
	EstimatedCost numField `json:"estimated_cost"`
	ActualCost    numField `json:"actual_cost"`
	HoursSpent    numField `json:"hours_spent"`
	Remarks       *string  `json:"remarks"`
}

// apply copies the request onto t.  Enumerated fields left blank keep the
// value already on t, every other field is replaced.
func (r taskReq) apply(t *model.Task) error {
	if s := strings.TrimSpace(r.Status); s != "" {
		v, err := model.ParseTaskStatus(s)
		if err != nil {
			return err
		}
		t.Status = v
	}
	if s := strings.TrimSpace(r.Priority); s != "" {
		v, err := model.ParsePriority(s)
		if err != nil {
			return err
		}
		t.Priority = v
	}
	if s := strings.TrimSpace(r.TaskType); s != "" {
		v, err := model.ParseTaskType(s)
		if err != nil {
			return err
		}
		t.TaskType = v
	}
	due, err := optDate("due_date", r.DueDate)
	if err != nil {
		return err
	}
	done, err := optDate("completed_date", r.CompletedDate)
	if err != nil {
		return err
	}
	for _, n := range []struct {
		field string
		v     *float64
	}{{"estimated_cost", r.EstimatedCost.ptr()}, {"actual_cost", r.ActualCost.ptr()}, {"hours_spent", r.HoursSpent.ptr()}} {
		if n.v != nil && *n.v < 0 {
			return &model.InvalidValueError{Field: n.field, Value: strconv.FormatFloat(*n.v, 'f', -1, 64)}
		}
	}

	t.Title = strings.TrimSpace(r.Title)
	t.Description = optStr(r.Description)
	t.CategoryID = r.CategoryID.ptr()
	t.ApartmentID = r.ApartmentID.ptr()
	t.AreaID = r.AreaID.ptr()
	t.ContractorID = r.ContractorID.ptr()
	t.AssignedTo = r.AssignedTo.ptr()
	t.DueDate = due
	t.CompletedDate = done
	t.EstimatedCost = r.EstimatedCost.or(0)
	t.ActualCost = r.ActualCost.ptr()
	t.HoursSpent = r.HoursSpent.ptr()
	t.Remarks = optStr(r.Remarks)
	return nil
}

// List returns tasks, optionally filtered by ?status= and ?assigned_to=.
func (h *TaskHandler) List(c echo.Context) error {
	var f model.TaskFilter
	if s := c.QueryParam("status"); s != "" {
		st, err := model.ParseTaskStatus(s)
		if err != nil {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		f.Status = st
	}
	if s := c.QueryParam("assigned_to"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			return fail(c, http.StatusBadRequest, "invalid assigned_to")
		}
		f.AssignedTo = id
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	tasks, err := h.Tasks.List(ctx, f)
	if err != nil {
		return storeError(c, err, "Task")
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

func (h *TaskHandler) Get(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	t, err := h.Tasks.Get(ctx, id)
	if err != nil {
		return storeError(c, err, "Task")
	}
	return c.JSON(http.StatusOK, t)
}

// Create adds a task owned by the caller.  Status, priority and type default
// to pending, medium and reactive.
func (h *TaskHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if strings.TrimSpace(req.Title) == "" {
		return missing(c, "title")
	}
	t := &model.Task{
		Status:    model.StatusPending,
		Priority:  model.PriorityMedium,
		TaskType:  model.TaskReactive,
		CreatedBy: &uid,
	}
	if err := req.apply(t); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	h.stampCompletion(t, nil)

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Tasks.Create(ctx, t)
	if err != nil {
		return storeError(c, err, "Task")
	}
	t.ID = id
	h.publish(c.Request().Context(), queue.ActionCreated, t, uid)
	return created(c, "Task created", "taskId", id)
}

// Update replaces the editable fields of a task.  Moving a task to
// completed without a completion date stamps today.
func (h *TaskHandler) Update(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if strings.TrimSpace(req.Title) == "" {
		return missing(c, "title")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	t, err := h.Tasks.Get(ctx, id)
	if err != nil {
		return storeError(c, err, "Task")
	}
	prev := *t
	if err := req.apply(t); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	h.stampCompletion(t, &prev)

	if err := h.Tasks.Update(ctx, t); err != nil {
		return storeError(c, err, "Task")
	}
	action := queue.ActionUpdated
	if t.Status == model.StatusCompleted && prev.Status != model.StatusCompleted {
		action = queue.ActionCompleted
	}
	h.publish(c.Request().Context(), action, t, uid)
	return ok(c, "Task updated")
}

// stampCompletion fills in CompletedDate on a completed task that has none,
// reusing the previous date when the task was already complete.
func (h *TaskHandler) stampCompletion(t, prev *model.Task) {
	if t.Status != model.StatusCompleted || t.CompletedDate != nil {
		return
	}
	if prev != nil && prev.CompletedDate != nil {
		t.CompletedDate = prev.CompletedDate
		return
	}
	today := h.Clock.Today()
	t.CompletedDate = &today
}

func (h *TaskHandler) publish(ctx context.Context, action string, t *model.Task, actor uint64) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	ev := queue.TaskEvent{
		Action:     action,
		TaskID:     t.ID,
		Title:      t.Title,
		Status:     string(t.Status),
		Priority:   string(t.Priority),
		AssignedTo: t.AssignedTo,
		DueDate:    t.DueDate,
		ActorID:    actor,
		OccurredAt: h.Clock.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Events.PublishTask(ctx, ev); err != nil {
		h.Log.WithError(err).WithField("task_id", t.ID).Warn("task event not published")
	}
}
