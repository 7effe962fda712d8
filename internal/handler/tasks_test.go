package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmb/maintenance-tracker/internal/logging"
	"github.com/lmb/maintenance-tracker/internal/model"
	"github.com/lmb/maintenance-tracker/internal/queue"
)

func newTasks() (*TaskHandler, *fakeTasks, *recordingPublisher) {
	store, pub := newFakeTasks(), &recordingPublisher{}
	return NewTaskHandler(store, pub, fixedClock("2026-10-15T10:00:00Z"), logging.Discard()), store, pub
}

func TestCreateTaskDefaults(t *testing.T) {
	h, store, pub := newTasks()
	rec := serve(t, h.Create, call{method: http.MethodPost, route: "/tasks", claims: staff(),
		body: `{"title":"  Fix lobby light ","apartment_id":"","area_id":"4","due_date":"2026-10-16"}`})
	wantStatus(t, rec, http.StatusCreated)
	if id, _ := decode(t, rec)["taskId"].(float64); id != 1 {
		t.Fatalf("taskId = %v", decode(t, rec)["taskId"])
	}

	got := store.rows[1]
	if got.Title != "Fix lobby light" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Status != model.StatusPending || got.Priority != model.PriorityMedium || got.TaskType != model.TaskReactive {
		t.Errorf("defaults = %s/%s/%s", got.Status, got.Priority, got.TaskType)
	}
	if got.CreatedBy == nil || *got.CreatedBy != 2 {
		t.Errorf("created_by = %v, want the caller", got.CreatedBy)
	}
	if got.ApartmentID != nil || got.AreaID == nil || *got.AreaID != 4 {
		t.Errorf("apartment_id = %v, area_id = %v", got.ApartmentID, got.AreaID)
	}

	if len(pub.events) != 1 || pub.events[0].Action != queue.ActionCreated || pub.events[0].ActorID != 2 {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	h, store, _ := newTasks()
	for _, body := range []string{
		`{"description":"no title"}`,
		`{"title":"x","status":"done"}`,
		`{"title":"x","priority":"critical"}`,
		`{"title":"x","task_type":"emergency"}`,
		`{"title":"x","due_date":"16/10/2026"}`,
		`{"title":"x","estimated_cost":-5}`,
		`{"title":"x","assigned_to":"bob"}`,
	} {
		t.Run(body, func(t *testing.T) {
			rec := serve(t, h.Create, call{method: http.MethodPost, route: "/tasks", claims: staff(), body: body})
			wantStatus(t, rec, http.StatusBadRequest)
		})
	}
	if len(store.rows) != 0 {
		t.Errorf("invalid requests stored %d tasks", len(store.rows))
	}
}

func TestUpdateTaskStampsCompletion(t *testing.T) {
	h, store, pub := newTasks()
	store.rows[5] = &model.Task{ID: 5, Title: "Boiler", Status: model.StatusInProgress,
		Priority: model.PriorityHigh, TaskType: model.TaskPreventive}

	rec := serve(t, h.Update, call{method: http.MethodPut, route: "/tasks/:id", path: "/tasks/5", claims: staff(),
		body: `{"title":"Boiler","status":"completed","actual_cost":"120.50"}`})
	wantStatus(t, rec, http.StatusOK)

	got := store.rows[5]
	if got.CompletedDate == nil || *got.CompletedDate != "2026-10-15" {
		t.Errorf("completed_date = %v, want today", got.CompletedDate)
	}
	if got.Priority != model.PriorityHigh || got.TaskType != model.TaskPreventive {
		t.Errorf("omitted enums changed: %s/%s", got.Priority, got.TaskType)
	}
	if got.ActualCost == nil || *got.ActualCost != 120.5 {
		t.Errorf("actual_cost = %v", got.ActualCost)
	}
	if len(pub.events) != 1 || pub.events[0].Action != queue.ActionCompleted {
		t.Errorf("events = %+v", pub.events)
	}

	// an explicit date wins, and re-saving a completed task is an update
	rec = serve(t, h.Update, call{method: http.MethodPut, route: "/tasks/:id", path: "/tasks/5", claims: staff(),
		body: `{"title":"Boiler","status":"completed","completed_date":"2026-10-01"}`})
	wantStatus(t, rec, http.StatusOK)
	if d := store.rows[5].CompletedDate; d == nil || *d != "2026-10-01" {
		t.Errorf("completed_date = %v", d)
	}
	if pub.events[1].Action != queue.ActionUpdated {
		t.Errorf("second action = %s", pub.events[1].Action)
	}
}

func TestUpdateTaskMissing(t *testing.T) {
	h, _, pub := newTasks()
	rec := serve(t, h.Update, call{method: http.MethodPut, route: "/tasks/:id", path: "/tasks/42", claims: staff(),
		body: `{"title":"x"}`})
	wantStatus(t, rec, http.StatusNotFound)
	if got := decode(t, rec)["error"]; got != "Task not found" {
		t.Errorf("error = %v", got)
	}
	if len(pub.events) != 0 {
		t.Error("no event expected for a failed update")
	}

	rec = serve(t, h.Update, call{method: http.MethodPut, route: "/tasks/:id", path: "/tasks/abc", claims: staff(),
		body: `{"title":"x"}`})
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	h, _, pub := newTasks()
	pub.err = errors.New("broker down")
	rec := serve(t, h.Create, call{method: http.MethodPost, route: "/tasks", claims: staff(), body: `{"title":"x"}`})
	wantStatus(t, rec, http.StatusCreated)
}

func TestListTasksFilters(t *testing.T) {
	h, store, _ := newTasks()
	three := uint64(3)
	store.rows[1] = &model.Task{ID: 1, Title: "a", Status: model.StatusPending, AssignedTo: &three}
	store.rows[2] = &model.Task{ID: 2, Title: "b", Status: model.StatusCompleted, AssignedTo: &three}
	store.rows[3] = &model.Task{ID: 3, Title: "c", Status: model.StatusPending}

	rec := serve(t, h.List, call{method: http.MethodGet, route: "/tasks", path: "/tasks?status=pending&assigned_to=3", claims: staff()})
	wantStatus(t, rec, http.StatusOK)
	if diff := cmp.Diff(model.TaskFilter{Status: model.StatusPending, AssignedTo: 3}, store.filter); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
	tasks, _ := decode(t, rec)["tasks"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}

	rec = serve(t, h.List, call{method: http.MethodGet, route: "/tasks", path: "/tasks?status=nope", claims: staff()})
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestGetTask(t *testing.T) {
	h, store, _ := newTasks()
	store.rows[8] = &model.Task{ID: 8, Title: "Gutter"}
	rec := serve(t, h.Get, call{method: http.MethodGet, route: "/tasks/:id", path: "/tasks/8", claims: staff()})
	wantStatus(t, rec, http.StatusOK)
	if got := decode(t, rec)["title"]; got != "Gutter" {
		t.Errorf("title = %v", got)
	}
	rec = serve(t, h.Get, call{method: http.MethodGet, route: "/tasks/:id", path: "/tasks/9", claims: staff()})
	wantStatus(t, rec, http.StatusNotFound)
}
