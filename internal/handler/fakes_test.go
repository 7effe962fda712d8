package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/model"
	"github.com/lmb/maintenance-tracker/internal/queue"
	"github.com/lmb/maintenance-tracker/internal/repository"
	"github.com/lmb/maintenance-tracker/internal/utils"
)

// call describes one request against a single registered route.
type call struct {
	method string
	route  string // echo route pattern, e.g. /tasks/:id
	path   string // request path; defaults to route
	body   string
	claims *utils.Claims
}

// serve registers h on a fresh echo instance and runs the call through it.
// When claims is set it is stored the way JWTAuth stores it.
func serve(t *testing.T, h echo.HandlerFunc, cl call) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var mws []echo.MiddlewareFunc
	if cl.claims != nil {
		mws = append(mws, func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set("claims", cl.claims)
				return next(c)
			}
		})
	}
	e.Add(cl.method, cl.route, h, mws...)
	path := cl.path
	if path == "" {
		path = cl.route
	}
	req := httptest.NewRequest(cl.method, path, strings.NewReader(cl.body))
	if cl.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response is not a json object: %q", rec.Body.String())
	}
	return m
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, code, rec.Body.String())
	}
}

func admin() *utils.Claims { return &utils.Claims{ID: 1, Email: "admin@lmb.test", Role: "admin"} }
func staff() *utils.Claims { return &utils.Claims{ID: 2, Email: "staff@lmb.test", Role: "staff"} }

func fixedClock(s string) Clock {
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return Clock{Loc: time.UTC, now: func() time.Time { return at }}
}

// ----- users -----

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint64
	byMail map[string]*model.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byMail: map[string]*model.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *model.User, password string, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.Email = repository.NormalizeEmail(u.Email)
	if _, dup := f.byMail[u.Email]; dup {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	cp := *u
	cp.ID, cp.PasswordHash = f.nextID, hash
	f.byMail[u.Email] = &cp
	u.ID = cp.ID
	return cp.ID, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byMail[repository.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byMail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) List(context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.User, 0, len(f.byMail))
	for _, u := range f.byMail {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) SetPassword(_ context.Context, email, password string, cost int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byMail[repository.NormalizeEmail(email)]
	if !ok {
		return repository.ErrNotFound
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// ----- tasks -----

type fakeTasks struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]*model.Task
	filter model.TaskFilter
}

func newFakeTasks() *fakeTasks { return &fakeTasks{rows: map[uint64]*model.Task{}} }

func (f *fakeTasks) List(_ context.Context, flt model.TaskFilter) ([]*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter = flt
	var out []*model.Task
	for _, t := range f.rows {
		if flt.Status != "" && t.Status != flt.Status {
			continue
		}
		if flt.AssignedTo != 0 && (t.AssignedTo == nil || *t.AssignedTo != flt.AssignedTo) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTasks) Get(_ context.Context, id uint64) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) Create(_ context.Context, t *model.Task) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *t
	cp.ID = f.nextID
	f.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeTasks) Update(_ context.Context, t *model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.TaskEvent
	err    error
}

func (p *recordingPublisher) PublishTask(_ context.Context, ev queue.TaskEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

// ----- apartments, areas, categories -----

type fakeApartments struct {
	rows  []*model.Apartment
	reset []model.Apartment
}

func (f *fakeApartments) List(context.Context) ([]*model.Apartment, error) { return f.rows, nil }

func (f *fakeApartments) Reset(_ context.Context, layout []model.Apartment) (int, error) {
	f.reset = layout
	f.rows = f.rows[:0]
	for i := range layout {
		a := layout[i]
		a.ID = uint64(i + 1)
		f.rows = append(f.rows, &a)
	}
	return len(layout), nil
}

type fakeAreas struct {
	rows map[uint64]*model.Area
	next uint64
}

func (f *fakeAreas) List(context.Context) ([]*model.Area, error) {
	var out []*model.Area
	for _, a := range f.rows {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAreas) Create(_ context.Context, a *model.Area) (uint64, error) {
	if f.rows == nil {
		f.rows = map[uint64]*model.Area{}
	}
	for _, x := range f.rows {
		if x.Name == a.Name {
			return 0, repository.ErrDuplicate
		}
	}
	f.next++
	a.ID = f.next
	f.rows[a.ID] = a
	return a.ID, nil
}

func (f *fakeAreas) Update(_ context.Context, a *model.Area) error {
	if _, ok := f.rows[a.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[a.ID] = a
	return nil
}

func (f *fakeAreas) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

// ----- expenses -----

type fakeExpenses struct {
	rows    []*model.Expense
	created *model.Expense
}

func (f *fakeExpenses) List(context.Context) ([]*model.Expense, error) { return f.rows, nil }

func (f *fakeExpenses) Create(_ context.Context, e *model.Expense) (uint64, error) {
	if e.TaskID != nil && *e.TaskID == 404 {
		return 0, repository.ErrInvalidReference
	}
	f.created = e
	return 7, nil
}

func (f *fakeExpenses) Update(_ context.Context, e *model.Expense) error {
	return repository.ErrNotFound
}

func (f *fakeExpenses) Delete(context.Context, uint64) error { return nil }

func (f *fakeExpenses) Summary(context.Context) (model.ExpenseSummary, error) {
	return model.ExpenseSummary{TotalBuilding: 10, TotalApartments: 20.5}, nil
}

// ----- contractors -----

type fakeContractors struct {
	created *model.Contractor
	review  *model.ContractorReview
}

func (f *fakeContractors) List(context.Context) ([]*model.Contractor, error) { return nil, nil }

func (f *fakeContractors) Create(_ context.Context, c *model.Contractor) (uint64, error) {
	f.created = c
	return 3, nil
}

func (f *fakeContractors) Update(_ context.Context, c *model.Contractor) error {
	if c.ID != 3 {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeContractors) Delete(context.Context, uint64) error { return nil }

func (f *fakeContractors) ListReviews(context.Context, uint64) ([]*model.ContractorReview, error) {
	return []*model.ContractorReview{}, nil
}

func (f *fakeContractors) CreateReview(_ context.Context, v *model.ContractorReview) (uint64, error) {
	if v.ContractorID != 3 {
		return 0, repository.ErrInvalidReference
	}
	f.review = v
	return 9, nil
}
