package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/config"
	"github.com/lmb/maintenance-tracker/internal/handler"
	"github.com/lmb/maintenance-tracker/internal/logging"
	"github.com/lmb/maintenance-tracker/internal/middleware"
	"github.com/lmb/maintenance-tracker/internal/model"
	"github.com/lmb/maintenance-tracker/internal/service"
	"github.com/lmb/maintenance-tracker/internal/utils"
)

const secret = "router-test-secret"

// countingTasks records how often the store was reached.
type countingTasks struct{ calls int }

func (s *countingTasks) List(context.Context, model.TaskFilter) ([]*model.Task, error) {
	s.calls++
	return []*model.Task{}, nil
}
func (s *countingTasks) Get(context.Context, uint64) (*model.Task, error) { s.calls++; return nil, nil }
func (s *countingTasks) Create(context.Context, *model.Task) (uint64, error) {
	s.calls++
	return 1, nil
}
func (s *countingTasks) Update(context.Context, *model.Task) error { s.calls++; return nil }

type countingOverview struct{ calls int }

func (s *countingOverview) Overview(context.Context, string, string, int) (*model.Overview, error) {
	s.calls++
	return &model.Overview{}, nil
}

type fixture struct {
	e        *echo.Echo
	tasks    *countingTasks
	overview *countingOverview
}

func newFixture(t *testing.T, bootstrapKey string) fixture {
	t.Helper()
	log := logging.Discard()
	tasks, ov := &countingTasks{}, &countingOverview{}
	clock := handler.NewClock(time.UTC)
	cfg := config.Config{JWTSecret: secret, TokenTTL: time.Hour, BcryptCost: 4}
	h := Handlers{
		Auth:        handler.NewAuthHandler(cfg, nil, log),
		Building:    handler.NewBuildingHandler(nil, nil, nil, log),
		Contractors: handler.NewContractorHandler(nil),
		Assets:      handler.NewAssetHandler(nil),
		Expenses:    handler.NewExpenseHandler(nil, clock),
		Tasks:       handler.NewTaskHandler(tasks, service.Noop{}, clock, log),
		Preventive:  handler.NewPreventiveHandler(nil),
		Overview:    handler.NewOverviewHandler(ov, clock),
	}
	e := New(h, Options{JWTSecret: secret, BootstrapKey: bootstrapKey, ClientURLs: []string{"http://localhost:5173"}, Log: log})
	return fixture{e: e, tasks: tasks, overview: ov}
}

func (f fixture) do(method, path, bearer string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, 2, "u@lmb.test", role, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok.Token
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Error("missing request id header")
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	f := newFixture(t, "")
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPut, "/api/tasks/1"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/apartments"},
		{http.MethodGet, "/api/overview"},
		{http.MethodPost, "/api/areas"},
	} {
		rec := f.do(r.method, r.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", r.method, r.path, rec.Code)
		}
	}
	if f.tasks.calls != 0 || f.overview.calls != 0 {
		t.Errorf("stores reached without a token: tasks=%d overview=%d", f.tasks.calls, f.overview.calls)
	}
}

func TestAdminRoutesRejectStaff(t *testing.T) {
	f := newFixture(t, "")
	tok := token(t, "staff")
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users"},
		{http.MethodPost, "/api/apartments/reset"},
		{http.MethodPost, "/api/contractors"},
		{http.MethodDelete, "/api/assets/3"},
		{http.MethodGet, "/api/expenses/export"},
		{http.MethodGet, "/api/overview"},
	} {
		rec := f.do(r.method, r.path, tok, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s = %d, want 403", r.method, r.path, rec.Code)
		}
	}
	if f.overview.calls != 0 {
		t.Error("overview reached by staff")
	}

	rec := f.do(http.MethodGet, "/api/overview", token(t, "admin"), nil)
	if rec.Code != http.StatusOK || f.overview.calls != 1 {
		t.Errorf("admin overview = %d, calls %d", rec.Code, f.overview.calls)
	}
}

func TestStaffReachesTasks(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(http.MethodGet, "/api/tasks", token(t, "staff"), nil)
	if rec.Code != http.StatusOK || f.tasks.calls != 1 {
		t.Errorf("GET /api/tasks = %d, calls %d", rec.Code, f.tasks.calls)
	}
}

func TestBootstrapRoutesNeedKey(t *testing.T) {
	f := newFixture(t, "let-me-in")
	for _, path := range []string{"/api/auth/bootstrap", "/api/auth/reset"} {
		for _, key := range []string{"", "wrong"} {
			rec := f.do(http.MethodPost, path, "", map[string]string{middleware.HeaderBootstrapKey: key})
			if rec.Code != http.StatusForbidden {
				t.Errorf("%s with key %q = %d, want 403", path, key, rec.Code)
			}
		}
	}

	// with no key configured the routes are closed even to an empty header
	closed := newFixture(t, "")
	rec := closed.do(http.MethodPost, "/api/auth/bootstrap", "", map[string]string{middleware.HeaderBootstrapKey: ""})
	if rec.Code != http.StatusForbidden {
		t.Errorf("unconfigured bootstrap = %d, want 403", rec.Code)
	}
}

func TestCredentialLimitWrapsLogin(t *testing.T) {
	log := logging.Discard()
	hits := 0
	limit := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hits++
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many requests, try again later"})
		}
	}
	h := Handlers{Auth: handler.NewAuthHandler(config.Config{JWTSecret: secret}, nil, log)}
	e := echo.New()
	RegisterRoutes(e, h, Options{JWTSecret: secret, CredentialLimit: limit, Log: log})

	for _, path := range []string{"/api/auth/login", "/api/auth/bootstrap", "/api/auth/reset"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if rec.Code != http.StatusTooManyRequests {
			t.Errorf("%s = %d, want 429", path, rec.Code)
		}
	}
	if hits != 3 {
		t.Errorf("limiter saw %d requests, want 3", hits)
	}
}
