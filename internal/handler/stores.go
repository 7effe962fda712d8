package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// Handlers depend on these narrow views of the repositories so tests can
// substitute in-memory fakes.  The *repository.XRepo types satisfy them.

type UserStore interface {
	Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	SetPassword(ctx context.Context, email, password string, cost int) error
}

type ApartmentStore interface {
	List(ctx context.Context) ([]*model.Apartment, error)
	Reset(ctx context.Context, layout []model.Apartment) (int, error)
}

type AreaStore interface {
	List(ctx context.Context) ([]*model.Area, error)
	Create(ctx context.Context, a *model.Area) (uint64, error)
	Update(ctx context.Context, a *model.Area) error
	Delete(ctx context.Context, id uint64) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]*model.Category, error)
	Create(ctx context.Context, c *model.Category) (uint64, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint64) error
}

type ContractorStore interface {
	List(ctx context.Context) ([]*model.Contractor, error)
	Create(ctx context.Context, c *model.Contractor) (uint64, error)
	Update(ctx context.Context, c *model.Contractor) error
	Delete(ctx context.Context, id uint64) error
	ListReviews(ctx context.Context, contractorID uint64) ([]*model.ContractorReview, error)
	CreateReview(ctx context.Context, v *model.ContractorReview) (uint64, error)
}

type AssetStore interface {
	List(ctx context.Context) ([]*model.Asset, error)
	Create(ctx context.Context, a *model.Asset) (uint64, error)
	Update(ctx context.Context, a *model.Asset) error
	Delete(ctx context.Context, id uint64) error
}

type ExpenseStore interface {
	List(ctx context.Context) ([]*model.Expense, error)
	Create(ctx context.Context, e *model.Expense) (uint64, error)
	Update(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, id uint64) error
	Summary(ctx context.Context) (model.ExpenseSummary, error)
}

type TaskStore interface {
	List(ctx context.Context, f model.TaskFilter) ([]*model.Task, error)
	Get(ctx context.Context, id uint64) (*model.Task, error)
	Create(ctx context.Context, t *model.Task) (uint64, error)
	Update(ctx context.Context, t *model.Task) error
}

type PreventiveStore interface {
	ListActive(ctx context.Context) ([]*model.PreventiveSchedule, error)
	Create(ctx context.Context, p *model.PreventiveSchedule) (uint64, error)
}

type OverviewStore interface {
	Overview(ctx context.Context, today, weekEnd string, upcoming int) (*model.Overview, error)
}

// dbTimeout bounds every store call made on behalf of a request.
const dbTimeout = 5 * time.Second

func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}
