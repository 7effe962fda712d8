package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// upcomingTasks is how many open tasks the dashboard lists.
const upcomingTasks = 10

type OverviewHandler struct {
	Store OverviewStore
	Clock Clock
}

func NewOverviewHandler(s OverviewStore, clock Clock) *OverviewHandler {
	return &OverviewHandler{Store: s, Clock: clock}
}

// Get returns the admin dashboard.  "This week" is today plus the next
// seven days.
func (h *OverviewHandler) Get(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	ov, err := h.Store.Overview(ctx, h.Clock.Today(), h.Clock.DaysFromToday(7), upcomingTasks)
	if err != nil {
		return storeError(c, err, "Overview")
	}
	return c.JSON(http.StatusOK, ov)
}
