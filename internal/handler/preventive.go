package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// PreventiveHandler serves recurring upkeep schedules.
type PreventiveHandler struct {
	Schedules PreventiveStore
}

func NewPreventiveHandler(s PreventiveStore) *PreventiveHandler {
	return &PreventiveHandler{Schedules: s}
}

type preventiveReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CategoryID  idField `json:"category_id"`
	ApartmentID idField `json:"apartment_id"`
	AreaID      idField `json:"area_id"`
	Frequency   string  `json:"frequency"`
	NextDueDate string  `json:"next_due_date"`
	AssignedTo  idField `json:"assigned_to"`
}

// List returns active schedules, soonest first.
func (h *PreventiveHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Schedules.ListActive(ctx)
	if err != nil {
		return storeError(c, err, "Schedule")
	}
	return c.JSON(http.StatusOK, echo.Map{"schedules": list})
}

func (h *PreventiveHandler) Create(c echo.Context) error {
	var req preventiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Frequency) == "" || strings.TrimSpace(req.NextDueDate) == "" {
		return missing(c, "title", "frequency", "next_due_date")
	}
	freq, err := model.ParseFrequency(req.Frequency)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	next, err := model.ParseDate("next_due_date", req.NextDueDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Schedules.Create(ctx, &model.PreventiveSchedule{
		Title:       title,
		Description: optStr(req.Description),
		CategoryID:  req.CategoryID.ptr(),
		ApartmentID: req.ApartmentID.ptr(),
		AreaID:      req.AreaID.ptr(),
		Frequency:   freq,
		NextDueDate: next,
		AssignedTo:  req.AssignedTo.ptr(),
		Active:      true,
	})
	if err != nil {
		return storeError(c, err, "Schedule")
	}
	return created(c, "Preventive schedule created", "scheduleId", id)
}
