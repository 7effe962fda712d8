package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/lmb/maintenance-tracker/internal/model"
	"github.com/lmb/maintenance-tracker/internal/repository"
)

// BuildingHandler serves the physical layout of the building: apartments,
// shared areas and the task categories used to classify work in them.
type BuildingHandler struct {
	Apartments ApartmentStore
	Areas      AreaStore
	Categories CategoryStore
	Log        logrus.FieldLogger
}

func NewBuildingHandler(apts ApartmentStore, areas AreaStore, cats CategoryStore, log logrus.FieldLogger) *BuildingHandler {
	return &BuildingHandler{Apartments: apts, Areas: areas, Categories: cats, Log: log}
}

type resetApartmentsReq struct {
	Floors        intField `json:"floors"`
	UnitsPerFloor intField `json:"units_per_floor"`
	StartFloor    intField `json:"start_floor"`
}

type areaReq struct {
	Name        string  `json:"name"`
	AreaType    string  `json:"area_type"`
	Description *string `json:"description"`
}

type categoryReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *BuildingHandler) ListApartments(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	apts, err := h.Apartments.List(ctx)
	if err != nil {
		return storeError(c, err, "Apartment")
	}
	return c.JSON(http.StatusOK, echo.Map{"apartments": apts})
}

// ResetApartments replaces every apartment with a generated layout.
// Task, asset and expense references to removed apartments are cleared by
// the foreign keys.
func (h *BuildingHandler) ResetApartments(c echo.Context) error {
	var req resetApartmentsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if req.Floors.ptr() == nil || req.UnitsPerFloor.ptr() == nil {
		return missing(c, "floors", "units_per_floor")
	}
	start := 1
	if p := req.StartFloor.ptr(); p != nil {
		start = *p
	}
	layout, err := repository.ApartmentLayout(start, *req.Floors.ptr(), *req.UnitsPerFloor.ptr())
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	n, err := h.Apartments.Reset(ctx, layout)
	if err != nil {
		return storeError(c, err, "Apartment")
	}
	h.Log.WithField("count", n).Info("apartments regenerated")
	return c.JSON(http.StatusOK, echo.Map{"message": "Apartments regenerated", "count": n})
}

func (h *BuildingHandler) ListAreas(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	areas, err := h.Areas.List(ctx)
	if err != nil {
		return storeError(c, err, "Area")
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

func (r areaReq) area() (*model.Area, error) {
	t, err := model.ParseAreaType(r.AreaType)
	if err != nil {
		return nil, err
	}
	return &model.Area{Name: strings.TrimSpace(r.Name), AreaType: t, Description: optStr(r.Description)}, nil
}

func (h *BuildingHandler) CreateArea(c echo.Context) error {
	var req areaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.AreaType) == "" {
		return missing(c, "name", "area_type")
	}
	a, err := req.area()
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Areas.Create(ctx, a)
	if err != nil {
		return storeError(c, err, "Area")
	}
	return created(c, "Area created", "areaId", id)
}

func (h *BuildingHandler) UpdateArea(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req areaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.AreaType) == "" {
		return missing(c, "name", "area_type")
	}
	a, err := req.area()
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	a.ID = id

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Areas.Update(ctx, a); err != nil {
		return storeError(c, err, "Area")
	}
	return ok(c, "Area updated")
}

func (h *BuildingHandler) DeleteArea(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Areas.Delete(ctx, id); err != nil {
		return storeError(c, err, "Area")
	}
	return ok(c, "Area deleted")
}

func (h *BuildingHandler) ListCategories(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		return storeError(c, err, "Category")
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

func (h *BuildingHandler) CreateCategory(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return missing(c, "name")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Categories.Create(ctx, &model.Category{Name: name, Description: optStr(req.Description)})
	if err != nil {
		return storeError(c, err, "Category")
	}
	return created(c, "Category created", "categoryId", id)
}

func (h *BuildingHandler) UpdateCategory(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return missing(c, "name")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Categories.Update(ctx, &model.Category{ID: id, Name: name, Description: optStr(req.Description)}); err != nil {
		return storeError(c, err, "Category")
	}
	return ok(c, "Category updated")
}

func (h *BuildingHandler) DeleteCategory(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		return storeError(c, err, "Category")
	}
	return ok(c, "Category deleted")
}
