package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// AssetHandler serves building equipment.
type AssetHandler struct {
	Assets AssetStore
}

func NewAssetHandler(s AssetStore) *AssetHandler { return &AssetHandler{Assets: s} }

type assetReq struct {
	Name         string   `json:"name"`
	Category     *string  `json:"category"`
	AreaType     string   `json:"area_type"`
	AreaID       idField  `json:"area_id"`
	ApartmentID  idField  `json:"apartment_id"`
	ContractorID idField  `json:"contractor_id"`
	SerialNumber *string  `json:"serial_number"`
	InstalledOn  *string  `json:"installed_on"`
	NextDueDate  *string  `json:"next_due_date"`
	IntervalDays intField `json:"interval_days"`
	Notes        *string  `json:"notes"`
}

// asset validates the request.  The location decides which of apartment_id
// and area_id is kept.
func (r assetReq) asset() (*model.Asset, error) {
	loc, err := model.ParseAssetLocation(r.AreaType)
	if err != nil {
		return nil, err
	}
	installed, err := optDate("installed_on", r.InstalledOn)
	if err != nil {
		return nil, err
	}
	next, err := optDate("next_due_date", r.NextDueDate)
	if err != nil {
		return nil, err
	}
	interval := r.IntervalDays.ptr()
	if interval != nil && *interval < 1 {
		return nil, &model.InvalidValueError{Field: "interval_days", Value: strconv.Itoa(*interval)}
	}
	a := &model.Asset{
		Name:         strings.TrimSpace(r.Name),
		Category:     optStr(r.Category),
		AreaType:     loc,
		ContractorID: r.ContractorID.ptr(),
		SerialNumber: optStr(r.SerialNumber),
		InstalledOn:  installed,
		NextDueDate:  next,
		IntervalDays: interval,
		Notes:        optStr(r.Notes),
	}
	if loc == model.LocationApartment {
		a.ApartmentID = r.ApartmentID.ptr()
	} else {
		a.AreaID = r.AreaID.ptr()
	}
	return a, nil
}

func (h *AssetHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	assets, err := h.Assets.List(ctx)
	if err != nil {
		return storeError(c, err, "Asset")
	}
	return c.JSON(http.StatusOK, echo.Map{"assets": assets})
}

func (h *AssetHandler) Create(c echo.Context) error {
	var req assetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.AreaType) == "" {
		return missing(c, "name", "area_type")
	}
	a, err := req.asset()
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Assets.Create(ctx, a)
	if err != nil {
		return storeError(c, err, "Asset")
	}
	return created(c, "Asset created", "assetId", id)
}

func (h *AssetHandler) Update(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req assetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.AreaType) == "" {
		return missing(c, "name", "area_type")
	}
	a, err := req.asset()
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	a.ID = id

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Assets.Update(ctx, a); err != nil {
		return storeError(c, err, "Asset")
	}
	return ok(c, "Asset updated")
}

func (h *AssetHandler) Delete(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Assets.Delete(ctx, id); err != nil {
		return storeError(c, err, "Asset")
	}
	return ok(c, "Asset deleted")
}
