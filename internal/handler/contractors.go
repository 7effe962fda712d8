package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// ContractorHandler serves contractors and the reviews left on them.
type ContractorHandler struct {
	Contractors ContractorStore
}

func NewContractorHandler(s ContractorStore) *ContractorHandler {
	return &ContractorHandler{Contractors: s}
}

type contractorReq struct {
	Name      string   `json:"name"`
	Company   *string  `json:"company"`
	Email     *string  `json:"email"`
	Phone     string   `json:"phone"`
	Specialty *string  `json:"specialty"`
	Rating    numField `json:"rating"`
	Notes     *string  `json:"notes"`
}

type reviewReq struct {
	TaskID  idField  `json:"task_id"`
	Rating  intField `json:"rating"`
	Comment *string  `json:"comment"`
}

// contractor validates the request.  It returns a message for a 400 or "".
func (r contractorReq) contractor() (*model.Contractor, string) {
	name, phone := strings.TrimSpace(r.Name), strings.TrimSpace(r.Phone)
	if name == "" || phone == "" {
		return nil, "Name and phone required"
	}
	rating := r.Rating.or(0)
	if rating < 0 || rating > 5 {
		return nil, "Rating must be between 0 and 5"
	}
	return &model.Contractor{
		Name:      name,
		Company:   optStr(r.Company),
		Email:     optStr(r.Email),
		Phone:     phone,
		Specialty: optStr(r.Specialty),
		Rating:    rating,
		Notes:     optStr(r.Notes),
	}, ""
}

func (h *ContractorHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Contractors.List(ctx)
	if err != nil {
		return storeError(c, err, "Contractor")
	}
	return c.JSON(http.StatusOK, echo.Map{"contractors": list})
}

func (h *ContractorHandler) Create(c echo.Context) error {
	var req contractorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	ct, msg := req.contractor()
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Contractors.Create(ctx, ct)
	if err != nil {
		return storeError(c, err, "Contractor")
	}
	return created(c, "Contractor created", "contractorId", id)
}

func (h *ContractorHandler) Update(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req contractorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	ct, msg := req.contractor()
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	ct.ID = id

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Contractors.Update(ctx, ct); err != nil {
		return storeError(c, err, "Contractor")
	}
	return ok(c, "Contractor updated")
}

func (h *ContractorHandler) Delete(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Contractors.Delete(ctx, id); err != nil {
		return storeError(c, err, "Contractor")
	}
	return ok(c, "Contractor deleted")
}

func (h *ContractorHandler) ListReviews(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	reviews, err := h.Contractors.ListReviews(ctx, id)
	if err != nil {
		return storeError(c, err, "Contractor")
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}

// CreateReview records a 1..5 rating by the caller.  Any signed-in user may
// review.
func (h *ContractorHandler) CreateReview(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	r := req.Rating.ptr()
	if r == nil || *r < 1 || *r > 5 {
		return fail(c, http.StatusBadRequest, "Rating must be between 1 and 5")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	rid, err := h.Contractors.CreateReview(ctx, &model.ContractorReview{
		ContractorID: id,
		TaskID:       req.TaskID.ptr(),
		Rating:       *r,
		Comment:      optStr(req.Comment),
		CreatedBy:    &uid,
	})
	if err != nil {
		return storeError(c, err, "Contractor")
	}
	return created(c, "Review added", "reviewId", rid)
}
