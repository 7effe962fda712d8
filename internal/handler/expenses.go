package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/lmb/maintenance-tracker/internal/model"
)

// ExpenseHandler serves the expense ledger.
type ExpenseHandler struct {
	Expenses ExpenseStore
	Clock    Clock
}

func NewExpenseHandler(s ExpenseStore, clock Clock) *ExpenseHandler {
	return &ExpenseHandler{Expenses: s, Clock: clock}
}

type expenseReq struct {
	ApartmentID  idField  `json:"apartment_id"`
	AreaID       idField  `json:"area_id"`
	ContractorID idField  `json:"contractor_id"`
	TaskID       idField  `json:"task_id"`
	Amount       numField `json:"amount"`
	SpentOn      *string  `json:"spent_on"`
	Description  *string  `json:"description"`
}

func (r expenseReq) expense() (*model.Expense, error) {
	amount := r.Amount.ptr()
	if amount == nil || *amount <= 0 {
		return nil, errAmount
	}
	spent, err := optDate("spent_on", r.SpentOn)
	if err != nil {
		return nil, err
	}
	return &model.Expense{
		ApartmentID:  r.ApartmentID.ptr(),
		AreaID:       r.AreaID.ptr(),
		ContractorID: r.ContractorID.ptr(),
		TaskID:       r.TaskID.ptr(),
		Amount:       *amount,
		SpentOn:      spent,
		Description:  optStr(r.Description),
	}, nil
}

var errAmount = errors.New("amount must be greater than 0")

// invalidExpense reports a failure from expenseReq.expense.
func invalidExpense(c echo.Context, err error) error {
	if errors.Is(err, errAmount) {
		return fail(c, http.StatusBadRequest, "Amount must be greater than 0")
	}
	return fail(c, http.StatusBadRequest, err.Error())
}

func (h *ExpenseHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Expenses.List(ctx)
	if err != nil {
		return storeError(c, err, "Expense")
	}
	return c.JSON(http.StatusOK, echo.Map{"expenses": list})
}

func (h *ExpenseHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	var req expenseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	e, err := req.expense()
	if err != nil {
		return invalidExpense(c, err)
	}
	e.CreatedBy = &uid

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Expenses.Create(ctx, e)
	if err != nil {
		return storeError(c, err, "Expense")
	}
	return created(c, "Expense created", "expenseId", id)
}

func (h *ExpenseHandler) Update(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req expenseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	e, err := req.expense()
	if err != nil {
		return invalidExpense(c, err)
	}
	e.ID = id

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Expenses.Update(ctx, e); err != nil {
		return storeError(c, err, "Expense")
	}
	return ok(c, "Expense updated")
}

func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, valid := pathID(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Expenses.Delete(ctx, id); err != nil {
		return storeError(c, err, "Expense")
	}
	return ok(c, "Expense deleted")
}

func (h *ExpenseHandler) Summary(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	s, err := h.Expenses.Summary(ctx)
	if err != nil {
		return storeError(c, err, "Expense")
	}
	return c.JSON(http.StatusOK, s)
}

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export streams the ledger as a spreadsheet.
func (h *ExpenseHandler) Export(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	list, err := h.Expenses.List(ctx)
	if err != nil {
		return storeError(c, err, "Expense")
	}
	buf, err := expenseSheet(list)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "export failed")
	}
	name := fmt.Sprintf("expenses-%s.xlsx", h.Clock.Today())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

var expenseHeader = []any{"Date", "Amount", "Location", "Area type", "Contractor", "Task", "Description"}

// expenseSheet renders expenses onto Sheet1, one row each under a header
// row.  Location is the apartment label, the area name, or "Building".
func expenseSheet(list []*model.Expense) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &expenseHeader); err != nil {
		return nil, err
	}
	for i, e := range list {
		loc, kind := "Building", "building"
		switch {
		case e.ApartmentLabel != nil:
			loc, kind = *e.ApartmentLabel, "apartment"
		case e.AreaName != nil:
			loc = *e.AreaName
			kind = str(e.AreaType)
		}
		var task any
		if e.TaskID != nil {
			task = *e.TaskID
		}
		row := []any{str(e.SpentOn), e.Amount, loc, kind, str(e.ContractorName), task, str(e.Description)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f.WriteToBuffer()
}
