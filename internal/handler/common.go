package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lmb/maintenance-tracker/internal/middleware"
	"github.com/lmb/maintenance-tracker/internal/model"
	"github.com/lmb/maintenance-tracker/internal/repository"
)

// errInvalidBody is the response for a body that is not valid JSON for the
// route.
var errInvalidBody = echo.Map{"error": "Invalid request body"}

// fail writes an error body with status.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

// getUserID returns the id of the authenticated caller.
func getUserID(c echo.Context) (uint64, error) {
	if cl := middleware.Claims(c); cl != nil && cl.ID != 0 {
		return cl.ID, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// storeError maps a repository error onto a response.  what names the
// resource in the 404 message.
func storeError(c echo.Context, err error, what string) error {
	var iv *model.InvalidValueError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, what+" not found")
	case errors.Is(err, repository.ErrEmailExists):
		return fail(c, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, repository.ErrDuplicate):
		return fail(c, http.StatusBadRequest, what+" already exists")
	case errors.Is(err, repository.ErrInvalidReference):
		return fail(c, http.StatusBadRequest, "Referenced record does not exist")
	case errors.As(err, &iv):
		return fail(c, http.StatusBadRequest, iv.Error())
	default:
		return fail(c, http.StatusInternalServerError, err.Error())
	}
}

// missing reports a validation failure naming the absent fields.
func missing(c echo.Context, fields ...string) error {
	return fail(c, http.StatusBadRequest, "Missing required fields: "+strings.Join(fields, ", "))
}

// created is the response for a successful insert.  key keeps the
// identifier names the web client already reads (userId, taskId, ...).
func created(c echo.Context, msg, key string, id uint64) error {
	return c.JSON(http.StatusCreated, echo.Map{"message": msg, key: id})
}

func ok(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}
