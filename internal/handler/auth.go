package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/lmb/maintenance-tracker/internal/config"
	"github.com/lmb/maintenance-tracker/internal/model"
	"github.com/lmb/maintenance-tracker/internal/repository"
	"github.com/lmb/maintenance-tracker/internal/utils"
)

// AuthHandler bundles dependencies for the auth and user management
// endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
	Log   logrus.FieldLogger
}

func NewAuthHandler(cfg config.Config, u UserStore, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Log: log}
}

// ----- DTOs -----

type signupReq struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type userPart struct {
	ID    uint64     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	Phone *string    `json:"phone"`
}

func userView(u *model.User) userPart {
	return userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Phone: u.Phone}
}

// Bootstrap creates an administrator.  It sits behind the bootstrap key and
// exists so the first account can be made on an empty database.
func (h *AuthHandler) Bootstrap(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Name, email, and password required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	u := &model.User{Name: req.Name, Email: req.Email, Phone: optStr(req.Phone), Role: model.RoleAdmin}
	id, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return storeError(c, err, "User")
	}
	h.Log.WithFields(logrus.Fields{"user_id": id, "email": u.Email}).Info("admin bootstrapped")
	return created(c, "Admin created", "userId", id)
}

// Reset sets the password of an existing account or, when the email is
// unknown, creates it.  It is the recovery path for a locked-out admin.
func (h *AuthHandler) Reset(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	email := repository.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Email and password required")
	}
	role := model.RoleAdmin
	if strings.TrimSpace(req.Role) != "" {
		r, err := model.ParseRole(req.Role)
		if err != nil {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		role = r
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	for attempt := 0; attempt < 2; attempt++ {
		existing, err := h.Users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if err := h.Users.SetPassword(ctx, email, req.Password, h.Cfg.BcryptCost); err != nil {
				return storeError(c, err, "User")
			}
			h.Log.WithField("user_id", existing.ID).Info("password reset via bootstrap key")
			return c.JSON(http.StatusOK, echo.Map{"message": "Password reset", "userId": existing.ID})
		case !errors.Is(err, repository.ErrNotFound):
			return storeError(c, err, "User")
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			name, _, _ = strings.Cut(email, "@")
		}
		u := &model.User{Name: name, Email: email, Role: role}
		id, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
		if errors.Is(err, repository.ErrEmailExists) {
			// lost a race with a concurrent create; overwrite instead
			continue
		}
		if err != nil {
			return storeError(c, err, "User")
		}
		h.Log.WithFields(logrus.Fields{"user_id": id, "role": role}).Info("user created via bootstrap key")
		return created(c, "User created", "userId", id)
	}
	return fail(c, http.StatusInternalServerError, "reset failed")
}

// Login verifies credentials and issues a session token.  Unknown emails and
// wrong passwords produce the same response and take the same time.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Email and password required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.BurnVerify(req.Password, h.Cfg.BcryptCost)
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return storeError(c, err, "User")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, string(u.Role), h.Cfg.TokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "issue token failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":   tok.Token,
		"expires": tok.Exp,
		"user":    userView(u),
	})
}

// Me returns the account behind the session token.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return storeError(c, err, "User")
	}
	return c.JSON(http.StatusOK, userView(u))
}

// ListUsers returns every account.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return storeError(c, err, "User")
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// CreateUser adds an account.  Role defaults to staff.
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Name, email, and password required")
	}
	role := model.RoleStaff
	if strings.TrimSpace(req.Role) != "" {
		r, err := model.ParseRole(req.Role)
		if err != nil {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		role = r
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	u := &model.User{Name: req.Name, Email: req.Email, Phone: optStr(req.Phone), Role: role}
	id, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return storeError(c, err, "User")
	}
	return created(c, "User created", "userId", id)
}

// ResetPassword lets an admin set another user's password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Email and password required")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Users.SetPassword(ctx, req.Email, req.Password, h.Cfg.BcryptCost); err != nil {
		return storeError(c, err, "User")
	}
	return ok(c, "Password updated")
}
