package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/lmb/maintenance-tracker/internal/handler"
	"github.com/lmb/maintenance-tracker/internal/middleware"
)

// Handlers groups every handler the API exposes.
type Handlers struct {
	Auth        *handler.AuthHandler
	Building    *handler.BuildingHandler
	Contractors *handler.ContractorHandler
	Assets      *handler.AssetHandler
	Expenses    *handler.ExpenseHandler
	Tasks       *handler.TaskHandler
	Preventive  *handler.PreventiveHandler
	Overview    *handler.OverviewHandler
}

// Options carries the security settings routes are registered with.
type Options struct {
	JWTSecret    string
	BootstrapKey string
	ClientURLs   []string
	// CredentialLimit throttles login and the bootstrap-key routes.  Nil
	// disables throttling.
	CredentialLimit echo.MiddlewareFunc
	Log             logrus.FieldLogger
}

// New builds the echo instance with the global middleware chain and every
// route registered under /api.
func New(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     opts.ClientURLs,
		AllowCredentials: true,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, middleware.HeaderBootstrapKey,
		},
		ExposeHeaders: []string{echo.HeaderXRequestID, echo.HeaderContentDisposition},
	}))

	RegisterRoutes(e, h, opts)
	return e
}

// RegisterRoutes registers the API on e.  Health and login are public; the
// bootstrap routes need the bootstrap key; everything else needs a session
// token, and writes to reference data need the admin role.
func RegisterRoutes(e *echo.Echo, h Handlers, opts Options) {
	api := e.Group("/api")
	api.GET("/health", handler.Health)

	limit := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if opts.CredentialLimit != nil {
		limit = opts.CredentialLimit
	}
	bootstrap := middleware.BootstrapKey(opts.BootstrapKey)

	// ---- Auth ----
	api.POST("/auth/login", h.Auth.Login, limit)
	api.POST("/auth/bootstrap", h.Auth.Bootstrap, limit, bootstrap)
	api.POST("/auth/reset", h.Auth.Reset, limit, bootstrap)

	auth := api.Group("", middleware.JWTAuth(opts.JWTSecret))
	adminOnly := middleware.AdminOnly()
	auth.GET("/auth/me", h.Auth.Me)

	registerResources(auth, h, adminOnly)
}
