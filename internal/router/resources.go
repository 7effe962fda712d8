package router

import (
	"github.com/labstack/echo/v4"
)

// registerResources mounts the building data routes on g, which already
// requires a session token.
func registerResources(g *echo.Group, h Handlers, adminOnly echo.MiddlewareFunc) {
	// ---- Users ----
	g.GET("/users", h.Auth.ListUsers, adminOnly)
	g.POST("/users", h.Auth.CreateUser, adminOnly)
	g.POST("/users/reset-password", h.Auth.ResetPassword, adminOnly)

	// ---- Apartments, areas, categories ----
	g.GET("/apartments", h.Building.ListApartments)
	g.POST("/apartments/reset", h.Building.ResetApartments, adminOnly)

	g.GET("/areas", h.Building.ListAreas)
	g.POST("/areas", h.Building.CreateArea, adminOnly)
	g.PUT("/areas/:id", h.Building.UpdateArea, adminOnly)
	g.DELETE("/areas/:id", h.Building.DeleteArea, adminOnly)

	g.GET("/categories", h.Building.ListCategories)
	g.POST("/categories", h.Building.CreateCategory, adminOnly)
	g.PUT("/categories/:id", h.Building.UpdateCategory, adminOnly)
	g.DELETE("/categories/:id", h.Building.DeleteCategory, adminOnly)

	// ---- Contractors ----
	g.GET("/contractors", h.Contractors.List)
	g.POST("/contractors", h.Contractors.Create, adminOnly)
	g.PUT("/contractors/:id", h.Contractors.Update, adminOnly)
	g.DELETE("/contractors/:id", h.Contractors.Delete, adminOnly)
	g.GET("/contractors/:id/reviews", h.Contractors.ListReviews)
	g.POST("/contractors/:id/reviews", h.Contractors.CreateReview)

	// ---- Assets ----
	g.GET("/assets", h.Assets.List)
	g.POST("/assets", h.Assets.Create, adminOnly)
	g.PUT("/assets/:id", h.Assets.Update, adminOnly)
	g.DELETE("/assets/:id", h.Assets.Delete, adminOnly)

	// ---- Expenses ----
	g.GET("/expenses", h.Expenses.List)
	g.GET("/expenses/summary", h.Expenses.Summary)
	g.GET("/expenses/export", h.Expenses.Export, adminOnly)
	g.POST("/expenses", h.Expenses.Create, adminOnly)
	g.PUT("/expenses/:id", h.Expenses.Update, adminOnly)
	g.DELETE("/expenses/:id", h.Expenses.Delete, adminOnly)

	// ---- Tasks ----
	g.GET("/tasks", h.Tasks.List)
	g.GET("/tasks/:id", h.Tasks.Get)
	g.POST("/tasks", h.Tasks.Create)
	g.PUT("/tasks/:id", h.Tasks.Update)

	// ---- Preventive ----
	g.GET("/preventive", h.Preventive.List)
	g.POST("/preventive", h.Preventive.Create)

	// ---- Overview ----
	g.GET("/overview", h.Overview.Get, adminOnly)
}
