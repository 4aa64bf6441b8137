package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizplan-api/internal/application/auth"
	planapp "github.com/jhoicas/bizplan-api/internal/application/plan"
	"github.com/jhoicas/bizplan-api/internal/application/report"
	"github.com/jhoicas/bizplan-api/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	ProductUC *usecase.ProductUseCase
	PlanUC    *planapp.UseCase
	ReportUC  *report.UseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Product catalog
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", productHandler.Update)
	products.Delete("/:code", productHandler.Delete)

	// Plans
	plans := protected.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Post("/", planHandler.Create)
	plans.Get("/", planHandler.List)
	plans.Post("/import", planHandler.Import)
	plans.Get("/:id", planHandler.Get)
	plans.Put("/:id", planHandler.Rename)
	plans.Delete("/:id", planHandler.Delete)
	plans.Put("/:id/settings", planHandler.UpdateSettings)
	plans.Post("/:id/items", planHandler.AddItem)
	plans.Patch("/:id/items/:itemId", planHandler.UpdateItem)
	plans.Put("/:id/items/:itemId", planHandler.UpdateItem)
	plans.Delete("/:id/items/:itemId", planHandler.RemoveItem)
	plans.Post("/:id/recalculate", planHandler.Recalculate)
	plans.Get("/:id/export", planHandler.Export)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	plans.Get("/:id/report", reportHandler.Get)
	plans.Get("/:id/report.pdf", reportHandler.PDF)
	plans.Get("/:id/report.xlsx", reportHandler.Excel)
}
