package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/neuhauss/example-gemini/internal/application/analytics"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	DraftUC     *usecase.DraftUseCase
	AIUC        *usecase.AIUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *usecase.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Items
	itemHandler := NewItemHandler(deps.ItemUC)
	items := api.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/export", itemHandler.Export) // antes de /:id
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Post("/:id/delete-request", itemHandler.RequestDelete)
	items.Delete("/:id", itemHandler.ConfirmDelete)
	api.Get("/categories", itemHandler.Categories)

	// Formularios
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts := api.Group("/drafts")
	drafts.Post("/", draftHandler.Open)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Put("/:id", draftHandler.Edit)
	drafts.Delete("/:id", draftHandler.Discard)
	drafts.Post("/:id/enrich", draftHandler.Enrich)
	drafts.Post("/:id/submit", draftHandler.Submit)

	// IA
	aiHandler := NewAIHandler(deps.AIUC)
	api.Post("/ai/enrich", aiHandler.Enrich)

	// Resumen y reportes
	api.Get("/stats", NewDashboardHandler(deps.DashboardUC).GetSummary)
	api.Get("/reports/inventory.pdf", NewReportHandler(deps.ReportUC).InventoryPDF)
}
