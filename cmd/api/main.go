package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/neuhauss/example-gemini/internal/application/analytics"
	"github.com/neuhauss/example-gemini/internal/application/session"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
	"github.com/neuhauss/example-gemini/internal/bootstrap"
	infrapdf "github.com/neuhauss/example-gemini/internal/infrastructure/pdf"
	httpRouter "github.com/neuhauss/example-gemini/internal/interfaces/http"
	"github.com/neuhauss/example-gemini/pkg/config"
	"github.com/neuhauss/example-gemini/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("ai_provider", cfg.AI.Provider).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	inv, err := bootstrap.OpenInventory(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir inventario")
	}
	defer inv.Close()

	if cfg.Storage.Watch {
		go func() {
			if err := bootstrap.WatchInventory(ctx, inv, cfg.Storage.Key, log.Component("watch")); err != nil {
				log.Error().Err(err).Msg("watcher del blob finalizado")
			}
		}()
	}

	confirms := session.NewDeleteConfirmations(cfg.Form.DeleteConfirmTTL, nil)
	forms := session.NewForms(nil, log.Component("forms"), session.WithIdleTTL(cfg.Form.IdleTTL))

	aiUC := bootstrap.NewAIUseCase(cfg.AI, log.Zerolog())
	itemUC := usecase.NewItemUseCase(inv.Store, confirms, log.Component("items"))
	draftUC := usecase.NewDraftUseCase(forms, inv.Store, aiUC)
	dashboardUC := appanalytics.NewDashboardUseCase(inv.Store)

	// PDF: reporte del inventario
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportUC := usecase.NewReportUseCase(inv.Store, pdfGenerator, "")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true, // los ids de ruta se guardan en sesión
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.AI.Timeout + 5*time.Second, // /enrich puede esperar al LLM
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventário API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "items": len(inv.Store.List())})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		DraftUC:     draftUC,
		AIUC:        aiUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
