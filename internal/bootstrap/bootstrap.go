// Package bootstrap arma las dependencias compartidas por el servidor HTTP y el CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/neuhauss/example-gemini/internal/application/inventory"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
	infraai "github.com/neuhauss/example-gemini/internal/infrastructure/ai"
	"github.com/neuhauss/example-gemini/internal/infrastructure/blob"
	"github.com/neuhauss/example-gemini/pkg/config"
)

// Inventory store inicializado junto con su backend.
type Inventory struct {
	Store *inventory.Store
	Blobs *blob.Opened
}

// Close libera el backend.
func (i *Inventory) Close() {
	if i.Blobs != nil && i.Blobs.Close != nil {
		i.Blobs.Close()
	}
}

// OpenInventory abre el backend configurado, carga la semilla opcional y
// ejecuta Initialize. Solo falla si el backend no se puede abrir o la
// semilla configurada es inválida.
func OpenInventory(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Inventory, error) {
	opened, err := blob.Open(ctx, cfg.Storage, cfg.DB, cfg.Redis)
	if err != nil {
		return nil, err
	}

	opts := []inventory.Option{inventory.WithLogger(log.With().Str("component", "store").Logger())}
	if cfg.App.SeedFile != "" {
		seed, err := inventory.LoadSeedFile(cfg.App.SeedFile)
		if err != nil {
			opened.Close()
			return nil, fmt.Errorf("semilla: %w", err)
		}
		opts = append(opts, inventory.WithSeed(seed))
	}

	store := inventory.NewStore(opened.Store, cfg.Storage.Key, opts...)
	items := store.Initialize(ctx)
	log.Info().
		Str("driver", cfg.Storage.Driver).
		Str("key", cfg.Storage.Key).
		Int("items", len(items)).
		Msg("inventario cargado")

	return &Inventory{Store: store, Blobs: opened}, nil
}

// WatchInventory recarga el store cuando otro proceso reescribe el archivo del
// blob. Solo aplica al driver file; bloquea hasta que ctx se cancele.
func WatchInventory(ctx context.Context, inv *Inventory, key string, log zerolog.Logger) error {
	if inv.Blobs.File == nil {
		return nil
	}
	if key == "" {
		key = inventory.DefaultBlobKey
	}
	return inv.Blobs.File.Watch(ctx, key, log, func() {
		if err := inv.Store.Reload(ctx); err != nil {
			log.Warn().Err(err).Msg("recarga del inventario fallida")
			return
		}
		log.Info().Int("items", len(inv.Store.List())).Msg("inventario recargado desde el blob")
	})
}

// NewAIUseCase gateway de enriquecimiento con el proveedor configurado.
func NewAIUseCase(cfg config.AIConfig, log zerolog.Logger) *usecase.AIUseCase {
	l := log.With().Str("component", "ai").Str("provider", cfg.Provider).Logger()
	if !infraai.Configured(cfg) {
		l.Warn().Msg("API key del proveedor de IA no configurada; las sugerencias devolverán vacío")
	}
	return usecase.NewAIUseCase(infraai.NewFromConfig(cfg), cfg.Timeout, l)
}
