package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appanalytics "github.com/neuhauss/example-gemini/internal/application/analytics"
	"github.com/neuhauss/example-gemini/internal/application/session"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
	"github.com/neuhauss/example-gemini/internal/bootstrap"
	infrapdf "github.com/neuhauss/example-gemini/internal/infrastructure/pdf"
	"github.com/neuhauss/example-gemini/pkg/config"
	"github.com/neuhauss/example-gemini/pkg/logger"
)

// env casos de uso disponibles para los subcomandos.
type env struct {
	items     *usecase.ItemUseCase
	drafts    *usecase.DraftUseCase
	ai        *usecase.AIUseCase
	dashboard *appanalytics.DashboardUseCase
	report    *usecase.ReportUseCase
	close     func()
}

// globalFlags flags persistentes del comando raíz.
type globalFlags struct {
	verbose bool
	driver  string
	dir     string
}

type envOpener func(ctx context.Context, g globalFlags) (*env, error)

// cli estado compartido entre el comando raíz y los subcomandos.
type cli struct {
	flags globalFlags
	open  envOpener
	env   *env
}

// close libera el backend abierto por el comando, si lo hubo. cobra no ejecuta
// PersistentPostRun cuando RunE falla, por eso lo llama main.
func (c *cli) close() {
	if c.env != nil && c.env.close != nil {
		c.env.close()
	}
	c.env = nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "inventario",
		Short: "Inventário pessoal com sugestões de IA",
		Long: `inventario lista, cadastra, edita e exclui itens do inventário.
Os dados ficam no mesmo blob que o servidor HTTP usa (STORAGE_DRIVER / STORAGE_KEY).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// help y completion no tocan el inventario
			for p := cmd; p != nil; p = p.Parent() {
				if p.Name() == "help" || p.Name() == "completion" {
					return nil
				}
			}
			e, err := c.open(cmd.Context(), c.flags)
			if err != nil {
				return err
			}
			c.env = e
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&c.flags.verbose, "verbose", "v", false, "Log detalhado em stderr")
	root.PersistentFlags().StringVar(&c.flags.driver, "driver", "", "Sobrescreve STORAGE_DRIVER (file, memory, postgres, redis)")
	root.PersistentFlags().StringVar(&c.flags.dir, "dir", "", "Sobrescreve STORAGE_FILE_DIR")

	root.AddCommand(
		newListCmd(c),
		newAddCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newStatsCmd(c),
		newEnrichCmd(c),
		newReportCmd(c),
		newExportCmd(c),
	)
	return root
}

// openEnv arma los casos de uso reales a partir de la configuración.
func openEnv(ctx context.Context, g globalFlags) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if g.driver != "" {
		cfg.Storage.Driver = g.driver
	}
	if g.dir != "" {
		cfg.Storage.FileDir = g.dir
	}

	level := "warn"
	if g.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})

	inv, err := bootstrap.OpenInventory(ctx, cfg, log.Zerolog())
	if err != nil {
		return nil, fmt.Errorf("abrir inventario: %w", err)
	}

	ai := bootstrap.NewAIUseCase(cfg.AI, log.Zerolog())
	return &env{
		items:     usecase.NewItemUseCase(inv.Store, session.NewDeleteConfirmations(cfg.Form.DeleteConfirmTTL, nil), log.Component("items")),
		drafts:    usecase.NewDraftUseCase(session.NewForms(nil, log.Component("forms"), session.WithIdleTTL(cfg.Form.IdleTTL)), inv.Store, ai),
		ai:        ai,
		dashboard: appanalytics.NewDashboardUseCase(inv.Store),
		report:    usecase.NewReportUseCase(inv.Store, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), ""),
		close:     inv.Close,
	}, nil
}
