package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuhauss/example-gemini/pkg/money"
)

func newEnrichCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich [nome]",
		Short: "Mostra a sugestão da IA para um nome, sem salvar nada",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			w := cmd.OutOrStdout()

			p := c.env.ai.Enrich(cmd.Context(), name)
			if p == nil {
				fmt.Fprintln(w, "Sem sugestão.")
				return nil
			}
			fmt.Fprintf(w, "Categoria:  %s\n", p.Category)
			fmt.Fprintf(w, "Valor:      %s\n", money.FormatBRL(p.EstimatedValue))
			fmt.Fprintf(w, "Descrição:  %s\n", p.Description)
			return nil
		},
	}
}
