package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReportCmd(c *cli) *cobra.Command {
	var (
		output   string
		search   string
		category string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Gera o relatório do inventário em PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pdf, filename, err := c.env.report.InventoryReport(cmd.Context(), search, category)
			if err != nil {
				return err
			}
			if output == "" {
				output = filename
			}
			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return fmt.Errorf("gravar %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Relatório gravado em %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Arquivo de saída (padrão: inventario_<data>.pdf)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filtra por nome ou descrição")
	cmd.Flags().StringVarP(&category, "category", "c", "all", "Filtra por categoria")
	return cmd
}
