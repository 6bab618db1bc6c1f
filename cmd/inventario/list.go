package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neuhauss/example-gemini/pkg/money"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		search   string
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista os itens (mais recentes primeiro)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := c.env.items.List(search, category)
			w := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if out.Count == 0 {
				fmt.Fprintln(w, "Nenhum item encontrado.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNOME\tCATEGORIA\tQTD\tVALOR UNIT.\tTOTAL")
			for _, it := range out.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					it.ID, it.Name, it.Category, it.Quantity,
					money.FormatBRL(it.Value), money.FormatBRL(it.TotalValue))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filtra por nome ou descrição")
	cmd.Flags().StringVarP(&category, "category", "c", "all", "Filtra por categoria")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Saída em JSON")
	return cmd
}
