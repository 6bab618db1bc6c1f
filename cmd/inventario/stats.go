package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatsCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Resumo: unidades, valor total e valor por categoria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.env.dashboard.GetSummary()
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}

			fmt.Fprintf(w, "Itens:        %d\n", s.ItemCount)
			fmt.Fprintf(w, "Unidades:     %d\n", s.TotalUnits)
			fmt.Fprintf(w, "Valor total:  %s (%s)\n", s.TotalValueFormatted, s.TotalValueCompact)
			if len(s.ByCategory) == 0 {
				return nil
			}
			fmt.Fprintln(w)
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORIA\tVALOR\t%")
			for _, cv := range s.ByCategory {
				fmt.Fprintf(tw, "%s\t%s\t%s%%\n", cv.Category, cv.ValueFormatted, cv.Share.StringFixed(1))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Saída em JSON")
	return cmd
}
