package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Exclui um item (pede confirmação)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			w := cmd.OutOrStdout()

			ticket, err := c.env.items.RequestDelete(id)
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprintf(w, "Excluir %q? [s/N] ", ticket.ItemName)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "s", "sim", "y", "yes":
				default:
					fmt.Fprintln(w, "Cancelado.")
					return nil
				}
			}

			if err := c.env.items.ConfirmDelete(cmd.Context(), id, ticket.Token); err != nil {
				return err
			}
			fmt.Fprintf(w, "Item excluído: %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Não pedir confirmação")
	return cmd
}
