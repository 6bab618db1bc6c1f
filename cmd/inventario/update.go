package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuhauss/example-gemini/internal/application/dto"
)

func newUpdateCmd(c *cli) *cobra.Command {
	var flags itemFlags
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Edita um item; só os campos informados mudam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			cur, err := c.env.items.GetByID(id)
			if err != nil {
				return err
			}

			req := dto.ItemRequest{
				Name:        cur.Name,
				Category:    cur.Category,
				Quantity:    &cur.Quantity,
				Value:       &cur.Value,
				Description: cur.Description,
			}
			if err := flags.apply(cmd, &req); err != nil {
				return err
			}

			item, err := c.env.items.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item atualizado: %s (%s)\n", item.Name, item.ID)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}
