package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/pkg/money"
)

// itemFlags flags comunes de add/update.
type itemFlags struct {
	name        string
	category    string
	quantity    int
	value       string
	description string
}

func (f *itemFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Nome do item")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Categoria (Electronics, Furniture, Clothing, Books, Tools, Other)")
	cmd.Flags().IntVarP(&f.quantity, "quantity", "q", 1, "Quantidade")
	cmd.Flags().StringVar(&f.value, "value", "", "Valor unitário em BRL (ex: 1299.90)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Descrição")
}

// apply copia sobre req solo los flags indicados en la línea de comandos.
func (f *itemFlags) apply(cmd *cobra.Command, req *dto.ItemRequest) error {
	if cmd.Flags().Changed("name") {
		req.Name = f.name
	}
	if cmd.Flags().Changed("category") {
		req.Category = f.category
	}
	if cmd.Flags().Changed("quantity") {
		q := f.quantity
		req.Quantity = &q
	}
	if cmd.Flags().Changed("value") {
		v, err := decimal.NewFromString(f.value)
		if err != nil {
			return fmt.Errorf("--value inválido %q: %w", f.value, err)
		}
		req.Value = &v
	}
	if cmd.Flags().Changed("description") {
		req.Description = f.description
	}
	return nil
}

func newAddCmd(c *cli) *cobra.Command {
	var (
		flags  itemFlags
		enrich bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Cadastra um item",
		Long: `Cadastra um item. Com --ai, categoria, valor e descrição são sugeridos
pela IA a partir do nome; flags informadas explicitamente têm prioridade.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			var req dto.ItemRequest
			if err := flags.apply(cmd, &req); err != nil {
				return err
			}

			d, err := c.env.drafts.Open("")
			if err != nil {
				return err
			}
			if _, err := c.env.drafts.Edit(d.ID, req); err != nil {
				return err
			}

			if enrich {
				res, err := c.env.drafts.Enrich(ctx, d.ID)
				if err != nil {
					_ = c.env.drafts.Discard(d.ID)
					return err
				}
				if res.Applied {
					fmt.Fprintf(w, "Sugestão da IA: %s, %s, %q\n",
						res.Prediction.Category, money.FormatBRL(res.Prediction.EstimatedValue), res.Prediction.Description)
					// los flags explícitos ganan sobre la sugerencia
					merged := dto.ItemRequest{
						Name:        res.Draft.Fields.Name,
						Category:    res.Draft.Fields.Category,
						Quantity:    &res.Draft.Fields.Quantity,
						Value:       &res.Draft.Fields.Value,
						Description: res.Draft.Fields.Description,
					}
					if err := flags.apply(cmd, &merged); err != nil {
						return err
					}
					if _, err := c.env.drafts.Edit(d.ID, merged); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(w, "A IA não retornou sugestão; usando os dados informados.")
				}
			}

			item, err := c.env.drafts.Submit(ctx, d.ID)
			if err != nil {
				_ = c.env.drafts.Discard(d.ID)
				return err
			}
			fmt.Fprintf(w, "Item criado: %s (%s)\n", item.Name, item.ID)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&enrich, "ai", false, "Sugere categoria, valor e descrição com IA")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
