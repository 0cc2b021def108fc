package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtnworks/gt-client/internal/domain"
)

func newSellCmd(app *app) *cobra.Command {
	var item string
	var quality string
	var quantity int
	var price int

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "List owned items for sale on the marketplace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			staged := domain.PendingTradeSet{}
			staged.Stage(domain.TradeKey{
				ItemKind:  item,
				UnitPrice: price,
				Quality:   quality,
			}, quantity)

			if err := app.trade.SubmitSell(cmd.Context(), staged); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Listed %d x %s at %d silver each.\n", quantity, item, price)
			return err
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Item kind to sell")
	cmd.Flags().StringVar(&quality, "quality", "", "Item quality label, if any")
	cmd.Flags().IntVar(&quantity, "qty", 1, "Quantity to sell")
	cmd.Flags().IntVar(&price, "price", 0, "Asking price per unit, in silver")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}
