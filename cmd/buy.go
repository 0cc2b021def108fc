package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtnworks/gt-client/internal/domain"
)

func newBuyCmd(app *app) *cobra.Command {
	var item string
	var seller string
	var quantity int

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy an item from the marketplace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			stock, err := app.trade.FetchStock(ctx)
			if err != nil {
				return err
			}

			listing, ok := findListing(stock, item, seller)
			if !ok {
				if seller != "" {
					return fmt.Errorf("no listing found for %q from %q", item, seller)
				}
				return fmt.Errorf("no listing found for %q", item)
			}

			order := domain.PendingTradeSet{}
			order.Stage(listing.Key(), quantity)

			result, err := app.trade.SubmitBuy(ctx, order)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Bought %d x %s from %s for %d silver.\n",
				quantity, listing.ItemKind, listing.CounterpartyName, result.TotalCost)
			return err
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Item kind to buy")
	cmd.Flags().StringVar(&seller, "seller", "", "Seller to buy from (default: first matching listing)")
	cmd.Flags().IntVar(&quantity, "qty", 1, "Quantity to buy")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func findListing(stock []domain.TradeRecord, item, seller string) (domain.TradeRecord, bool) {
	for _, record := range stock {
		if record.ItemKind != item {
			continue
		}
		if seller != "" && record.CounterpartyName != seller {
			continue
		}
		return record, true
	}
	return domain.TradeRecord{}, false
}
