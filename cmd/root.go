package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gt",
		Short:         "Galactic Trade client (gt): trade goods with other colonies",
		Long:          "gt (Galactic Trade client) authenticates with a trade server, browses the marketplace, buys and sells goods, and claims silver from settled sales, all from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newStockCmd(app),
		newInventoryCmd(app),
		newBuyCmd(app),
		newSellCmd(app),
		newSalesCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
