package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one template catalog pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			locale, _ := cmd.Flags().GetString("locale")
			purchases, _ := cmd.Flags().GetBool("purchases")
			noWait, _ := cmd.Flags().GetBool("no-wait")

			var err error
			if purchases {
				err = c.app.SyncAll(cmd.Context(), locale)
			} else {
				err = c.app.SyncTemplateCatalog(cmd.Context(), locale)
			}
			if !noWait {
				c.app.WaitTransfers()
			}
			return passResult(err)
		},
	}
	cmd.Flags().StringP("locale", "l", "", "Catalog locale (default from config)")
	cmd.Flags().BoolP("purchases", "p", false, "Also refresh the purchase record")
	cmd.Flags().Bool("no-wait", false, "Return without waiting for dispatched downloads")
	return cmd
}

func (c *CLI) newPurchasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purchases",
		Short: "Refresh the cached purchase record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return passResult(c.app.SyncPurchaseRecord(cmd.Context()))
		},
	}
}
