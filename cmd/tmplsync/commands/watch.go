package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tmplsync/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync periodically and repair removed template assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			locale, _ := cmd.Flags().GetString("locale")
			interval, _ := cmd.Flags().GetDuration("interval")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Locale:   locale,
				Interval: interval,
				Debounce: debounce,
			})
		},
	}
	cmd.Flags().StringP("locale", "l", "", "Catalog locale (default from config)")
	cmd.Flags().DurationP("interval", "i", 0, "Time between passes (default from config)")
	cmd.Flags().Duration("debounce", 0, "Quiet period after asset removals before resyncing")
	return cmd
}
