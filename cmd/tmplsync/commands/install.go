package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <id>",
		Short: "Download one template from the stored catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return zerr.With(zerr.New("template id must be an integer"), "id", args[0])
			}
			return c.app.InstallTemplate(cmd.Context(), id)
		},
	}
}
