// Package commands implements the CLI commands for tmplsync.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tmplsync/internal/app"
	"go.trai.ch/tmplsync/internal/build"
	"go.trai.ch/tmplsync/internal/core/domain"
)

// CLI represents the command line interface for tmplsync.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	SyncTemplateCatalog(ctx context.Context, locale string) error
	SyncPurchaseRecord(ctx context.Context) error
	SyncAll(ctx context.Context, locale string) error
	InstallTemplate(ctx context.Context, id int) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	History(kind domain.PassKind, n int) ([]domain.PassRecord, error)
	WaitTransfers()
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tmplsync",
		Short:         "Keep the local note template catalog in sync with the template service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newPurchasesCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// passResult maps the error of a pass to the command result. Passes log their own
// failures, so only a missing configuration fails the command, marked as already reported.
func passResult(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingServerURL) || errors.Is(err, domain.ErrMissingToken) {
		if errors.Is(err, domain.ErrSyncFailed) {
			return err
		}
		return errors.Join(domain.ErrSyncFailed, err)
	}
	return nil
}
