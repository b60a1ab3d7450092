package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave"
	"github.com/aretw0/behave/internal/cli"
	"github.com/aretw0/behave/internal/presentation/tui"
	"github.com/aretw0/behave/pkg/ports"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate checkcues stubs whenever a control script changes",
	Long: `Watches the workspace and, on every change to a control script, parses
it, merges its checkcues stub and reports lint findings. A script that fails to
parse is reported and its stub is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		source, ok := e.store.(ports.Watchable)
		if !ok {
			return fmt.Errorf("store backend %q does not support watching", e.cfg.Store.Backend)
		}

		tui.PrintBanner(cmd.ErrOrStderr(), behave.Version)
		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunWatch(sigCtx, cli.WatchOptions{
			Workspace: e.ws,
			Source:    source,
			Catalog:   e.cfg.Catalog,
			Logger:    e.logger,
			Out:       cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
