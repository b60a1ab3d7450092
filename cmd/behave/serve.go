package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave"
	"github.com/aretw0/behave/internal/cli"
	"github.com/aretw0/behave/internal/presentation/tui"
	httpAdapter "github.com/aretw0/behave/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP/JSON API",
	Long: `Serves parse, render, graph and lint operations over HTTP, plus the
workspace's control scripts. The OpenAPI document is at /openapi.yaml and
Prometheus metrics at /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		port := e.cfg.HTTP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		handler, err := httpAdapter.NewHandler(
			httpAdapter.WithLibrary(e.ws),
			httpAdapter.WithLogger(e.logger),
			httpAdapter.WithMaxScriptBytes(e.cfg.Limits.MaxScriptBytes),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		tui.PrintBanner(cmd.ErrOrStderr(), behave.Version)
		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		serverErrors := make(chan error, 1)
		go func() {
			e.logger.Info("Starting HTTP server", "address", srv.Addr)
			tui.NewStatus(cmd.ErrOrStderr()).Success("listening on %s", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case <-sigCtx.Done():
			e.logger.Info("Shutting down", "signal", sigCtx.Signal())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
}
