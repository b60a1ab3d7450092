package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aretw0/behave"
	"github.com/aretw0/behave/internal/cli"
	"github.com/aretw0/behave/internal/config"
	"github.com/aretw0/behave/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes parse, render, graph and validate operations as MCP tools, and
the workspace's control scripts as the behave://scripts resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		transport := e.cfg.MCP.Transport
		if cmd.Flags().Changed("transport") {
			transport, _ = cmd.Flags().GetString("transport")
		}
		port := e.cfg.MCP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		srv := mcp.NewServer(behave.Version,
			mcp.WithLibrary(e.ws),
			mcp.WithLogger(e.logger),
			mcp.WithMaxScriptBytes(e.cfg.Limits.MaxScriptBytes),
		)

		switch transport {
		case config.TransportStdio:
			e.logger.Info("Starting MCP server (stdio)")
			return srv.ServeStdio()
		case config.TransportSSE:
			sigCtx := cli.NewSignalContext(context.Background())
			defer sigCtx.Cancel()
			e.logger.Info("Starting MCP server (SSE)", "port", port)
			if err := srv.ServeSSE(sigCtx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			e.logger.Info("MCP server stopped")
			return nil
		}
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
