package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/aretw0/pushdown/internal/config"
	"github.com/aretw0/pushdown/internal/logging"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve <pda_filename>",
		Short: "Start the HTTP server",
		Long: `Serves the automaton over a JSON API:

  POST /accepts     {"input": "0011", "step_limit": 100, "path": true}
  GET  /definition, /graph, /health, /info, /metrics

Settings come from --config (YAML), then from flags, which win.
Verdicts are cached in memory, or in Redis when a Redis address is set.`,
		Args: requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := serveConfig(cmd)
			if err != nil {
				return err
			}
			debug, _ := cmd.Flags().GetBool("debug")
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.Level(debug))

			m, err := cli.LoadMachine(args[0], logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return cli.Serve(ctx, m, cfg, logger, cmd.OutOrStdout())
		},
	}

	serveCmd.Flags().String("config", "", "Path to a YAML server config")
	serveCmd.Flags().String("addr", config.DefaultAddr, "Address to listen on")
	addLimitFlags(serveCmd)
	serveCmd.Flags().Bool("no-metrics", false, "Do not expose /metrics")
	serveCmd.Flags().String("redis-addr", "", "Cache verdicts in the Redis server at this address")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expire cached verdicts after this long (0 = never)")
	serveCmd.Flags().String("redis-prefix", "", "Key prefix for cached verdicts")
	return serveCmd
}

func newMCPCmd() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp <pda_filename>",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the automaton as an MCP server with the tools 'accepts' and 'get_graph'
and the resource pushdown://definition.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			port, _ := cmd.Flags().GetInt("port")
			debug, _ := cmd.Flags().GetBool("debug")

			cfg, err := serveConfig(cmd)
			if err != nil {
				return err
			}

			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(cmd.ErrOrStderr())
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.Level(debug))

			m, err := cli.LoadMachine(args[0], logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return cli.ServeMCP(ctx, m, cfg, transport, port, logger)
		},
	}

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	addLimitFlags(mcpCmd)
	return mcpCmd
}

func addLimitFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-steps", config.DefaultMaxSteps, "Largest step limit a request may use (0 = unbounded)")
	cmd.Flags().Int("max-input-size", 0, "Largest input accepted, in bytes (default from PUSHDOWN_MAX_INPUT_SIZE or 4096)")
}

// serveConfig loads --config, if the command has one, and applies the
// flags the user set on top of it.
func serveConfig(cmd *cobra.Command) (config.ServeConfig, error) {
	var path string
	if cmd.Flags().Lookup("config") != nil {
		path, _ = cmd.Flags().GetString("config")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Changed("max-input-size") {
		cfg.MaxInputSize, _ = flags.GetInt("max-input-size")
	}
	if flags.Changed("no-metrics") {
		noMetrics, _ := flags.GetBool("no-metrics")
		cfg.Metrics = !noMetrics
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("redis-ttl") {
		cfg.Redis.TTL, _ = flags.GetDuration("redis-ttl")
	}
	if flags.Changed("redis-prefix") {
		cfg.Redis.Prefix, _ = flags.GetString("redis-prefix")
	}

	return cfg, cfg.Validate()
}
