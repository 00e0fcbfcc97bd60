// cmd/mcp-server/main.go: standalone HTTP tool server for symdiff
//
// Exposes the symdiff tools as an HTTP endpoint for agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server --addr :8080 --config symdiff.toml
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symdiff/internal/config"
	"github.com/njchilds90/symdiff/internal/logging"
	"github.com/njchilds90/symdiff/internal/server"
)

var (
	version = "dev"

	cfgFile  string
	addr     string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:          "mcp-server",
	Short:        "HTTP tool server for symbolic differentiation",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = addr
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}

		logger := logging.New(os.Stderr, "mcp-server", cfg.Log.Level)
		logger.Info().Str("version", version).Str("rules", cfg.Engine.Rules).Msg("starting")
		return server.NewServer(cfg, logger).ListenAndServe()
	},
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: $SYMDIFF_CONFIG or ./symdiff.toml)")
	rootCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
