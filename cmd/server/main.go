package main

import (
	"context"
	"fmt"
	"os"

	"github.com/casual-cat/instamini-project/pkg/config"
	"github.com/casual-cat/instamini-project/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "InstaMini web server",
	Long: `InstaMini serves the feed, stories, profiles and direct messages.
Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(filterCmd)
}

// bootstrap loads configuration and builds the process logger shared by every subcommand
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFile), nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
