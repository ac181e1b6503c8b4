package main

import (
	"fmt"
	"os"

	"github.com/proofpage/internal/config"
	"github.com/proofpage/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "proofpage",
	Short: "ProofPage - a one-page portfolio of testimonials, work and metrics",
	Long: `ProofPage serves proof pages for freelancers: testimonials, work examples
and metrics arranged into ordered sections, with a public request form and a
condensed share view.

Configuration is read from PROOFPAGE_* environment variables, an optional
.env file and the YAML file named by PROOFPAGE_CONFIG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, backfillCmd, userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
