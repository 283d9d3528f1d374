package cli

import (
	"github.com/spf13/cobra"

	"github.com/arens/quizdeck/internal/config"
	"github.com/arens/quizdeck/internal/logger"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "quizdeck",
		Short:        "Trivia quiz engine with solo and two-player sessions",
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newPlayCmd())
	cmd.AddCommand(newPlayCustomCmd())
	cmd.AddCommand(newCategoriesCmd())
	cmd.AddCommand(newLeaderboardCmd())
	cmd.AddCommand(newAuthCmd())
	return cmd
}

// loadConfig loads configuration and installs the configured logger as
// the process default.
func loadConfig() (config.Config, *logger.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	return cfg, log, nil
}
