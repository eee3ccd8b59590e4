package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"life-engine/internal/config"
	"life-engine/pkg/algorithm"
)

var (
	configPath string
	// flags receives parsed flag values; only flags the user set are copied
	// onto cfg after the config file is loaded.
	flags = config.DefaultConfig()
	cfg   config.Config

	rootCmd = &cobra.Command{
		Use:           "life",
		Short:         "Evolve and convert Conway's Game of Life patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := loaded.ApplyFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg = loaded

			level, _ := cfg.SlogLevel()
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			slog.Debug("configuration loaded",
				slog.String("path", configPath),
				slog.String("algorithm", cfg.Algorithm))
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "life.yaml", "path to the YAML configuration file")
	flags.Bind(rootCmd.PersistentFlags())
}

// newAlgorithm builds the configured stepper.
func newAlgorithm() (algorithm.Algorithm, error) {
	return algorithm.New(cfg.Algorithm, cfg.AlgorithmOptions())
}
