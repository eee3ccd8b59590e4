package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var errNegativeGenerations = errors.New("--generations must not be negative")

var (
	stepGenerations int
	stepInFormat    string
	stepOutFormat   string

	stepCmd = &cobra.Command{
		Use:   "step <file|-|pattern:name>",
		Short: "Advance a pattern by a number of generations and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  runStep,
	}

	convertInFormat string
	convertTo       string

	convertCmd = &cobra.Command{
		Use:   "convert <file|-|pattern:name>",
		Short: "Convert a pattern between cells, rle and lif",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
)

func init() {
	stepCmd.Flags().IntVarP(&stepGenerations, "generations", "n", 1, "generations to advance")
	stepCmd.Flags().StringVar(&stepInFormat, "format", "", "input format (default: from extension, else detected)")
	stepCmd.Flags().StringVar(&stepOutFormat, "out-format", "rle", "output format")
	rootCmd.AddCommand(stepCmd)

	convertCmd.Flags().StringVar(&convertInFormat, "format", "", "input format (default: from extension, else detected)")
	convertCmd.Flags().StringVar(&convertTo, "to", "rle", "output format")
	rootCmd.AddCommand(convertCmd)
}

func runStep(cmd *cobra.Command, args []string) error {
	if stepGenerations < 0 {
		return errNegativeGenerations
	}
	in, err := parseFormat(stepInFormat)
	if err != nil {
		return err
	}
	out, err := parseFormat(stepOutFormat)
	if err != nil {
		return err
	}
	alg, err := newAlgorithm()
	if err != nil {
		return err
	}
	s, err := loadCellState(args[0], in, cmd.InOrStdin())
	if err != nil {
		return err
	}

	start := time.Now()
	next := alg.Step(s, stepGenerations)
	slog.Info("stepped pattern",
		slog.String("algorithm", alg.Name()),
		slog.Int("generations", stepGenerations),
		slog.Int("population_before", s.Len()),
		slog.Int("population_after", next.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return writeCellState(cmd.OutOrStdout(), next, out)
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, err := parseFormat(convertInFormat)
	if err != nil {
		return err
	}
	out, err := parseFormat(convertTo)
	if err != nil {
		return err
	}
	s, err := loadCellState(args[0], in, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return writeCellState(cmd.OutOrStdout(), s, out)
}
