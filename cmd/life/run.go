package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"life-engine/pkg/format"
	"life-engine/pkg/temporal"
)

var (
	runDuration  time.Duration
	runInFormat  string
	runOutFormat string
	runWatch     bool
	runParams    map[string]string

	runCmd = &cobra.Command{
		Use:   "run <file|-|pattern:name>",
		Short: "Evolve a pattern in real time and report the measured rate",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
)

func init() {
	runCmd.Flags().DurationVar(&runDuration, "duration", 5*time.Second, "how long to run")
	runCmd.Flags().StringVar(&runInFormat, "format", "", "input format (default: from extension, else detected)")
	runCmd.Flags().StringVar(&runOutFormat, "out-format", "", "print the final board in this format")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "reload the pattern file whenever it changes")
	runCmd.Flags().StringToStringVar(&runParams, "param", nil, "set a controller parameter, e.g. generations_per_step=4")
	flags.BindRun(runCmd.Flags())
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	in, err := parseFormat(runInFormat)
	if err != nil {
		return err
	}
	out, err := parseFormat(runOutFormat)
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

	state := temporal.New(s, cfg.TemporalOptions(),
		temporal.WithAlgorithm(alg),
		temporal.WithLogger(slog.Default()))
	if err := applyParams(state, runParams); err != nil {
		return err
	}
	for _, p := range state.Parameters() {
		slog.Debug("controller parameter", slog.String("key", p.Key), slog.String("value", p.Value))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runDuration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if addr := cfg.Temporal.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			slog.Info("serving metrics", slog.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}
	g.Go(func() error { return state.Run(ctx) })
	g.Go(func() error { return report(ctx, state) })
	if runWatch && args[0] != "-" && !strings.HasPrefix(args[0], patternPrefix) {
		g.Go(func() error { return watchPattern(ctx, args[0], in, state) })
	}

	state.SetIsRunning(true)
	err = g.Wait()
	state.SetIsRunning(false)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}

	snap := state.Snapshot()
	slog.Info("run finished",
		slog.String("session", snap.ID),
		slog.Uint64("generation", snap.Generation),
		slog.Int("population", snap.CellState.Len()))
	if out == format.Unknown {
		return nil
	}
	return writeCellState(cmd.OutOrStdout(), snap.CellState, out)
}

// applyParams sets each key=value pair on state in key order.
func applyParams(state *temporal.State, params map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(params)) {
		if err := state.SetParameter(key, params[key]); err != nil {
			return fmt.Errorf("--param: %w", err)
		}
	}
	return nil
}

// report logs the state once per second until ctx is done.
func report(ctx context.Context, state *temporal.State) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snap := state.Snapshot()
			slog.Info("progress",
				slog.String("status", snap.Status.String()),
				slog.Uint64("generation", snap.Generation),
				slog.Int("population", snap.CellState.Len()))
		}
	}
}
