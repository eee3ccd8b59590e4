package main

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"life-engine/internal/config"
	"life-engine/pkg/algorithm"
	"life-engine/pkg/cellstate"
	"life-engine/pkg/core"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Check HashLife against the naive stepper on random soups",
	Args:  cobra.NoArgs,
	RunE:  runSweep,
}

func init() {
	flags.BindSweep(sweepCmd.Flags())
	rootCmd.AddCommand(sweepCmd)
}

type soupResult struct {
	seed       int64
	population int
	final      int
	match      bool
	hashLife   time.Duration
	naive      time.Duration
}

func (r soupResult) String() string {
	return fmt.Sprintf("seed=%d population=%d->%d hashlife=%s naive=%s",
		r.seed, r.population, r.final, r.hashLife.Round(time.Microsecond), r.naive.Round(time.Microsecond))
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc := cfg.Sweep
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Sweeping %d soups (%d workers, %dx%d at %.2f, %d generations)\n",
		sc.Soups, sc.Workers, sc.Size, sc.Size, sc.Density, sc.Generations)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(sc.Workers)
	results := make([]soupResult, sc.Soups)
	start := time.Now()
	for i := range sc.Soups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runSoup(sc, sc.Seed+int64(i), cfg.AlgorithmOptions())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	var diverged []soupResult
	for _, r := range results {
		if !r.match {
			diverged = append(diverged, r)
			fmt.Fprintf(w, "MISMATCH %s\n", r)
		}
	}

	slices.SortFunc(results, func(a, b soupResult) int { return cmp.Compare(b.hashLife, a.hashLife) })
	fmt.Fprintf(w, "\nSlowest HashLife runs (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < 5; i++ {
		fmt.Fprintf(w, "%2d) %s\n", i+1, results[i])
	}

	if len(diverged) > 0 {
		return fmt.Errorf("%d of %d soups diverged", len(diverged), len(results))
	}
	fmt.Fprintf(w, "\nAll %d soups agree.\n", len(results))
	return nil
}

func runSoup(sc config.SweepConfig, seed int64, opts map[string]string) soupResult {
	soup := core.NewRNG(seed).Soup(cellstate.Point{}, sc.Size, sc.Size, sc.Density)
	hash := algorithm.NewHashLifeWithConfig(algorithm.HashLifeConfigFromMap(opts))
	naive := algorithm.NewNaive()

	start := time.Now()
	got := hash.Step(soup, sc.Generations)
	hashElapsed := time.Since(start)

	start = time.Now()
	want := naive.Step(soup, sc.Generations)
	naiveElapsed := time.Since(start)

	return soupResult{
		seed:       seed,
		population: soup.Len(),
		final:      want.Len(),
		match:      got.Equal(want),
		hashLife:   hashElapsed,
		naive:      naiveElapsed,
	}
}
