package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ppiankov/chemscreen/internal/cache"
	"github.com/ppiankov/chemscreen/internal/model"
	"github.com/ppiankov/chemscreen/internal/report"
	"github.com/ppiankov/chemscreen/internal/worker"
)

var (
	batchOpts    validityFlags
	batchWorkers int
	batchRPS     float64
	batchBurst   int
	batchTimeout time.Duration
	batchOut     string
	noCache      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Classify every formula in a file in parallel",
	Long: `Batch reads formulas from a file (one per line, # comments and blank
lines skipped, duplicates dropped) and classifies them concurrently.

Verdicts are cached in memory and under ~/.chemscreen/cache, keyed by
formula, options and the contents of a custom source file, so repeated
runs only classify new formulas.

Example:
  chemscreen batch formulas.txt
  chemscreen batch formulas.txt --workers 8 --mixed-valence --out report.json
  chemscreen batch formulas.txt --rps 50 --timeout 2m -f md`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchOpts.register(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().Float64Var(&batchRPS, "rps", 0, "classifications per second per chemical system, 0 = unlimited (default from config)")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 0, "rate limiter burst (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "also write the report to a .json, .yaml or .md file")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the verdict cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	opts := batchOpts.options(cmd, e.cfg)
	applyConcurrencyFlags(cmd, e.cfg)
	if noCache {
		e.cfg.Cache.Enabled = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	batchOptions := []worker.BatchOption{worker.WithLogger(e.logger)}
	if e.cfg.Cache.Enabled {
		verdicts, err := verdictCache(e.cfg)
		if err != nil {
			return err
		}
		batchOptions = append(batchOptions, worker.WithCache(verdicts))
	}

	fmt.Fprint(os.Stderr, pterm.Info.Sprintfln("Classifying formulas from %s with %d workers", file, e.cfg.Concurrency.Workers))

	processor := worker.NewBatchProcessor(
		e.screener,
		e.cfg.Concurrency.Workers,
		e.cfg.Concurrency.RequestsPerSecond,
		e.cfg.Concurrency.Burst,
		batchOptions...,
	)

	started := time.Now()
	results, err := processor.ProcessFile(ctx, file, opts)
	if err != nil {
		return errors.Wrapf(err, "batch %s", file)
	}
	rep := worker.Report(results, opts.Source, started)

	if err := e.renderer.Batch(rep); err != nil {
		return err
	}

	if batchOut != "" {
		if err := report.WriteFile(batchOut, rep); err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, pterm.Success.Sprintfln("Wrote %s", batchOut))
	}

	return ctx.Err()
}

func applyConcurrencyFlags(cmd *cobra.Command, cfg *model.Config) {
	if cmd.Flags().Changed("workers") {
		cfg.Concurrency.Workers = batchWorkers
	}
	if cmd.Flags().Changed("rps") {
		cfg.Concurrency.RequestsPerSecond = batchRPS
	}
	if cmd.Flags().Changed("burst") {
		cfg.Concurrency.Burst = batchBurst
	}
}

// verdictCache builds the memory + disk verdict cache
func verdictCache(cfg *model.Config) (*cache.VerdictCache, error) {
	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "find home directory")
		}
		dir = filepath.Join(home, ".chemscreen", "cache")
	}

	store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	return cache.NewVerdictCache(store, 0), nil
}
