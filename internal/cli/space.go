package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	spaceOpts    filterFlags
	spaceOrder   int
	spaceWorkers int
)

// spaceCmd represents the space command
var spaceCmd = &cobra.Command{
	Use:   "space <element>...",
	Short: "Filter every combination of a given size drawn from a pool of elements",
	Long: `Space runs the composition filter over every subset of the given size,
in parallel, and reports the systems that have at least one allowed
composition.

Example:
  chemscreen space Li Na K O S Cl --order 2
  chemscreen space Li Na Fe O F --order 3 --workers 8 -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpace,
}

func init() {
	rootCmd.AddCommand(spaceCmd)
	spaceOpts.register(spaceCmd)
	spaceCmd.Flags().IntVar(&spaceOrder, "order", 2, "number of elements per system")
	spaceCmd.Flags().IntVar(&spaceWorkers, "workers", 0, "parallel systems (default from config)")
}

func runSpace(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	opts, err := spaceOpts.options(cmd, e.cfg)
	if err != nil {
		return err
	}

	workers := e.cfg.Concurrency.Workers
	if cmd.Flags().Changed("workers") {
		workers = spaceWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := e.screener.Space(ctx, args, spaceOrder, opts, workers)
	if err != nil {
		return err
	}
	return e.renderer.Space(res)
}
