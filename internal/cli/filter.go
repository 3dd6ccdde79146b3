package cli

import (
	"github.com/spf13/cobra"
)

var filterOpts filterFlags

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter <element>...",
	Short: "List charge-neutral, electronegativity-ordered compositions of a set of elements",
	Long: `Filter enumerates every oxidation-state assignment of the given elements,
keeps the integer ratios up to the threshold that make it charge neutral,
and drops assignments where a cation is more electronegative than an anion.

Example:
  chemscreen filter Na Fe Cl --source smact14 --threshold 2
  chemscreen filter Cs Pb I --ratios-only
  chemscreen filter Fe O --stoichs 1,2,3 --stoichs 1,2,3,4 -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterOpts.register(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	opts, err := filterOpts.options(cmd, e.cfg)
	if err != nil {
		return err
	}

	res, err := e.screener.Filter(args, opts)
	if err != nil {
		return err
	}
	return e.renderer.Filter(res)
}
