package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/chemscreen/internal/model"
)

var validityOpts validityFlags

// validityCmd represents the validity command
var validityCmd = &cobra.Command{
	Use:   "validity <formula>...",
	Short: "Classify formulas as chemically plausible or not",
	Long: `Validity decides whether each formula can be charge balanced with
known oxidation states while respecting electronegativity ordering.

Single elements are always valid. All-metal formulas are accepted as
alloys unless --no-alloys is given. Metallicity and intermetallic scores
can accept metallic compounds that have no ionic explanation.

Example:
  chemscreen validity NaCl Fe2O3 CaTiO3
  chemscreen validity Fe3O4 --mixed-valence
  chemscreen validity Ni3Ti --no-alloys --intermetallic -f md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidity,
}

func init() {
	rootCmd.AddCommand(validityCmd)
	validityOpts.register(validityCmd)
}

func runValidity(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	opts := validityOpts.options(cmd, e.cfg)

	verdicts := make([]*model.Verdict, 0, len(args))
	for _, f := range args {
		v, err := e.screener.Validity(f, opts)
		if err != nil {
			return err
		}
		verdicts = append(verdicts, v)
	}

	for _, v := range verdicts {
		if err := e.renderer.Verdict(v); err != nil {
			return err
		}
	}
	return nil
}
