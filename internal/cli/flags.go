package cli

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ppiankov/chemscreen/internal/model"
	"github.com/ppiankov/chemscreen/internal/screen"
)

// paulingFlags tune the electronegativity ordering rule
type paulingFlags struct {
	overlap         float64
	noRepeatAnions  bool
	noRepeatCations bool
}

func (f *paulingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.overlap, "pauling-threshold", 0, "allowed cation/anion electronegativity overlap")
	cmd.Flags().BoolVar(&f.noRepeatAnions, "no-repeat-anions", false, "forbid one element on several anion sites")
	cmd.Flags().BoolVar(&f.noRepeatCations, "no-repeat-cations", false, "forbid one element on several cation sites")
}

func (f *paulingFlags) apply(cmd *cobra.Command, cfg *model.Config) {
	if cmd.Flags().Changed("pauling-threshold") {
		cfg.Pauling.Threshold = f.overlap
	}
	if cmd.Flags().Changed("no-repeat-anions") {
		cfg.Pauling.RepeatAnions = !f.noRepeatAnions
	}
	if cmd.Flags().Changed("no-repeat-cations") {
		cfg.Pauling.RepeatCations = !f.noRepeatCations
	}
}

// filterFlags configure the composition filter
type filterFlags struct {
	paulingFlags
	source     string
	threshold  int
	ratiosOnly bool
	stoichs    []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "oxidation-state source or file (default from config)")
	cmd.Flags().IntVarP(&f.threshold, "threshold", "t", 0, "largest multiplier per element (default from config)")
	cmd.Flags().BoolVar(&f.ratiosOnly, "ratios-only", false, "report element ratios without oxidation states")
	cmd.Flags().StringArrayVar(&f.stoichs, "stoichs", nil, "allowed multipliers for one element, e.g. 1,2 (repeat once per element)")
	f.paulingFlags.register(cmd)
}

func (f *filterFlags) options(cmd *cobra.Command, cfg *model.Config) (screen.FilterOptions, error) {
	if cmd.Flags().Changed("source") {
		cfg.Screening.Source = f.source
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Screening.Threshold = f.threshold
	}
	if cmd.Flags().Changed("ratios-only") {
		cfg.Screening.SpeciesUnique = !f.ratiosOnly
	}
	f.paulingFlags.apply(cmd, cfg)

	stoichs, err := parseStoichs(f.stoichs)
	if err != nil {
		return screen.FilterOptions{}, err
	}

	return screen.FilterOptions{
		Threshold:     cfg.Screening.Threshold,
		Stoichs:       stoichs,
		SpeciesUnique: cfg.Screening.SpeciesUnique,
		Source:        cfg.Screening.Source,
		Rule:          cfg.Pauling,
	}, nil
}

// parseStoichs turns ["1,2", "1"] into [[1 2] [1]]
func parseStoichs(raw []string) ([][]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([][]int, len(raw))
	for i, spec := range raw {
		for _, part := range strings.Split(spec, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 1 {
				return nil, errors.Newf("invalid multiplier %q in --stoichs %q", part, spec)
			}
			out[i] = append(out[i], n)
		}
	}
	return out, nil
}

// validityFlags configure the validity classifier
type validityFlags struct {
	paulingFlags
	source                 string
	noPauling              bool
	noAlloys               bool
	metallicity            bool
	metallicityThreshold   float64
	intermetallic          bool
	intermetallicThreshold float64
	mixedValence           bool
	maxMixedStates         int
}

func (f *validityFlags) register(cmd *cobra.Command) {
	defaults := model.DefaultConfig().Validity

	cmd.Flags().StringVarP(&f.source, "source", "s", "", "oxidation-state source or file (default from config)")
	cmd.Flags().BoolVar(&f.noPauling, "no-pauling", false, "skip the electronegativity ordering test")
	cmd.Flags().BoolVar(&f.noAlloys, "no-alloys", false, "do not accept all-metal formulas as alloys")
	cmd.Flags().BoolVar(&f.metallicity, "metallicity", false, "accept formulas whose metallicity score reaches the threshold")
	cmd.Flags().Float64Var(&f.metallicityThreshold, "metallicity-threshold", defaults.MetallicityThreshold, "metallicity score threshold")
	cmd.Flags().BoolVar(&f.intermetallic, "intermetallic", false, "accept formulas whose intermetallic score reaches the threshold")
	cmd.Flags().Float64Var(&f.intermetallicThreshold, "intermetallic-threshold", defaults.IntermetallicThreshold, "intermetallic score threshold")
	cmd.Flags().BoolVarP(&f.mixedValence, "mixed-valence", "m", false, "let one element take several oxidation states")
	cmd.Flags().IntVar(&f.maxMixedStates, "max-mixed-states", defaults.MaxMixedStates, "distinct states one element may take with --mixed-valence")
	f.paulingFlags.register(cmd)
}

func (f *validityFlags) options(cmd *cobra.Command, cfg *model.Config) screen.ValidityOptions {
	v := &cfg.Validity
	if cmd.Flags().Changed("source") {
		v.Source = f.source
	}
	if cmd.Flags().Changed("no-pauling") {
		v.UsePaulingTest = !f.noPauling
	}
	if cmd.Flags().Changed("no-alloys") {
		v.IncludeAlloys = !f.noAlloys
	}
	if cmd.Flags().Changed("metallicity") {
		v.CheckMetallicity = f.metallicity
	}
	if cmd.Flags().Changed("metallicity-threshold") {
		v.MetallicityThreshold = f.metallicityThreshold
	}
	if cmd.Flags().Changed("intermetallic") {
		v.CheckIntermetallic = f.intermetallic
	}
	if cmd.Flags().Changed("intermetallic-threshold") {
		v.IntermetallicThreshold = f.intermetallicThreshold
	}
	if cmd.Flags().Changed("mixed-valence") {
		v.MixedValence = f.mixedValence
	}
	if cmd.Flags().Changed("max-mixed-states") {
		v.MaxMixedStates = f.maxMixedStates
	}
	f.paulingFlags.apply(cmd, cfg)

	return validityOptions(cfg)
}

// validityOptions maps the configuration onto classifier options
func validityOptions(cfg *model.Config) screen.ValidityOptions {
	v := cfg.Validity
	return screen.ValidityOptions{
		UsePaulingTest:         v.UsePaulingTest,
		IncludeAlloys:          v.IncludeAlloys,
		CheckMetallicity:       v.CheckMetallicity,
		MetallicityThreshold:   v.MetallicityThreshold,
		CheckIntermetallic:     v.CheckIntermetallic,
		IntermetallicThreshold: v.IntermetallicThreshold,
		MixedValence:           v.MixedValence,
		MaxMixedStates:         v.MaxMixedStates,
		Source:                 v.Source,
		Rule:                   cfg.Pauling,
	}
}
