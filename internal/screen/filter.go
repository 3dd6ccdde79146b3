package screen

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ppiankov/chemscreen/internal/charge"
	"github.com/ppiankov/chemscreen/internal/element"
	"github.com/ppiankov/chemscreen/internal/model"
	"github.com/ppiankov/chemscreen/internal/pauling"
)

// FilterOptions configures Filter
type FilterOptions struct {
	// Threshold is the per-site multiplier ceiling; zero means
	// charge.DefaultThreshold. Ignored when Stoichs is set.
	Threshold int

	// Stoichs optionally lists the allowed multipliers per element
	Stoichs [][]int

	// SpeciesUnique keeps oxidation states in the output; otherwise results
	// collapse to deduplicated element/ratio pairs
	SpeciesUnique bool

	// Source is a built-in source name, alias or file path
	Source string

	Rule pauling.Rule
}

// DefaultFilterOptions returns the filter defaults
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Threshold:     charge.DefaultThreshold,
		SpeciesUnique: true,
		Source:        element.DefaultSource.Name(),
		Rule:          pauling.DefaultRule(),
	}
}

// Filter returns the charge-neutral, electronegativity-ordered
// compositions of the given elements.
//
// Every combination of oxidation states (one per element, product order)
// is searched for neutral ratios; combinations with at least one ratio
// that also pass the ordering test contribute one Composition per ratio.
// An unknown source is an error; a caveated source adds a warning.
func (s *Screener) Filter(elements []string, opts FilterOptions) (*model.FilterResult, error) {
	if len(elements) == 0 {
		return nil, errors.New("no elements to filter")
	}
	if opts.Stoichs != nil && len(opts.Stoichs) != len(elements) {
		return nil, errors.Newf("stoichiometry domains for %d sites, got %d elements", len(opts.Stoichs), len(elements))
	}

	src, warnings, err := s.resolveSource(opts.Source)
	if err != nil {
		return nil, err
	}

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = charge.DefaultThreshold
	}

	states, err := s.statesFor(elements, src)
	if err != nil {
		return nil, errors.Wrapf(err, "filter %v", elements)
	}
	enegs := s.provider.Electronegativities(elements)
	symbols := append([]string(nil), elements...)

	result := &model.FilterResult{
		Elements:      symbols,
		Source:        src.String(),
		Threshold:     threshold,
		SpeciesUnique: opts.SpeciesUnique,
		Warnings:      warnings,
	}

	seen := make(map[string]struct{})
	eachCombination(states, func(ox []int) bool {
		ok, ratios := charge.NeutralRatios(ox, opts.Stoichs, threshold)
		if !ok || !pauling.Test(ox, enegs, symbols, opts.Rule) {
			return true
		}

		oxCopy := append([]int(nil), ox...)
		for _, r := range ratios {
			comp := model.Composition{Elements: symbols, OxidationStates: oxCopy, Ratio: r}
			if opts.SpeciesUnique {
				result.Compositions = append(result.Compositions, comp)
				continue
			}
			er := comp.ElementRatio()
			if _, dup := seen[er.Key()]; dup {
				continue
			}
			seen[er.Key()] = struct{}{}
			result.ElementRatios = append(result.ElementRatios, er)
		}
		return true
	})

	s.logger.Debug("filtered composition space",
		zap.Strings("elements", symbols),
		zap.String("source", src.String()),
		zap.Int("threshold", threshold),
		zap.Int("allowed", result.Len()),
	)
	return result, nil
}
