package screen

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ppiankov/chemscreen/internal/charge"
	"github.com/ppiankov/chemscreen/internal/element"
	"github.com/ppiankov/chemscreen/internal/formula"
	"github.com/ppiankov/chemscreen/internal/model"
	"github.com/ppiankov/chemscreen/internal/pauling"
)

// ValidityOptions configures Validity
type ValidityOptions struct {
	UsePaulingTest bool

	// IncludeAlloys accepts formulas made only of metals without a charge search
	IncludeAlloys bool

	CheckMetallicity     bool
	MetallicityThreshold float64

	CheckIntermetallic     bool
	IntermetallicThreshold float64

	// MixedValence lets one element take several oxidation states at once
	MixedValence bool

	// MaxMixedStates caps how many distinct states one element may split
	// its sites across
	MaxMixedStates int

	// Source is a built-in source name, alias or file path
	Source string

	Rule pauling.Rule
}

// DefaultValidityOptions returns the classifier defaults
func DefaultValidityOptions() ValidityOptions {
	return ValidityOptions{
		UsePaulingTest:         true,
		IncludeAlloys:          true,
		MetallicityThreshold:   0.7,
		IntermetallicThreshold: 0.7,
		MaxMixedStates:         2,
		Source:                 element.DefaultSource.Name(),
		Rule:                   pauling.DefaultRule(),
	}
}

// Validity classifies a single formula.
//
// Rules are tried in order: single element, all-metal alloy, metallicity
// and intermetallic scores, one oxidation state per element, then (when
// enabled) mixed valence. A malformed formula, an unknown element or an
// unknown source is an error; an element without known oxidation states
// makes the formula invalid.
func (s *Screener) Validity(f string, opts ValidityOptions) (*model.Verdict, error) {
	comp, err := formula.Parse(f)
	if err != nil {
		return nil, err
	}

	symbols := comp.Symbols()
	for _, sym := range symbols {
		if !s.provider.Known(sym) {
			return nil, errors.Wrapf(element.ErrUnknownElement, "%q in %s", sym, strings.TrimSpace(f))
		}
	}

	src, warnings, err := s.resolveSource(opts.Source)
	if err != nil {
		return nil, err
	}

	v := &model.Verdict{
		Formula:  comp.String(),
		Source:   src.String(),
		Warnings: warnings,
	}
	log := s.logger.With(zap.String("formula", v.Formula), zap.String("source", v.Source))

	if len(symbols) == 1 {
		return accept(v, model.ReasonSingleElement), nil
	}

	if opts.IncludeAlloys && allMetals(symbols) {
		return accept(v, model.ReasonAlloy), nil
	}

	if opts.CheckMetallicity {
		sc := s.scorer.Metallicity(comp)
		v.Score = &sc
		if sc.Value >= opts.MetallicityThreshold {
			return accept(v, model.ReasonMetallicity), nil
		}
	}
	if opts.CheckIntermetallic {
		sc := s.scorer.Intermetallic(comp)
		v.Score = &sc
		if sc.Value >= opts.IntermetallicThreshold {
			return accept(v, model.ReasonIntermetallic), nil
		}
	}

	counts, err := comp.IntegerCounts()
	if err != nil {
		return nil, err
	}

	states, err := s.statesFor(symbols, src)
	if err != nil {
		return nil, err
	}
	for i, st := range states {
		if len(st) == 0 {
			log.Debug("element has no oxidation states", zap.String("element", symbols[i]))
			return reject(v, model.ReasonNoOxidationStates), nil
		}
	}

	enegs := s.provider.Electronegativities(symbols)

	assignment, sawNeutral := singleValence(symbols, counts, states, enegs, opts)
	if assignment != nil {
		v.Assignment = assignment
		return accept(v, model.ReasonChargeBalanced), nil
	}

	if opts.MixedValence {
		res := mixedValence(symbols, counts, states, enegs, opts)
		v.Warnings = append(v.Warnings, res.warnings...)
		sawNeutral = sawNeutral || res.sawNeutral
		if res.assignment != nil {
			v.Assignment = res.assignment
			return accept(v, model.ReasonMixedValence), nil
		}
	}

	if sawNeutral {
		return reject(v, model.ReasonElectronegativity), nil
	}
	return reject(v, model.ReasonNotNeutral), nil
}

func accept(v *model.Verdict, r model.Reason) *model.Verdict {
	v.Valid = true
	v.Reason = r
	return v
}

func reject(v *model.Verdict, r model.Reason) *model.Verdict {
	v.Valid = false
	v.Reason = r
	return v
}

func allMetals(symbols []string) bool {
	return !slices.ContainsFunc(symbols, func(s string) bool { return !element.IsMetal(s) })
}

// singleValence searches one oxidation state per element. It returns the
// first neutral assignment passing the ordering test, and whether any
// neutral assignment was seen at all.
func singleValence(symbols []string, counts []int, states [][]int, enegs []float64, opts ValidityOptions) ([]model.Species, bool) {
	stoichs := make([][]int, len(counts))
	for i, c := range counts {
		stoichs[i] = []int{c}
	}
	threshold := slices.Max(counts)

	var found []model.Species
	sawNeutral := false
	eachCombination(states, func(ox []int) bool {
		if ok, _ := charge.NeutralRatios(ox, stoichs, threshold); !ok {
			return true
		}
		sawNeutral = true
		if opts.UsePaulingTest && !pauling.Test(ox, enegs, symbols, opts.Rule) {
			return true
		}
		found = make([]model.Species, len(symbols))
		for i, sym := range symbols {
			found[i] = model.Species{Symbol: sym, OxidationState: ox[i], Count: counts[i]}
		}
		return false
	})
	return found, sawNeutral
}
