// Package pauling implements the electronegativity-ordering test: in a
// sensible ionic combination every cation is less electronegative than
// every anion.
package pauling

import "math"

// Rule configures the ordering test
type Rule struct {
	// Threshold lets a cation exceed an anion's electronegativity by up to
	// this amount. Zero demands a strict inequality.
	Threshold float64 `json:"threshold" yaml:"threshold" mapstructure:"threshold"`

	// RepeatAnions allows one element to appear as an anion on more than
	// one site (e.g. O in -1 and -2 states).
	RepeatAnions bool `json:"repeat_anions" yaml:"repeat_anions" mapstructure:"repeat_anions"`

	// RepeatCations is RepeatAnions for positive sites.
	RepeatCations bool `json:"repeat_cations" yaml:"repeat_cations" mapstructure:"repeat_cations"`
}

// DefaultRule is the strict test with repetition allowed
func DefaultRule() Rule {
	return Rule{
		Threshold:     0,
		RepeatAnions:  true,
		RepeatCations: true,
	}
}

// Test reports whether the combination passes the ordering rule.
//
// oxidations and enegs are index-aligned; symbols is only consulted when a
// repeat restriction is active. Zero states take no part. A combination
// without both a cation and an anion fails, as does any participating site
// with an unknown (NaN) electronegativity.
func Test(oxidations []int, enegs []float64, symbols []string, rule Rule) bool {
	if len(oxidations) != len(enegs) {
		return false
	}

	if !rule.RepeatAnions || !rule.RepeatCations {
		if len(symbols) != len(oxidations) {
			return false
		}
		if !noRepeats(oxidations, symbols, rule.RepeatAnions, rule.RepeatCations) {
			return false
		}
	}

	if !hasBothSigns(oxidations) {
		return false
	}

	if rule.Threshold == 0 {
		return strictScan(oxidations, enegs)
	}
	return thresholdScan(oxidations, enegs, rule.Threshold)
}

// strictScan short-circuits on the first offending cation/anion pair.
// Zero-state sites are neither cation nor anion, so an unknown
// electronegativity on one is never consulted.
func strictScan(oxidations []int, enegs []float64) bool {
	for i := 0; i < len(oxidations); i++ {
		if oxidations[i] == 0 {
			continue
		}
		if math.IsNaN(enegs[i]) {
			return false
		}
		for j := i + 1; j < len(oxidations); j++ {
			if oxidations[j] == 0 {
				continue
			}
			if math.IsNaN(enegs[j]) {
				return false
			}
			switch {
			case oxidations[i] > 0 && oxidations[j] < 0:
				if enegs[i] >= enegs[j] {
					return false
				}
			case oxidations[i] < 0 && oxidations[j] > 0:
				if enegs[j] >= enegs[i] {
					return false
				}
			}
		}
	}
	return true
}

// thresholdScan compares the least electronegative anion with the most
// electronegative cation, which is equivalent to checking every pair
func thresholdScan(oxidations []int, enegs []float64, threshold float64) bool {
	maxCation := math.Inf(-1)
	minAnion := math.Inf(1)
	for i, ox := range oxidations {
		if ox == 0 {
			continue
		}
		if math.IsNaN(enegs[i]) {
			return false
		}
		if ox > 0 {
			maxCation = math.Max(maxCation, enegs[i])
		} else {
			minAnion = math.Min(minAnion, enegs[i])
		}
	}
	return maxCation-minAnion <= threshold
}

func hasBothSigns(oxidations []int) bool {
	var pos, neg bool
	for _, ox := range oxidations {
		if ox > 0 {
			pos = true
		} else if ox < 0 {
			neg = true
		}
	}
	return pos && neg
}

// noRepeats reports whether no restricted symbol recurs within its sign group
func noRepeats(oxidations []int, symbols []string, repeatAnions, repeatCations bool) bool {
	cations := make(map[string]struct{})
	anions := make(map[string]struct{})
	for i, ox := range oxidations {
		switch {
		case ox > 0 && !repeatCations:
			if _, dup := cations[symbols[i]]; dup {
				return false
			}
			cations[symbols[i]] = struct{}{}
		case ox < 0 && !repeatAnions:
			if _, dup := anions[symbols[i]]; dup {
				return false
			}
			anions[symbols[i]] = struct{}{}
		}
	}
	return true
}
