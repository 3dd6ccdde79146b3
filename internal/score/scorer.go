package score

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ppiankov/chemscreen/internal/element"
	"github.com/ppiankov/chemscreen/internal/formula"
	"github.com/ppiankov/chemscreen/internal/model"
)

// Component weights shared by the metallicity and intermetallic scores
const (
	weightMetalFraction  = 0.3
	weightDBlockFraction = 0.2
	weightDistinctMetals = 0.2
	weightValence        = 0.15
	weightPauling        = 0.15

	// mismatchScale is the mean electronegativity gap that zeroes the
	// Pauling term
	mismatchScale = 3.0

	// neutralTerm stands in for a component whose inputs are unknown
	neutralTerm = 0.5
)

// Scorer computes delegated composition scores from element data
type Scorer struct {
	provider *element.Provider
}

// NewScorer creates a scorer backed by the given provider
func NewScorer(p *element.Provider) *Scorer {
	return &Scorer{provider: p}
}

// Metallicity scores how metallic or alloy-like a composition is (0-1)
func (s *Scorer) Metallicity(c *formula.Composition) model.Score {
	return s.calculate(model.ScoreMetallicity, c)
}

// Intermetallic scores how intermetallic a composition is (0-1). It uses
// the same components and weights as Metallicity.
func (s *Scorer) Intermetallic(c *formula.Composition) model.Score {
	return s.calculate(model.ScoreIntermetallic, c)
}

func (s *Scorer) calculate(kind model.ScoreKind, c *formula.Composition) model.Score {
	signals := []model.Signal{
		s.metalFractionSignal(c),
		s.dBlockSignal(c),
		s.distinctMetalsSignal(c),
		s.valenceSignal(c),
		s.paulingSignal(c),
	}

	total := 0.0
	for _, sig := range signals {
		total += sig.Contribution
	}

	return model.Score{
		Kind:    kind,
		Value:   math.Max(0, math.Min(1, total)),
		Signals: signals,
	}
}

func (s *Scorer) metalFractionSignal(c *formula.Composition) model.Signal {
	f := MetalFraction(c)
	return signal(model.SignalMetalFraction, weightMetalFraction, f,
		fmt.Sprintf("Metal fraction: %.2f", f),
		map[string]interface{}{
			"fraction": f,
			"formula":  "metal_amount / total_amount",
		})
}

func (s *Scorer) dBlockSignal(c *formula.Composition) model.Signal {
	f := DBlockFraction(c)
	return signal(model.SignalDBlockFraction, weightDBlockFraction, f,
		fmt.Sprintf("d-block fraction: %.2f", f),
		map[string]interface{}{
			"fraction": f,
			"formula":  "d_block_amount / total_amount",
		})
}

func (s *Scorer) distinctMetalsSignal(c *formula.Composition) model.Signal {
	n := DistinctMetalCount(c)
	v := math.Min(float64(n)/3, 1)
	return signal(model.SignalDistinctMetals, weightDistinctMetals, v,
		fmt.Sprintf("%d distinct metal(s)", n),
		map[string]interface{}{
			"count":   n,
			"formula": "min(distinct_metals / 3, 1)",
		})
}

func (s *Scorer) valenceSignal(c *formula.Composition) model.Signal {
	vec, ok := ValenceElectronCount(s.provider, c)
	if !ok {
		return signal(model.SignalValenceElectron, weightValence, neutralTerm,
			"Valence electron count unknown",
			map[string]interface{}{"formula": "0.5 when any valence is unknown"})
	}
	v := 1 - math.Abs(vec-8)/8
	return signal(model.SignalValenceElectron, weightValence, v,
		fmt.Sprintf("Valence electron count: %.2f", vec),
		map[string]interface{}{
			"vec":     vec,
			"formula": "1 - |vec - 8| / 8",
		})
}

func (s *Scorer) paulingSignal(c *formula.Composition) model.Signal {
	mismatch := PaulingMismatch(s.provider, c)
	if element.IsUnknown(mismatch) {
		return signal(model.SignalPaulingMismatch, weightPauling, neutralTerm,
			"Electronegativity unknown for at least one element",
			map[string]interface{}{"formula": "0.5 when any electronegativity is unknown"})
	}
	v := 1 - math.Min(mismatch/mismatchScale, 1)
	return signal(model.SignalPaulingMismatch, weightPauling, v,
		fmt.Sprintf("Mean electronegativity gap: %.2f", mismatch),
		map[string]interface{}{
			"mismatch": mismatch,
			"formula":  "1 - min(mean_pairwise_gap / 3, 1)",
		})
}

func signal(t model.SignalType, weight, value float64, desc string, data map[string]interface{}) model.Signal {
	return model.Signal{
		Type:         t,
		Weight:       weight,
		Value:        value,
		Contribution: weight * value,
		Description:  desc,
		Data:         data,
	}
}

// ElementFraction returns the share of the composition's amount taken by
// elements matching in
func ElementFraction(c *formula.Composition, in func(symbol string) bool) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	target := 0.0
	for _, sym := range c.Symbols() {
		if in(sym) {
			target += c.Amount(sym)
		}
	}
	return target / total
}

// MetalFraction is ElementFraction over the metal set
func MetalFraction(c *formula.Composition) float64 {
	return ElementFraction(c, element.IsMetal)
}

// DBlockFraction is ElementFraction over the d-block set
func DBlockFraction(c *formula.Composition) float64 {
	return ElementFraction(c, element.IsDBlock)
}

// DistinctMetalCount counts the different metallic elements
func DistinctMetalCount(c *formula.Composition) int {
	n := 0
	for _, sym := range c.Symbols() {
		if element.IsMetal(sym) {
			n++
		}
	}
	return n
}

// PaulingMismatch is the mean absolute electronegativity difference over
// all unordered element pairs. It is 0 for a single element and NaN when
// any electronegativity is unknown.
func PaulingMismatch(p *element.Provider, c *formula.Composition) float64 {
	enegs := p.Electronegativities(c.Symbols())
	for _, x := range enegs {
		if element.IsUnknown(x) {
			return element.Unknown
		}
	}

	var gaps []float64
	for i := range enegs {
		for j := i + 1; j < len(enegs); j++ {
			gaps = append(gaps, math.Abs(enegs[i]-enegs[j]))
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	return stat.Mean(gaps, nil)
}

// ValenceElectronCount is the amount-weighted mean number of valence
// electrons. ok is false when an element's count is unknown.
func ValenceElectronCount(p *element.Provider, c *formula.Composition) (vec float64, ok bool) {
	symbols := c.Symbols()
	values := make([]float64, len(symbols))
	weights := make([]float64, len(symbols))
	for i, sym := range symbols {
		el, err := p.Element(sym)
		if err != nil || el.Valence <= 0 {
			return 0, false
		}
		values[i] = float64(el.Valence)
		weights[i] = c.Amount(sym)
	}
	return stat.Mean(values, weights), true
}
