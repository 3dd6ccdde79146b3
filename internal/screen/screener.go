// Package screen combines the charge-neutrality search and the
// electronegativity-ordering test into the composition filter, the
// single-formula validity classifier and chemical-space enumeration.
//
// Filter and Validity are pure functions of their inputs and the
// read-only element provider; they may be called from any number of
// goroutines. Space is the only concurrent driver.
package screen

import (
	"go.uber.org/zap"

	"github.com/ppiankov/chemscreen/internal/element"
	"github.com/ppiankov/chemscreen/internal/score"
)

// Screener holds the collaborators shared by all screening operations
type Screener struct {
	provider *element.Provider
	scorer   *score.Scorer
	logger   *zap.Logger
}

// Option configures a Screener
type Option func(*Screener)

// WithLogger sets the logger (default: no-op)
func WithLogger(logger *zap.Logger) Option {
	return func(s *Screener) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a screener over the given element provider
func New(p *element.Provider, opts ...Option) *Screener {
	s := &Screener{
		provider: p,
		scorer:   score.NewScorer(p),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the element data the screener reads from
func (s *Screener) Provider() *element.Provider {
	return s.provider
}

// resolveSource parses a source name and reports the caveat warning, if any
func (s *Screener) resolveSource(name string) (element.Source, []string, error) {
	src, err := element.ParseSource(name)
	if err != nil {
		return element.Source{}, nil, err
	}
	if src.IsCaveated() {
		s.logger.Warn("caveated oxidation state source", zap.String("source", src.Name()))
		return src, []string{element.WikiCaveat}, nil
	}
	return src, nil, nil
}

// statesFor fetches the candidate oxidation states of every symbol
func (s *Screener) statesFor(symbols []string, src element.Source) ([][]int, error) {
	out := make([][]int, len(symbols))
	for i, sym := range symbols {
		states, err := s.provider.OxidationStates(sym, src)
		if err != nil {
			return nil, err
		}
		out[i] = states
	}
	return out, nil
}

// eachCombination calls fn for every element of the Cartesian product of
// lists, first list slowest, and stops when fn returns false. fn must not
// retain its argument.
func eachCombination(lists [][]int, fn func([]int) bool) {
	n := len(lists)
	if n == 0 {
		return
	}
	for _, l := range lists {
		if len(l) == 0 {
			return
		}
	}

	idx := make([]int, n)
	current := make([]int, n)
	for {
		for i := range current {
			current[i] = lists[i][idx[i]]
		}
		if !fn(current) {
			return
		}

		k := n - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(lists[k]) {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			return
		}
	}
}
