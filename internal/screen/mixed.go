package screen

import (
	"fmt"

	"github.com/ppiankov/chemscreen/internal/model"
	"github.com/ppiankov/chemscreen/internal/pauling"
)

// maxMixedSites bounds the site count of an element that may split across
// several oxidation states; larger counts keep a single state
const maxMixedSites = 100

// valenceOption is one way of assigning states to all sites of an element:
// a set of distinct states, each used at least once, and the charge totals
// reachable by splitting the sites between them
type valenceOption struct {
	states []int
	splits map[int][]int // total charge -> site count per state
}

type mixedResult struct {
	assignment []model.Species
	sawNeutral bool
	warnings   []string
}

// mixedValence searches assignments in which an element may occupy up to
// opts.MaxMixedStates distinct oxidation states across its sites. Single
// state options are included, so any single-valence solution is found too.
func mixedValence(symbols []string, counts []int, states [][]int, enegs []float64, opts ValidityOptions) mixedResult {
	maxStates := opts.MaxMixedStates
	if maxStates < 1 {
		maxStates = 1
	}

	var res mixedResult
	options := make([][]valenceOption, len(symbols))
	for i, sym := range symbols {
		k := maxStates
		if counts[i] > maxMixedSites && k > 1 {
			k = 1
			res.warnings = append(res.warnings,
				fmt.Sprintf("mixed valence not tried for %s: %d sites exceeds %d", sym, counts[i], maxMixedSites))
		}
		options[i] = elementOptions(states[i], counts[i], k)
	}

	// an element holding one species in two states is repetition by construction
	rule := opts.Rule
	rule.RepeatAnions = true
	rule.RepeatCations = true

	search := &mixedSearch{
		symbols: symbols,
		enegs:   enegs,
		options: options,
		rule:    rule,
		pauling: opts.UsePaulingTest,
		chosen:  make([]int, len(symbols)),
	}
	search.run(0, map[int]struct{}{0: {}}, nil)

	res.assignment = search.found
	res.sawNeutral = search.sawNeutral
	if res.assignment == nil && !res.sawNeutral && opts.UsePaulingTest {
		// pruning may have cut every neutral branch before its leaf
		res.sawNeutral = neutralReachable(options)
	}
	return res
}

// neutralReachable reports whether some choice of options sums to zero,
// ignoring electronegativity
func neutralReachable(options [][]valenceOption) bool {
	reach := map[int]struct{}{0: {}}
	for _, opts := range options {
		next := make(map[int]struct{})
		for before := range reach {
			for _, opt := range opts {
				for charge := range opt.splits {
					next[before+charge] = struct{}{}
				}
			}
		}
		reach = next
	}
	_, ok := reach[0]
	return ok
}

// elementOptions enumerates the state subsets of size 1..maxStates with
// every split of count sites that uses each chosen state at least once
func elementOptions(states []int, count, maxStates int) []valenceOption {
	var out []valenceOption
	for k := 1; k <= maxStates && k <= len(states) && k <= count; k++ {
		eachSubset(len(states), k, func(idx []int) {
			subset := make([]int, k)
			for j, i := range idx {
				subset[j] = states[i]
			}
			opt := valenceOption{states: subset, splits: make(map[int][]int)}
			eachSplit(count, k, func(parts []int) {
				total := 0
				for j, p := range parts {
					total += subset[j] * p
				}
				if _, ok := opt.splits[total]; !ok {
					opt.splits[total] = append([]int(nil), parts...)
				}
			})
			out = append(out, opt)
		})
	}
	return out
}

// eachSubset calls fn with every k-combination of indices 0..n-1 in
// lexicographic order
func eachSubset(n, k int, fn func([]int)) {
	idx := make([]int, k)
	var rec func(pos, start int)
	rec = func(pos, start int) {
		if pos == k {
			fn(idx)
			return
		}
		for i := start; i <= n-(k-pos); i++ {
			idx[pos] = i
			rec(pos+1, i+1)
		}
	}
	rec(0, 0)
}

// eachSplit calls fn with every composition of n into k positive parts
func eachSplit(n, k int, fn func([]int)) {
	parts := make([]int, k)
	var rec func(pos, remaining int)
	rec = func(pos, remaining int) {
		if pos == k-1 {
			parts[pos] = remaining
			fn(parts)
			return
		}
		for p := 1; p <= remaining-(k-1-pos); p++ {
			parts[pos] = p
			rec(pos+1, remaining-p)
		}
	}
	if k > 0 && n >= k {
		rec(0, n)
	}
}

type mixedSearch struct {
	symbols []string
	enegs   []float64
	options [][]valenceOption
	rule    pauling.Rule
	pauling bool

	chosen     []int         // option index per element
	levels     []map[int]int // reachable total after element i -> total before it
	found      []model.Species
	sawNeutral bool
}

// run picks an option for element i given the charge totals reachable by
// the elements before it. It returns true once an assignment is found.
func (m *mixedSearch) run(i int, reach map[int]struct{}, species []speciesRef) bool {
	if i == len(m.symbols) {
		if _, ok := reach[0]; !ok {
			return false
		}
		m.sawNeutral = true
		if m.pauling && !m.speciesPass(species, true) {
			return false
		}
		m.found = m.witness()
		return true
	}

	for oi, opt := range m.options[i] {
		next := species
		for _, st := range opt.states {
			next = append(next[:len(next):len(next)], speciesRef{site: i, state: st})
		}
		// extending a failing set never makes it pass
		if m.pauling && !m.speciesPass(next, false) {
			continue
		}

		back := make(map[int]int)
		for before := range reach {
			for charge := range opt.splits {
				if _, ok := back[before+charge]; !ok {
					back[before+charge] = before
				}
			}
		}

		m.chosen[i] = oi
		m.levels = append(m.levels, back)
		nextReach := make(map[int]struct{}, len(back))
		for total := range back {
			nextReach[total] = struct{}{}
		}
		if m.run(i+1, nextReach, next) {
			return true
		}
		m.levels = m.levels[:len(m.levels)-1]
	}
	return false
}

type speciesRef struct {
	site  int
	state int
}

// speciesPass applies the ordering rule to the chosen species. Partial
// sets without both a cation and an anion are not judged yet.
func (m *mixedSearch) speciesPass(species []speciesRef, complete bool) bool {
	ox := make([]int, len(species))
	enegs := make([]float64, len(species))
	symbols := make([]string, len(species))
	cations, anions := false, false
	for j, sp := range species {
		ox[j] = sp.state
		enegs[j] = m.enegs[sp.site]
		symbols[j] = m.symbols[sp.site]
		cations = cations || sp.state > 0
		anions = anions || sp.state < 0
	}
	if !complete && !(cations && anions) {
		return true
	}
	return pauling.Test(ox, enegs, symbols, m.rule)
}

// witness walks the recorded levels back from a zero total
func (m *mixedSearch) witness() []model.Species {
	var out []model.Species
	total := 0
	perElement := make([][]model.Species, len(m.symbols))
	for i := len(m.symbols) - 1; i >= 0; i-- {
		before := m.levels[i][total]
		opt := m.options[i][m.chosen[i]]
		parts := opt.splits[total-before]
		for j, st := range opt.states {
			perElement[i] = append(perElement[i], model.Species{
				Symbol:         m.symbols[i],
				OxidationState: st,
				Count:          parts[j],
			})
		}
		total = before
	}
	for _, sp := range perElement {
		out = append(out, sp...)
	}
	return out
}
