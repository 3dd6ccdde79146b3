package model

import (
	"fmt"
	"strings"
)

// Composition is one allowed (elements, oxidation states, ratio) triple
type Composition struct {
	Elements        []string `json:"elements" yaml:"elements"`
	OxidationStates []int    `json:"oxidation_states" yaml:"oxidation_states"`
	Ratio           []int    `json:"ratio" yaml:"ratio"`
}

// Key identifies the composition for deduplication
func (c Composition) Key() string {
	return fmt.Sprintf("%s|%s|%s", strings.Join(c.Elements, ","), joinInts(c.OxidationStates), joinInts(c.Ratio))
}

// ElementRatio drops the oxidation states from a Composition
func (c Composition) ElementRatio() ElementRatio {
	return ElementRatio{Elements: c.Elements, Ratio: c.Ratio}
}

// ElementRatio is an (elements, ratio) pair reported when species are not
// kept distinct
type ElementRatio struct {
	Elements []string `json:"elements" yaml:"elements"`
	Ratio    []int    `json:"ratio" yaml:"ratio"`
}

// Key identifies the pair for deduplication
func (e ElementRatio) Key() string {
	return fmt.Sprintf("%s|%s", strings.Join(e.Elements, ","), joinInts(e.Ratio))
}

// FilterResult is the output of screening one element combination
type FilterResult struct {
	Elements      []string       `json:"elements" yaml:"elements"`
	Source        string         `json:"source" yaml:"source"`
	Threshold     int            `json:"threshold" yaml:"threshold"`
	SpeciesUnique bool           `json:"species_unique" yaml:"species_unique"`
	Compositions  []Composition  `json:"compositions,omitempty" yaml:"compositions,omitempty"`   // when SpeciesUnique
	ElementRatios []ElementRatio `json:"element_ratios,omitempty" yaml:"element_ratios,omitempty"` // otherwise
	Warnings      []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Len returns the number of allowed entries in whichever form was requested
func (r *FilterResult) Len() int {
	if r.SpeciesUnique {
		return len(r.Compositions)
	}
	return len(r.ElementRatios)
}

// SpaceResult aggregates filter results over a chemical space
type SpaceResult struct {
	Elements []string        `json:"elements" yaml:"elements"`
	Order    int             `json:"order" yaml:"order"`
	Systems  []*FilterResult `json:"systems" yaml:"systems"`
	Warnings []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Total counts allowed entries across all systems
func (r *SpaceResult) Total() int {
	total := 0
	for _, s := range r.Systems {
		total += s.Len()
	}
	return total
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
