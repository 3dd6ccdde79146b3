package model

// Score is a transparent 0-1 composition score with its breakdown
type Score struct {
	Kind    ScoreKind `json:"kind" yaml:"kind"`       // metallicity or intermetallic
	Value   float64   `json:"value" yaml:"value"`     // clamped weighted sum
	Signals []Signal  `json:"signals" yaml:"signals"` // per-component contributions
}

// Signal is one weighted component of a Score
type Signal struct {
	Type         SignalType             `json:"type" yaml:"type"`
	Weight       float64                `json:"weight" yaml:"weight"`
	Value        float64                `json:"value" yaml:"value"`               // component value in [0,1]
	Contribution float64                `json:"contribution" yaml:"contribution"` // weight * value
	Description  string                 `json:"description" yaml:"description"`
	Data         map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"` // inputs and formula
}

// ScoreKind names the scoring function that produced a Score
type ScoreKind string

const (
	ScoreMetallicity   ScoreKind = "metallicity"
	ScoreIntermetallic ScoreKind = "intermetallic"
)

// SignalType classifies the score components
type SignalType string

const (
	SignalMetalFraction   SignalType = "metal_fraction"    // share of metallic atoms
	SignalDBlockFraction  SignalType = "d_block_fraction"  // share of d-block atoms
	SignalDistinctMetals  SignalType = "distinct_metals"   // number of different metals
	SignalValenceElectron SignalType = "valence_electrons" // closeness of VEC to 8
	SignalPaulingMismatch SignalType = "pauling_mismatch"  // mean electronegativity spread
)
