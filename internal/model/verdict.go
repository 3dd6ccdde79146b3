package model

import "time"

// Verdict is the outcome of classifying one formula
type Verdict struct {
	Formula    string     `json:"formula" yaml:"formula"`
	Valid      bool       `json:"valid" yaml:"valid"`
	Reason     Reason     `json:"reason" yaml:"reason"`
	Source     string     `json:"source,omitempty" yaml:"source,omitempty"`
	Assignment []Species  `json:"assignment,omitempty" yaml:"assignment,omitempty"` // species that balanced the formula
	Score      *Score     `json:"score,omitempty" yaml:"score,omitempty"`           // set when a score decided or was computed
	Warnings   []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Cached     bool       `json:"cached,omitempty" yaml:"cached,omitempty"`
}

// Species is an element in one oxidation state with its site count
type Species struct {
	Symbol         string `json:"symbol" yaml:"symbol"`
	OxidationState int    `json:"oxidation_state" yaml:"oxidation_state"`
	Count          int    `json:"count" yaml:"count"`
}

// Reason records which rule decided a Verdict
type Reason string

const (
	ReasonSingleElement     Reason = "single_element"      // one distinct element
	ReasonAlloy             Reason = "alloy"               // all elements metallic
	ReasonMetallicity       Reason = "metallicity"         // metallicity score above threshold
	ReasonIntermetallic     Reason = "intermetallic"       // intermetallic score above threshold
	ReasonChargeBalanced    Reason = "charge_balanced"     // neutral assignment passed the rules
	ReasonMixedValence      Reason = "mixed_valence"       // neutral only with mixed valence
	ReasonNoOxidationStates Reason = "no_oxidation_states" // an element has no known states
	ReasonNotNeutral        Reason = "not_charge_neutral"  // no neutral assignment exists
	ReasonElectronegativity Reason = "electronegativity"   // neutral assignments all failed Pauling
)

// BatchReport aggregates verdicts from one batch run
type BatchReport struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	Source     string        `json:"source" yaml:"source"`
	Total      int           `json:"total" yaml:"total"`
	ValidCount int           `json:"valid" yaml:"valid"`
	Failures   int           `json:"failures" yaml:"failures"`
	Verdicts   []*Verdict    `json:"verdicts" yaml:"verdicts"`
	Errors     []BatchError  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// BatchError records a formula that could not be classified
type BatchError struct {
	Formula string `json:"formula" yaml:"formula"`
	Error   string `json:"error" yaml:"error"`
}
