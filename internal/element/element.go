package element

import "math"

// Element holds the per-element properties the screening rules need
type Element struct {
	Number            int     `json:"number" yaml:"number"`
	Symbol            string  `json:"symbol" yaml:"symbol"`
	Name              string  `json:"name" yaml:"name"`
	Electronegativity float64 `json:"electronegativity" yaml:"electronegativity"` // Pauling scale, NaN if unknown
	Valence           int     `json:"valence" yaml:"valence"`                     // valence electrons, 0 if unknown
}

// Unknown is the sentinel for a missing electronegativity value
var Unknown = math.NaN()

// IsUnknown reports whether an electronegativity value is missing
func IsUnknown(x float64) bool {
	return math.IsNaN(x)
}

// HasElectronegativity reports whether the element has a known Pauling value
func (e Element) HasElectronegativity() bool {
	return !IsUnknown(e.Electronegativity)
}

// metals are the elements treated as metallic by the alloy and
// metallicity rules.
var metals = setOf(
	"Li", "Be", "Na", "Mg", "Al", "K", "Ca", "Sc", "Ti", "V", "Cr", "Mn",
	"Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "Rb", "Sr", "Y", "Zr", "Nb",
	"Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Cs", "Ba",
	"La", "Ce", "Pr", "Nd", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm",
	"Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl",
	"Pb", "Bi", "Po", "Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am",
	"Cm", "Bk", "Cf", "Es", "Fm", "Md", "No",
)

// anions excludes H, B, C and Si from the usual electronegative set.
var anions = setOf("N", "P", "As", "Sb", "O", "S", "Se", "Te", "F", "Cl", "Br", "I")

var dBlock = setOf(
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"La", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
)

func setOf(symbols ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		m[s] = struct{}{}
	}
	return m
}

// IsMetal reports whether symbol is in the metal set
func IsMetal(symbol string) bool {
	_, ok := metals[symbol]
	return ok
}

// IsAnion reports whether symbol is one of the typical anion formers
func IsAnion(symbol string) bool {
	_, ok := anions[symbol]
	return ok
}

// IsDBlock reports whether symbol is a d-block metal
func IsDBlock(symbol string) bool {
	_, ok := dBlock[symbol]
	return ok
}
