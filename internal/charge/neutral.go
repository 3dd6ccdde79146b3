// Package charge finds stoichiometric ratios that balance a set of
// oxidation states.
//
// A ratio is accepted when the weighted sum of oxidation states is exactly
// zero and the ratio is irreducible, so (2,2) is never reported alongside
// (1,1). Sites with a zero oxidation state contribute nothing to the sum
// whatever their multiplier.
package charge

// DefaultThreshold is the per-site multiplier ceiling used when no
// explicit stoichiometry domains are given
const DefaultThreshold = 5

// Ratio is a tuple of positive multipliers, one per site
type Ratio []int

// NeutralRatios returns every irreducible ratio that makes oxidations
// charge neutral. When stoichs is nil each site may take any multiplier in
// [1, threshold]; otherwise stoichs[i] lists the allowed multipliers for
// site i. Ratios are returned in product order of the site domains.
func NeutralRatios(oxidations []int, stoichs [][]int, threshold int) (bool, []Ratio) {
	var ratios []Ratio
	EachNeutralRatio(oxidations, stoichs, threshold, func(r Ratio) bool {
		ratios = append(ratios, r)
		return true
	})
	return len(ratios) > 0, ratios
}

// EachNeutralRatio calls fn for every irreducible neutral ratio in product
// order and stops early when fn returns false. fn owns the ratio it receives.
func EachNeutralRatio(oxidations []int, stoichs [][]int, threshold int, fn func(Ratio) bool) {
	n := len(oxidations)
	if n == 0 {
		return
	}

	domains := stoichs
	if domains == nil {
		if threshold <= 0 {
			threshold = DefaultThreshold
		}
		shared := make([]int, threshold)
		for i := range shared {
			shared[i] = i + 1
		}
		domains = make([][]int, n)
		for i := range domains {
			domains[i] = shared
		}
	}
	if len(domains) != n {
		return
	}
	for _, d := range domains {
		if len(d) == 0 {
			return
		}
	}

	domains = dedupeDomains(domains)

	idx := make([]int, n)
	current := make(Ratio, n)
	for {
		for i := range current {
			current[i] = domains[i][idx[i]]
		}
		if positive(current) && IsNeutral(oxidations, current) && GCD(current...) == 1 {
			out := make(Ratio, n)
			copy(out, current)
			if !fn(out) {
				return
			}
		}

		// advance the odometer, last site fastest
		k := n - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(domains[k]) {
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

// IsNeutral reports whether the oxidation states sum to zero under ratio
func IsNeutral(oxidations []int, ratio []int) bool {
	if len(oxidations) != len(ratio) {
		return false
	}
	sum := 0
	for i, ox := range oxidations {
		sum += ox * ratio[i]
	}
	return sum == 0
}

// GCD returns the greatest common divisor of values (0 for no input)
func GCD(values ...int) int {
	g := 0
	for _, v := range values {
		g = gcd(g, v)
	}
	return g
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func positive(r Ratio) bool {
	for _, v := range r {
		if v <= 0 {
			return false
		}
	}
	return true
}

// dedupeDomains drops repeated multipliers within a site so the same
// ratio is never produced twice
func dedupeDomains(domains [][]int) [][]int {
	out := make([][]int, len(domains))
	for i, d := range domains {
		seen := make(map[int]struct{}, len(d))
		uniq := make([]int, 0, len(d))
		for _, v := range d {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			uniq = append(uniq, v)
		}
		out[i] = uniq
	}
	return out
}
