package pauling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	enSn = 1.96
	enS  = 2.58
	enNa = 0.93
	enFe = 1.83
	enCl = 3.16
)

func TestTest_Strictness(t *testing.T) {
	rule := DefaultRule()

	assert.True(t, Test([]int{2, -2}, []float64{1.0, 3.0}, nil, rule))
	assert.False(t, Test([]int{2, -2}, []float64{3.0, 1.0}, nil, rule))
	assert.True(t, Test([]int{2, -2}, []float64{enSn, enS}, nil, rule))
	assert.False(t, Test([]int{-2, 2}, []float64{enSn, enS}, nil, rule))

	// equal electronegativities are not strictly ordered
	assert.False(t, Test([]int{1, -1}, []float64{2.0, 2.0}, nil, rule))
}

func TestTest_ThresholdRelaxation(t *testing.T) {
	strict := DefaultRule()
	relaxed := DefaultRule()
	relaxed.Threshold = 0.1

	assert.False(t, Test([]int{1, -1}, []float64{1.83, 1.82}, nil, strict))
	assert.True(t, Test([]int{1, -1}, []float64{1.83, 1.82}, nil, relaxed))
	assert.False(t, Test([]int{1, -1}, []float64{2.0, 1.82}, nil, relaxed))
}

func TestTest_Repetition(t *testing.T) {
	noRepeatAnions := Rule{RepeatAnions: false, RepeatCations: true}
	noRepeatCations := Rule{RepeatAnions: true, RepeatCations: false}

	tests := []struct {
		name    string
		ox      []int
		enegs   []float64
		symbols []string
		rule    Rule
		want    bool
	}{
		{"repeated anion forbidden", []int{-2, -2, 2}, []float64{enS, enS, enSn}, []string{"S", "S", "Sn"}, noRepeatAnions, false},
		{"repeated anion, cations restricted", []int{-2, -2, 2}, []float64{enS, enS, enSn}, []string{"S", "S", "Sn"}, noRepeatCations, true},
		{"repeated cation forbidden", []int{-2, 2, 2}, []float64{enS, enSn, enSn}, []string{"S", "Sn", "Sn"}, noRepeatCations, false},
		{"repeated cation allowed", []int{-2, 2, 2}, []float64{enS, enSn, enSn}, []string{"S", "Sn", "Sn"}, DefaultRule(), true},
		{"symbols missing", []int{-2, 2}, []float64{enS, enSn}, nil, noRepeatAnions, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Test(tt.ox, tt.enegs, tt.symbols, tt.rule))
		})
	}
}

func TestTest_RepetitionWithThreshold(t *testing.T) {
	rule := Rule{Threshold: 0.5, RepeatAnions: false, RepeatCations: true}

	assert.False(t, Test([]int{-1, -2, 3}, []float64{3.44, 3.44, 1.83}, []string{"O", "O", "Fe"}, rule))
	assert.True(t, Test([]int{-2, 2}, []float64{3.44, 1.83}, []string{"O", "Fe"}, rule))
}

func TestTest_DegenerateInputs(t *testing.T) {
	rule := DefaultRule()

	assert.False(t, Test([]int{1, 2}, []float64{1.0, 1.5}, nil, rule), "no anions")
	assert.False(t, Test([]int{-1, -2}, []float64{3.0, 3.5}, nil, rule), "no cations")
	assert.False(t, Test([]int{0, 0}, []float64{1.0, 2.0}, nil, rule), "only zero states")
	assert.False(t, Test(nil, nil, nil, rule))
	assert.False(t, Test([]int{1, -1}, []float64{1.0}, nil, rule), "length mismatch")

	// zero states are ignored, including their electronegativity
	assert.True(t, Test([]int{1, 0, -1}, []float64{1.0, 4.0, 3.0}, nil, rule))
	assert.True(t, Test([]int{1, 0, -1}, []float64{1.0, math.NaN(), 3.0}, nil, rule))
}

func TestTest_UnknownElectronegativityRejects(t *testing.T) {
	for _, threshold := range []float64{0, 0.2} {
		rule := DefaultRule()
		rule.Threshold = threshold

		assert.False(t, Test([]int{1, -1}, []float64{math.NaN(), 3.0}, nil, rule))
		assert.False(t, Test([]int{1, -1}, []float64{1.0, math.NaN()}, nil, rule))
		assert.False(t, Test([]int{1, 1, -1}, []float64{1.0, math.NaN(), 3.0}, nil, rule))
	}
}

func TestTest_UnknownElectronegativityOnZeroSite(t *testing.T) {
	for _, threshold := range []float64{0, 0.5} {
		rule := DefaultRule()
		rule.Threshold = threshold

		assert.True(t, Test([]int{2, 0, -2}, []float64{1.0, math.NaN(), 3.0}, nil, rule), "threshold %v", threshold)
		assert.False(t, Test([]int{2, 0, -2}, []float64{3.0, math.NaN(), 1.0}, nil, rule), "threshold %v", threshold)
	}
}

func TestTest_OrderInvariance(t *testing.T) {
	cases := []struct {
		ox      []int
		enegs   []float64
		symbols []string
	}{
		{[]int{1, -1, -1}, []float64{enNa, enFe, enCl}, []string{"Na", "Fe", "Cl"}},
		{[]int{1, 1, -1}, []float64{enNa, enFe, enCl}, []string{"Na", "Fe", "Cl"}},
		{[]int{-1, 3, 1}, []float64{enNa, enFe, enCl}, []string{"Na", "Fe", "Cl"}},
		{[]int{-2, -2, 2}, []float64{enS, enS, enSn}, []string{"S", "S", "Sn"}},
		{[]int{2, 3, -2}, []float64{1.83, 1.83, 3.44}, []string{"Fe", "Fe", "O"}},
	}
	rules := []Rule{
		DefaultRule(),
		{Threshold: 0.3, RepeatAnions: true, RepeatCations: true},
		{RepeatAnions: false, RepeatCations: true},
		{RepeatAnions: true, RepeatCations: false},
		{Threshold: 1.0},
	}

	for _, c := range cases {
		for _, rule := range rules {
			want := Test(c.ox, c.enegs, c.symbols, rule)
			for _, perm := range permutations(len(c.ox)) {
				ox := make([]int, len(perm))
				en := make([]float64, len(perm))
				sy := make([]string, len(perm))
				for i, p := range perm {
					ox[i], en[i], sy[i] = c.ox[p], c.enegs[p], c.symbols[p]
				}
				assert.Equal(t, want, Test(ox, en, sy, rule), "ox=%v rule=%+v", ox, rule)
			}
		}
	}
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			next := make([]int, 0, n)
			next = append(next, p[:i]...)
			next = append(next, n-1)
			next = append(next, p[i:]...)
			out = append(out, next)
		}
	}
	return out
}
