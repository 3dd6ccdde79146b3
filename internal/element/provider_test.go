package element

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Element(t *testing.T) {
	p := MustNew()

	pt, err := p.Element("Pt")
	require.NoError(t, err)
	assert.Equal(t, 78, pt.Number)
	assert.Equal(t, "Platinum", pt.Name)
	assert.InDelta(t, 2.28, pt.Electronegativity, 1e-9)

	_, err = p.Element("Xx")
	assert.True(t, errors.Is(err, ErrUnknownElement))
}

func TestProvider_Electronegativity_UnknownForNobleGases(t *testing.T) {
	p := MustNew()

	for _, sym := range []string{"He", "Ne", "Ar"} {
		assert.True(t, IsUnknown(p.Electronegativity(sym)), sym)
	}
	assert.True(t, IsUnknown(p.Electronegativity("Xx")))
	assert.False(t, IsUnknown(p.Electronegativity("F")))
}

func TestProvider_OrderedElements(t *testing.T) {
	p := MustNew()

	assert.Equal(t, []string{"Tb", "Dy", "Ho", "Er"}, p.OrderedElements(65, 68))
	assert.Equal(t, []string{"Te"}, p.OrderedElements(52, 52))
	assert.Len(t, p.OrderedElements(1, 103), 103)
	assert.Nil(t, p.OrderedElements(10, 5))
}

func TestProvider_OxidationStates_Builtin(t *testing.T) {
	p := MustNew()

	fe, err := p.OxidationStates("Fe", SMACT14)
	require.NoError(t, err)
	assert.Contains(t, fe, -1)
	assert.Contains(t, fe, 1)
	assert.IsIncreasing(t, fe)

	na, err := p.OxidationStates("Na", ICSD24)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, na)

	// returned slices are copies
	na[0] = 99
	again, err := p.OxidationStates("Na", ICSD24)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, again)
}

func TestProvider_OxidationStates_NeonHasNoneInAnySource(t *testing.T) {
	p := MustNew()

	for _, name := range BuiltinSourceNames() {
		src, err := ParseSource(name)
		require.NoError(t, err)

		states, err := p.OxidationStates("Ne", src)
		require.NoError(t, err, name)
		assert.Empty(t, states, name)
	}
}

func TestProvider_OxidationStates_UnknownElement(t *testing.T) {
	p := MustNew()

	_, err := p.OxidationStates("Qq", ICSD24)
	assert.True(t, errors.Is(err, ErrUnknownElement))
}

func TestProvider_OxidationStates_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ox.txt")
	content := strings.Join([]string{
		"# test oxidation states",
		"Rb -1 1",
		"O -2",
		"W +6 4 6",
		"Xe",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	src, err := ParseSource(path)
	require.NoError(t, err)
	assert.True(t, src.IsCustom())

	p := MustNew()

	rb, err := p.OxidationStates("Rb", src)
	require.NoError(t, err)
	assert.Equal(t, []int{-1, 1}, rb)

	w, err := p.OxidationStates("W", src)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6}, w)

	// absent and empty entries both mean "no known states"
	fe, err := p.OxidationStates("Fe", src)
	require.NoError(t, err)
	assert.Empty(t, fe)

	xe, err := p.OxidationStates("Xe", src)
	require.NoError(t, err)
	assert.Empty(t, xe)
}

func TestProvider_OxidationStates_RepeatedRowsMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ox.txt")
	require.NoError(t, os.WriteFile(path, []byte("Fe 3 4\nO -2\nFe 2 3\n"), 0644))

	fe, err := MustNew().OxidationStates("Fe", CustomSource(path))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, fe)
}

func TestParseOxidationTable_RepeatedSymbol(t *testing.T) {
	table, err := parseOxidationTable(strings.NewReader("Fe 3 4\nFe 2\nFe 4 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, table["Fe"])
}

func TestProvider_OxidationStates_MalformedCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("Fe two three\n"), 0644))

	p := MustNew()
	_, err := p.OxidationStates("Fe", CustomSource(path))
	assert.Error(t, err)
}

func TestProvider_ConcurrentFirstUse(t *testing.T) {
	p := MustNew()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			states, err := p.OxidationStates("Fe", ICSD24)
			assert.NoError(t, err)
			assert.Equal(t, []int{2, 3}, states)
		}()
	}
	wg.Wait()
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
	}{
		{"", ICSD24},
		{"smact14", SMACT14},
		{"default", SMACT14},
		{"ICSD24", ICSD24},
		{"icsd", ICSD24},
		{"icsd16", ICSD16},
		{"pymatgen", PymatgenSP},
		{"pymatgen_sp", PymatgenSP},
		{"wiki", Wiki},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSource(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSource("not-a-source")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSource))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestSource_IsCaveated(t *testing.T) {
	assert.True(t, Wiki.IsCaveated())
	assert.False(t, ICSD24.IsCaveated())
	assert.False(t, CustomSource("/tmp/x").IsCaveated())
}

func TestElementSets(t *testing.T) {
	assert.True(t, IsMetal("Fe"))
	assert.False(t, IsMetal("O"))
	assert.True(t, IsAnion("O"))
	assert.False(t, IsAnion("C"))
	assert.True(t, IsDBlock("Nb"))
	assert.False(t, IsDBlock("Al"))
}
