package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/chemscreen/internal/model"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func sampleFilter() *model.FilterResult {
	return &model.FilterResult{
		Elements:      []string{"Na", "Fe", "Cl"},
		Source:        "smact14",
		Threshold:     2,
		SpeciesUnique: true,
		Compositions: []model.Composition{
			{Elements: []string{"Na", "Fe", "Cl"}, OxidationStates: []int{1, -1, -1}, Ratio: []int{2, 1, 1}},
			{Elements: []string{"Na", "Fe", "Cl"}, OxidationStates: []int{1, 1, -1}, Ratio: []int{1, 1, 2}},
		},
		Warnings: []string{"check the states"},
	}
}

func sampleVerdict() *model.Verdict {
	return &model.Verdict{
		Formula: "Fe2O3",
		Valid:   true,
		Reason:  model.ReasonChargeBalanced,
		Source:  "icsd24",
		Assignment: []model.Species{
			{Symbol: "Fe", OxidationState: 3, Count: 2},
			{Symbol: "O", OxidationState: -2, Count: 3},
		},
		Score: &model.Score{
			Kind:  model.ScoreMetallicity,
			Value: 0.46,
			Signals: []model.Signal{
				{Type: model.SignalMetalFraction, Weight: 0.3, Value: 0.4, Contribution: 0.12},
			},
		},
	}
}

func sampleBatch() *model.BatchReport {
	return &model.BatchReport{
		RunID:      "run-1",
		StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:   1500 * time.Millisecond,
		Source:     "icsd24",
		Total:      3,
		ValidCount: 1,
		Failures:   1,
		Verdicts: []*model.Verdict{
			{Formula: "NaCl", Valid: true, Reason: model.ReasonChargeBalanced},
			{Formula: "NeF2", Valid: false, Reason: model.ReasonNoOxidationStates},
		},
		Errors: []model.BatchError{{Formula: "Fe2-O3", Error: "invalid formula"}},
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":         FormatTable,
		"table":    FormatTable,
		"JSON":     FormatJSON,
		"yml":      FormatYAML,
		"yaml":     FormatYAML,
		"markdown": FormatMarkdown,
		" md ":     FormatMarkdown,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("out.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("out"))
	assert.Equal(t, FormatYAML, FormatFromPath("out.YML"))
	assert.Equal(t, FormatMarkdown, FormatFromPath("report.md"))
}

func TestRenderer_FilterJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).Filter(sampleFilter()))

	var got model.FilterResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleFilter(), got)
}

func TestRenderer_VerdictYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatYAML).Verdict(sampleVerdict()))

	out := buf.String()
	assert.Contains(t, out, "formula: Fe2O3")
	assert.Contains(t, out, "reason: charge_balanced")
	assert.Contains(t, out, "kind: metallicity")
}

func TestRenderer_FilterTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable).Filter(sampleFilter()))

	out := buf.String()
	assert.Contains(t, out, "Na2FeCl")
	assert.Contains(t, out, "NaFeCl2")
	assert.Contains(t, out, "Na+1 Fe-1 Cl-1")
	assert.Contains(t, out, "check the states")
	assert.Contains(t, out, "2 allowed for Na-Fe-Cl")
}

func TestRenderer_FilterElementRatios(t *testing.T) {
	res := &model.FilterResult{
		Elements:      []string{"Na", "Cl"},
		Source:        "icsd24",
		Threshold:     5,
		ElementRatios: []model.ElementRatio{{Elements: []string{"Na", "Cl"}, Ratio: []int{1, 1}}},
	}

	for _, f := range []Format{FormatTable, FormatMarkdown} {
		var buf bytes.Buffer
		require.NoError(t, New(&buf, f).Filter(res))
		assert.Contains(t, buf.String(), "NaCl", f)
		assert.Contains(t, buf.String(), "1:1", f)
	}
}

func TestRenderer_VerdictMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatMarkdown).Verdict(sampleVerdict()))

	out := buf.String()
	assert.Contains(t, out, "# Fe2O3")
	assert.Contains(t, out, "- Valid: **true**")
	assert.Contains(t, out, "| Fe | +3 | 2 |")
	assert.Contains(t, out, "| O | -2 | 3 |")
	assert.Contains(t, out, "## metallicity score: 0.460")
}

func TestRenderer_VerdictTable(t *testing.T) {
	v := sampleVerdict()
	v.Valid = false
	v.Reason = model.ReasonNotNeutral
	v.Warnings = []string{"wiki"}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable).Verdict(v))

	out := buf.String()
	assert.Contains(t, out, "Fe2O3: invalid (not_charge_neutral)")
	assert.Contains(t, out, "metal_fraction")
	assert.Contains(t, out, "wiki")
}

func TestRenderer_Batch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatMarkdown).Batch(sampleBatch()))
	out := buf.String()
	assert.Contains(t, out, "- Formulas: 3 (valid 1, failed 1)")
	assert.Contains(t, out, "| NeF2 | false | no_oxidation_states |")
	assert.Contains(t, out, "- `Fe2-O3`: invalid formula")

	buf.Reset()
	require.NoError(t, New(&buf, FormatTable).Batch(sampleBatch()))
	out = buf.String()
	assert.Contains(t, out, "NaCl")
	assert.Contains(t, out, "Fe2-O3: invalid formula")
	assert.Contains(t, out, "3 formulas, 1 valid, 1 failed in 1.5s")
}

func TestRenderer_Space(t *testing.T) {
	s := &model.SpaceResult{
		Elements: []string{"Na", "Cl", "O"},
		Order:    2,
		Systems:  []*model.FilterResult{sampleFilter()},
		Warnings: []string{"once"},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable).Space(s))
	assert.Contains(t, buf.String(), "1 systems, 2 allowed")

	buf.Reset()
	require.NoError(t, New(&buf, FormatMarkdown).Space(s))
	assert.Contains(t, buf.String(), "| Na-Fe-Cl | 2 |")
	assert.Contains(t, buf.String(), "Total allowed: 2")
}

func TestRenderer_Elements(t *testing.T) {
	en := 0.93
	rows := []ElementRow{
		{Number: 11, Symbol: "Na", Name: "Sodium", Electronegativity: &en, Valence: 1, OxidationStates: []int{1}},
		{Number: 10, Symbol: "Ne", Name: "Neon"},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatMarkdown).Elements(rows))
	assert.Contains(t, buf.String(), "| 11 | Na | 0.93 | +1 |")
	assert.Contains(t, buf.String(), "| 10 | Ne | unknown | none |")

	buf.Reset()
	require.NoError(t, New(&buf, FormatJSON).Elements(rows))
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Nil(t, got[1]["electronegativity"])
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, WriteFile(jsonPath, sampleBatch()))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var got model.BatchReport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Len(t, got.Verdicts, 2)

	yamlPath := filepath.Join(dir, "report.yaml")
	require.NoError(t, WriteFile(yamlPath, sampleBatch()))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "icsd24", raw["source"])

	assert.Error(t, WriteFile(filepath.Join(dir, "missing", "report.json"), sampleBatch()))
}
