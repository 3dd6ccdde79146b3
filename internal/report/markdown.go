package report

import (
	"fmt"
	"strings"

	"github.com/ppiankov/chemscreen/internal/formula"
	"github.com/ppiankov/chemscreen/internal/model"
)

func filterMarkdown(res *model.FilterResult) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", strings.Join(res.Elements, "-"))
	fmt.Fprintf(&b, "- Source: `%s`\n", res.Source)
	fmt.Fprintf(&b, "- Threshold: %d\n", res.Threshold)
	fmt.Fprintf(&b, "- Allowed: %d\n\n", res.Len())
	writeWarnings(&b, res.Warnings)

	if res.SpeciesUnique {
		b.WriteString("| Formula | Oxidation states | Ratio |\n")
		b.WriteString("|---|---|---|\n")
		for _, c := range res.Compositions {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", formula.FromRatio(c.Elements, c.Ratio), species(c.Elements, c.OxidationStates), ints(c.Ratio))
		}
		return b.String(), nil
	}

	b.WriteString("| Formula | Ratio |\n")
	b.WriteString("|---|---|\n")
	for _, er := range res.ElementRatios {
		fmt.Fprintf(&b, "| %s | %s |\n", formula.FromRatio(er.Elements, er.Ratio), ints(er.Ratio))
	}
	return b.String(), nil
}

func verdictMarkdown(v *model.Verdict) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", v.Formula)
	fmt.Fprintf(&b, "- Valid: **%t**\n", v.Valid)
	fmt.Fprintf(&b, "- Reason: `%s`\n", v.Reason)
	if v.Source != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", v.Source)
	}
	b.WriteString("\n")
	writeWarnings(&b, v.Warnings)

	if len(v.Assignment) > 0 {
		b.WriteString("## Assignment\n\n")
		b.WriteString("| Element | Oxidation state | Count |\n")
		b.WriteString("|---|---|---|\n")
		for _, sp := range v.Assignment {
			fmt.Fprintf(&b, "| %s | %+d | %d |\n", sp.Symbol, sp.OxidationState, sp.Count)
		}
		b.WriteString("\n")
	}

	if v.Score != nil {
		fmt.Fprintf(&b, "## %s score: %.3f\n\n", v.Score.Kind, v.Score.Value)
		b.WriteString("| Component | Weight | Value | Contribution |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, s := range v.Score.Signals {
			fmt.Fprintf(&b, "| %s | %.2f | %.3f | %.3f |\n", s.Type, s.Weight, s.Value, s.Contribution)
		}
	}
	return b.String(), nil
}

func batchMarkdown(r *model.BatchReport) (string, error) {
	var b strings.Builder

	b.WriteString("# Batch validity report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Source: `%s`\n", r.Source)
	fmt.Fprintf(&b, "- Formulas: %d (valid %d, failed %d)\n", r.Total, r.ValidCount, r.Failures)
	fmt.Fprintf(&b, "- Duration: %s\n\n", r.Duration)

	b.WriteString("| Formula | Valid | Reason |\n")
	b.WriteString("|---|---|---|\n")
	for _, v := range r.Verdicts {
		fmt.Fprintf(&b, "| %s | %t | %s |\n", v.Formula, v.Valid, v.Reason)
	}

	if len(r.Errors) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "- `%s`: %s\n", e.Formula, e.Error)
		}
	}
	return b.String(), nil
}

func spaceMarkdown(s *model.SpaceResult) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Order-%d systems of %s\n\n", s.Order, strings.Join(s.Elements, ", "))
	writeWarnings(&b, s.Warnings)

	b.WriteString("| System | Allowed |\n")
	b.WriteString("|---|---|\n")
	for _, sys := range s.Systems {
		fmt.Fprintf(&b, "| %s | %d |\n", strings.Join(sys.Elements, "-"), sys.Len())
	}
	fmt.Fprintf(&b, "\nTotal allowed: %d\n", s.Total())
	return b.String(), nil
}

func elementsMarkdown(rows []ElementRow) (string, error) {
	var b strings.Builder

	b.WriteString("| Z | Symbol | Electronegativity | Oxidation states |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", row.Number, row.Symbol, eneg(row.Electronegativity), states(row.OxidationStates))
	}
	return b.String(), nil
}

func writeWarnings(b *strings.Builder, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(b, "> **Warning:** %s\n\n", w)
	}
}

// species renders "Na+1 Fe-1 Cl-1"
func species(symbols []string, oxidations []int) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = fmt.Sprintf("%s%+d", s, oxidations[i])
	}
	return strings.Join(parts, " ")
}

func ints(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ":")
}

func states(values []int) string {
	if len(values) == 0 {
		return "none"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%+d", v)
	}
	return strings.Join(parts, " ")
}

func eneg(x *float64) string {
	if x == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.2f", *x)
}
