package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"github.com/ppiankov/chemscreen/internal/formula"
	"github.com/ppiankov/chemscreen/internal/model"
)

func table(data pterm.TableData) (string, error) {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, "render table")
	}
	return s + "\n", nil
}

func warnings(b *strings.Builder, ws []string) {
	for _, w := range ws {
		b.WriteString(pterm.Warning.Sprintln(w))
	}
}

func filterTable(res *model.FilterResult) (string, error) {
	var b strings.Builder
	warnings(&b, res.Warnings)

	var data pterm.TableData
	if res.SpeciesUnique {
		data = pterm.TableData{{"Formula", "Oxidation states", "Ratio"}}
		for _, c := range res.Compositions {
			data = append(data, []string{formula.FromRatio(c.Elements, c.Ratio), species(c.Elements, c.OxidationStates), ints(c.Ratio)})
		}
	} else {
		data = pterm.TableData{{"Formula", "Ratio"}}
		for _, er := range res.ElementRatios {
			data = append(data, []string{formula.FromRatio(er.Elements, er.Ratio), ints(er.Ratio)})
		}
	}

	t, err := table(data)
	if err != nil {
		return "", err
	}
	b.WriteString(t)
	fmt.Fprintf(&b, "%d allowed for %s (source %s, threshold %d)\n", res.Len(), strings.Join(res.Elements, "-"), res.Source, res.Threshold)
	return b.String(), nil
}

func verdictTable(v *model.Verdict) (string, error) {
	var b strings.Builder
	warnings(&b, v.Warnings)

	status := pterm.Red("invalid")
	if v.Valid {
		status = pterm.Green("valid")
	}
	fmt.Fprintf(&b, "%s: %s (%s)\n", v.Formula, status, v.Reason)

	if len(v.Assignment) > 0 {
		data := pterm.TableData{{"Element", "Oxidation state", "Count"}}
		for _, sp := range v.Assignment {
			data = append(data, []string{sp.Symbol, fmt.Sprintf("%+d", sp.OxidationState), fmt.Sprint(sp.Count)})
		}
		t, err := table(data)
		if err != nil {
			return "", err
		}
		b.WriteString(t)
	}

	if v.Score != nil {
		fmt.Fprintf(&b, "%s score %.3f\n", v.Score.Kind, v.Score.Value)
		data := pterm.TableData{{"Component", "Weight", "Value", "Contribution"}}
		for _, s := range v.Score.Signals {
			data = append(data, []string{string(s.Type), fmt.Sprintf("%.2f", s.Weight), fmt.Sprintf("%.3f", s.Value), fmt.Sprintf("%.3f", s.Contribution)})
		}
		t, err := table(data)
		if err != nil {
			return "", err
		}
		b.WriteString(t)
	}
	return b.String(), nil
}

func batchTable(r *model.BatchReport) (string, error) {
	var b strings.Builder

	data := pterm.TableData{{"Formula", "Valid", "Reason"}}
	for _, v := range r.Verdicts {
		data = append(data, []string{v.Formula, fmt.Sprint(v.Valid), string(v.Reason)})
	}
	t, err := table(data)
	if err != nil {
		return "", err
	}
	b.WriteString(t)

	for _, e := range r.Errors {
		b.WriteString(pterm.Error.Sprintfln("%s: %s", e.Formula, e.Error))
	}
	b.WriteString(pterm.Info.Sprintfln("%d formulas, %d valid, %d failed in %s", r.Total, r.ValidCount, r.Failures, r.Duration.Round(time.Millisecond)))
	return b.String(), nil
}

func spaceTable(s *model.SpaceResult) (string, error) {
	var b strings.Builder
	warnings(&b, s.Warnings)

	data := pterm.TableData{{"System", "Allowed"}}
	for _, sys := range s.Systems {
		data = append(data, []string{strings.Join(sys.Elements, "-"), fmt.Sprint(sys.Len())})
	}
	t, err := table(data)
	if err != nil {
		return "", err
	}
	b.WriteString(t)
	fmt.Fprintf(&b, "%d systems, %d allowed\n", len(s.Systems), s.Total())
	return b.String(), nil
}

func elementsTable(rows []ElementRow) (string, error) {
	data := pterm.TableData{{"Z", "Symbol", "Name", "Electronegativity", "Oxidation states"}}
	for _, row := range rows {
		data = append(data, []string{fmt.Sprint(row.Number), row.Symbol, row.Name, eneg(row.Electronegativity), states(row.OxidationStates)})
	}
	return table(data)
}
