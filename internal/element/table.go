package element

import (
	"bufio"
	"embed"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

//go:embed data/*.txt
var dataFS embed.FS

var builtinFiles = map[string]string{
	"smact14":     "data/oxidation_states_smact14.txt",
	"icsd16":      "data/oxidation_states_icsd16.txt",
	"icsd24":      "data/oxidation_states_icsd24.txt",
	"pymatgen_sp": "data/oxidation_states_sp.txt",
	"wiki":        "data/oxidation_states_wiki.txt",
}

// oxidationTable maps element symbols to sorted, de-duplicated states
type oxidationTable map[string][]int

// dataRows yields the whitespace-split fields of every non-comment line
func dataRows(r io.Reader, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(n, strings.Fields(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// parseOxidationTable reads "SYMBOL state1 state2 ..." lines.
// A symbol listed without states is kept with an empty list.
func parseOxidationTable(r io.Reader) (oxidationTable, error) {
	table := make(oxidationTable)
	err := dataRows(r, func(line int, fields []string) error {
		symbol := fields[0]
		states := make([]int, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := strconv.Atoi(strings.TrimPrefix(f, "+"))
			if err != nil {
				return errors.Wrapf(err, "line %d: oxidation state %q for %s", line, f, symbol)
			}
			states = append(states, v)
		}
		// a symbol may be listed on several lines
		merged := append(table[symbol], states...)
		slices.Sort(merged)
		table[symbol] = slices.Compact(merged)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse oxidation states")
	}
	return table, nil
}

// parseElements reads the embedded "Z Symbol Name EN Valence" table
func parseElements(r io.Reader) (map[string]Element, []string, error) {
	bySymbol := make(map[string]Element)
	var ordered []string

	err := dataRows(r, func(line int, fields []string) error {
		if len(fields) != 5 {
			return errors.Newf("line %d: expected 5 fields, got %d", line, len(fields))
		}
		z, err := strconv.Atoi(fields[0])
		if err != nil {
			return errors.Wrapf(err, "line %d: atomic number", line)
		}
		eneg := Unknown
		if fields[3] != "-" {
			eneg, err = strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return errors.Wrapf(err, "line %d: electronegativity", line)
			}
		}
		valence, err := strconv.Atoi(fields[4])
		if err != nil {
			return errors.Wrapf(err, "line %d: valence", line)
		}

		el := Element{
			Number:            z,
			Symbol:            fields[1],
			Name:              fields[2],
			Electronegativity: eneg,
			Valence:           valence,
		}
		bySymbol[el.Symbol] = el
		ordered = append(ordered, el.Symbol)
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse element table")
	}
	return bySymbol, ordered, nil
}
