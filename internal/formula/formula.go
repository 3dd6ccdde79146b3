// Package formula parses chemical formulas such as "Fe3O4", "Ca(CO3)" or
// "Mg0.5Zn0.5O" into ordered element amounts.
package formula

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"

	"github.com/ppiankov/chemscreen/internal/charge"
)

// ErrInvalidFormula is returned for empty or malformed formulas
var ErrInvalidFormula = errors.New("invalid formula")

// maxDenominator bounds the search for an integer multiple of fractional
// amounts
const maxDenominator = 1000

// Composition is an ordered element -> amount mapping
type Composition struct {
	symbols []string
	amounts map[string]float64
}

// New builds a composition from parallel symbol and amount slices
func New(symbols []string, amounts []float64) (*Composition, error) {
	if len(symbols) != len(amounts) {
		return nil, errors.Wrapf(ErrInvalidFormula, "%d symbols for %d amounts", len(symbols), len(amounts))
	}
	c := &Composition{amounts: make(map[string]float64, len(symbols))}
	for i, s := range symbols {
		if amounts[i] <= 0 {
			return nil, errors.Wrapf(ErrInvalidFormula, "non-positive amount for %s", s)
		}
		c.add(s, amounts[i])
	}
	if len(c.symbols) == 0 {
		return nil, errors.Wrap(ErrInvalidFormula, "empty composition")
	}
	return c, nil
}

func (c *Composition) add(symbol string, amount float64) {
	if _, ok := c.amounts[symbol]; !ok {
		c.symbols = append(c.symbols, symbol)
	}
	c.amounts[symbol] += amount
}

// Symbols returns the distinct elements in first-appearance order
func (c *Composition) Symbols() []string {
	out := make([]string, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// Amount returns the amount of symbol (0 if absent)
func (c *Composition) Amount(symbol string) float64 {
	return c.amounts[symbol]
}

// Amounts returns amounts aligned with Symbols
func (c *Composition) Amounts() []float64 {
	out := make([]float64, len(c.symbols))
	for i, s := range c.symbols {
		out[i] = c.amounts[s]
	}
	return out
}

// Total returns the summed amount of all elements
func (c *Composition) Total() float64 {
	total := 0.0
	for _, s := range c.symbols {
		total += c.amounts[s]
	}
	return total
}

// Len returns the number of distinct elements
func (c *Composition) Len() int {
	return len(c.symbols)
}

// IntegerCounts scales the amounts to the smallest whole-number ratio,
// aligned with Symbols.
func (c *Composition) IntegerCounts() ([]int, error) {
	amounts := c.Amounts()
	for m := 1; m <= maxDenominator; m++ {
		counts := make([]int, len(amounts))
		whole := true
		for i, a := range amounts {
			scaled := a * float64(m)
			r := math.Round(scaled)
			if math.Abs(scaled-r) > 1e-6*math.Max(1, scaled) {
				whole = false
				break
			}
			counts[i] = int(r)
		}
		if !whole {
			continue
		}
		g := charge.GCD(counts...)
		if g > 1 {
			for i := range counts {
				counts[i] /= g
			}
		}
		return counts, nil
	}
	return nil, errors.Wrapf(ErrInvalidFormula, "amounts %v have no whole-number ratio", amounts)
}

// String renders the composition with amounts as given
func (c *Composition) String() string {
	var b strings.Builder
	for _, s := range c.symbols {
		b.WriteString(s)
		b.WriteString(formatAmount(c.amounts[s]))
	}
	return b.String()
}

// Reduced renders the smallest whole-number formula, falling back to
// String for amounts without one
func (c *Composition) Reduced() string {
	counts, err := c.IntegerCounts()
	if err != nil {
		return c.String()
	}
	return FromRatio(c.symbols, counts)
}

// FromRatio renders symbols with integer multipliers, omitting ones
func FromRatio(symbols []string, ratio []int) string {
	var b strings.Builder
	for i, s := range symbols {
		b.WriteString(s)
		if i < len(ratio) && ratio[i] != 1 {
			b.WriteString(strconv.Itoa(ratio[i]))
		}
	}
	return b.String()
}

func formatAmount(a float64) string {
	if a == 1 {
		return ""
	}
	if a == math.Trunc(a) {
		return strconv.FormatInt(int64(a), 10)
	}
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// Parse reads a formula. Groups in (), [] or {} may nest and carry a
// multiplier; repeated elements are summed.
func Parse(s string) (*Composition, error) {
	src := strings.TrimSpace(s)
	if src == "" {
		return nil, errors.Wrap(ErrInvalidFormula, "empty formula")
	}

	p := &parser{src: []rune(src)}
	terms, err := p.group(0)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", s)
	}
	if p.pos < len(p.src) {
		return nil, errors.Wrapf(ErrInvalidFormula, "parse %q: unexpected %q at %d", s, string(p.src[p.pos]), p.pos)
	}

	c := &Composition{amounts: make(map[string]float64)}
	for _, t := range terms {
		c.add(t.symbol, t.amount)
	}
	if len(c.symbols) == 0 {
		return nil, errors.Wrapf(ErrInvalidFormula, "parse %q: no elements", s)
	}
	return c, nil
}

// MustParse is Parse for literals known to be valid
func MustParse(s string) *Composition {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

type term struct {
	symbol string
	amount float64
}

type parser struct {
	src []rune
	pos int
}

var closers = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// group parses terms until the closing rune (0 for end of input)
func (p *parser) group(closing rune) ([]term, error) {
	var terms []term
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			if closing != 0 {
				return nil, errors.Wrapf(ErrInvalidFormula, "missing %q", string(closing))
			}
			return terms, nil
		}

		r := p.src[p.pos]
		switch {
		case r == closing:
			return terms, nil

		case closers[r] != 0:
			p.pos++
			inner, err := p.group(closers[r])
			if err != nil {
				return nil, err
			}
			p.pos++ // closing rune
			mult, err := p.number()
			if err != nil {
				return nil, err
			}
			if len(inner) == 0 {
				return nil, errors.Wrap(ErrInvalidFormula, "empty group")
			}
			for _, t := range inner {
				terms = append(terms, term{symbol: t.symbol, amount: t.amount * mult})
			}

		case unicode.IsUpper(r):
			start := p.pos
			p.pos++
			for p.pos < len(p.src) && unicode.IsLower(p.src[p.pos]) {
				p.pos++
			}
			symbol := string(p.src[start:p.pos])
			amount, err := p.number()
			if err != nil {
				return nil, err
			}
			terms = append(terms, term{symbol: symbol, amount: amount})

		default:
			return nil, errors.Wrapf(ErrInvalidFormula, "unexpected %q at %d", string(r), p.pos)
		}
	}
}

// number reads an optional positive amount, defaulting to 1
func (p *parser) number() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && (unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 1, nil
	}
	text := string(p.src[start:p.pos])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidFormula, "bad amount %q", text)
	}
	if v <= 0 {
		return 0, errors.Wrapf(ErrInvalidFormula, "non-positive amount %q", text)
	}
	return v, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}
