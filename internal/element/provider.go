package element

import (
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	gocache "github.com/patrickmn/go-cache"
)

// Provider serves read-only element data. Built-in oxidation tables are
// parsed on first use and custom files are memoised per path, so a single
// Provider can be shared by concurrent screening workers.
type Provider struct {
	elements map[string]Element
	ordered  []string

	builtin map[string]*lazyTable

	custom *gocache.Cache
}

type lazyTable struct {
	once  sync.Once
	table oxidationTable
	err   error
}

// Option configures a Provider
type Option func(*providerOptions)

type providerOptions struct {
	customTTL time.Duration
}

// WithCustomTableTTL sets how long a parsed custom oxidation-state file is
// reused before it is read again. Zero keeps it for the provider's lifetime.
func WithCustomTableTTL(ttl time.Duration) Option {
	return func(o *providerOptions) {
		o.customTTL = ttl
	}
}

// New builds a provider from the embedded element table
func New(opts ...Option) (*Provider, error) {
	o := providerOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := dataFS.Open("data/elements.txt")
	if err != nil {
		return nil, errors.Wrap(err, "open element table")
	}
	defer func() { _ = f.Close() }()

	elements, ordered, err := parseElements(f)
	if err != nil {
		return nil, err
	}

	ttl := o.customTTL
	cleanup := 10 * time.Minute
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}

	builtin := make(map[string]*lazyTable, len(builtinFiles))
	for name := range builtinFiles {
		builtin[name] = &lazyTable{}
	}

	return &Provider{
		elements: elements,
		ordered:  ordered,
		builtin:  builtin,
		custom:   gocache.New(ttl, cleanup),
	}, nil
}

// MustNew is New for package-level defaults and tests
func MustNew(opts ...Option) *Provider {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Element returns the element record for symbol
func (p *Provider) Element(symbol string) (Element, error) {
	el, ok := p.elements[symbol]
	if !ok {
		return Element{}, errors.Wrapf(ErrUnknownElement, "%q", symbol)
	}
	return el, nil
}

// Known reports whether symbol is on the periodic table
func (p *Provider) Known(symbol string) bool {
	_, ok := p.elements[symbol]
	return ok
}

// Electronegativity returns the Pauling electronegativity, or Unknown
func (p *Provider) Electronegativity(symbol string) float64 {
	el, ok := p.elements[symbol]
	if !ok {
		return Unknown
	}
	return el.Electronegativity
}

// Electronegativities returns the values for symbols, index-aligned
func (p *Provider) Electronegativities(symbols []string) []float64 {
	out := make([]float64, len(symbols))
	for i, s := range symbols {
		out[i] = p.Electronegativity(s)
	}
	return out
}

// OxidationStates returns the candidate states for symbol in src.
// An element missing from the table has no known states and yields an
// empty slice; the returned slice is a copy.
func (p *Provider) OxidationStates(symbol string, src Source) ([]int, error) {
	if !p.Known(symbol) {
		return nil, errors.Wrapf(ErrUnknownElement, "%q", symbol)
	}

	table, err := p.table(src)
	if err != nil {
		return nil, err
	}

	states := table[symbol]
	out := make([]int, len(states))
	copy(out, states)
	return out, nil
}

// OrderedElements returns symbols with proton numbers from..to inclusive
func (p *Provider) OrderedElements(from, to int) []string {
	if from < 1 {
		from = 1
	}
	if to > len(p.ordered) {
		to = len(p.ordered)
	}
	if from > to {
		return nil
	}
	out := make([]string, 0, to-from+1)
	out = append(out, p.ordered[from-1:to]...)
	return out
}

func (p *Provider) table(src Source) (oxidationTable, error) {
	if src.IsZero() {
		src = DefaultSource
	}
	if src.IsCustom() {
		return p.customTable(src.Path())
	}

	lt, ok := p.builtin[src.Name()]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSource, "%q", src.Name())
	}

	lt.once.Do(func() {
		f, err := dataFS.Open(builtinFiles[src.Name()])
		if err != nil {
			lt.err = errors.Wrapf(err, "open %s table", src.Name())
			return
		}
		defer func() { _ = f.Close() }()
		lt.table, lt.err = parseOxidationTable(f)
	})
	return lt.table, lt.err
}

func (p *Provider) customTable(path string) (oxidationTable, error) {
	if v, found := p.custom.Get(path); found {
		return v.(oxidationTable), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "open oxidation state file %s", path),
			"check the --source path",
		)
	}
	defer func() { _ = f.Close() }()

	table, err := parseOxidationTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "custom source %s", path)
	}

	p.custom.Set(path, table, gocache.DefaultExpiration)
	return table, nil
}
