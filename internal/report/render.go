// Package report renders screening results as terminal tables, JSON,
// YAML or Markdown.
package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/chemscreen/internal/model"
)

// Format selects an output encoding
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "md"
)

// ErrUnknownFormat is returned by ParseFormat
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts table, json, yaml/yml and md/markdown
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", errors.WithHint(errors.Wrapf(ErrUnknownFormat, "%q", s), "use table, json, yaml or md")
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatJSON
}

// ElementRow describes one element for the elements listing
type ElementRow struct {
	Number            int      `json:"number" yaml:"number"`
	Symbol            string   `json:"symbol" yaml:"symbol"`
	Name              string   `json:"name" yaml:"name"`
	Electronegativity *float64 `json:"electronegativity" yaml:"electronegativity"` // nil when unknown
	Valence           int      `json:"valence" yaml:"valence"`
	OxidationStates   []int    `json:"oxidation_states" yaml:"oxidation_states"`
}

// Renderer writes results to w in one format
type Renderer struct {
	w      io.Writer
	format Format
}

// New creates a renderer
func New(w io.Writer, format Format) *Renderer {
	return &Renderer{w: w, format: format}
}

// Filter renders a composition filter result
func (r *Renderer) Filter(res *model.FilterResult) error {
	switch r.format {
	case FormatTable:
		return r.write(filterTable(res))
	case FormatMarkdown:
		return r.write(filterMarkdown(res))
	}
	return r.encode(res)
}

// Verdict renders a single validity verdict
func (r *Renderer) Verdict(v *model.Verdict) error {
	switch r.format {
	case FormatTable:
		return r.write(verdictTable(v))
	case FormatMarkdown:
		return r.write(verdictMarkdown(v))
	}
	return r.encode(v)
}

// Batch renders a batch report
func (r *Renderer) Batch(b *model.BatchReport) error {
	switch r.format {
	case FormatTable:
		return r.write(batchTable(b))
	case FormatMarkdown:
		return r.write(batchMarkdown(b))
	}
	return r.encode(b)
}

// Space renders a chemical-space result
func (r *Renderer) Space(s *model.SpaceResult) error {
	switch r.format {
	case FormatTable:
		return r.write(spaceTable(s))
	case FormatMarkdown:
		return r.write(spaceMarkdown(s))
	}
	return r.encode(s)
}

// Elements renders element rows
func (r *Renderer) Elements(rows []ElementRow) error {
	switch r.format {
	case FormatTable:
		return r.write(elementsTable(rows))
	case FormatMarkdown:
		return r.write(elementsMarkdown(rows))
	}
	return r.encode(rows)
}

func (r *Renderer) write(s string, err error) error {
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.w, s)
	return errors.Wrap(err, "write output")
}

func (r *Renderer) encode(v interface{}) error {
	switch r.format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	default:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encode json")
	}
}

// WriteFile renders a batch report to path in the format implied by its
// extension
func WriteFile(path string, b *model.BatchReport) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "close %s", path)
		}
	}()

	return New(f, FormatFromPath(path)).Batch(b)
}
