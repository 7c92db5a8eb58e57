// Package core turns CSV reference datasets into generated lookup tables.
// This package has no CLI dependencies and can be driven from tests directly.
package core

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/isogen/internal/isoerr"
)

// Normalizer transforms a raw cell before it becomes a table entry.
type Normalizer func(string) string

// Normalizers available by name in dataset definition files.
var normalizers = map[string]Normalizer{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"none":  func(s string) string { return s },
}

// NormalizerByName returns the named normalizer. The empty name is "lower".
func NormalizerByName(name string) (Normalizer, error) {
	if name == "" {
		name = "lower"
	}
	n, ok := normalizers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown normalizer %q (want lower, upper or none)", name)
	}
	return n, nil
}

// TableSpec describes one generated table and the column it is filled from.
type TableSpec struct {
	Name       string     // Go identifier of the generated map: "CountryAlpha2"
	Column     string     // CSV header name (must match exactly)
	SkipEmpty  bool       // Drop values that normalize to ""
	Dedup      bool       // Keep only the first occurrence of each value
	Normalizer Normalizer // Defaults to strings.ToLower
}

func (s TableSpec) normalize(v string) string {
	if s.Normalizer == nil {
		return strings.ToLower(v)
	}
	return s.Normalizer(v)
}

// DatasetInfo identifies a dataset and where it is read from and written to.
type DatasetInfo struct {
	Key      string // Unique identifier: "countries_datahub"
	Group    string // Datasets producing the same tables: "countries"
	Label    string // Display name: "ISO 3166-1 (datahub country-codes)"
	Input    string // CSV file name, relative to the input directory
	Output   string // Go file name, relative to the output directory
	Priority int    // Lower is tried first within a group
	Optional bool   // The group is skipped when no input exists
}

// DatasetDefinition contains everything needed to generate one file.
type DatasetDefinition struct {
	Info   DatasetInfo
	Tables []TableSpec
}

// Columns returns the CSV columns the dataset reads, in table order.
func (d DatasetDefinition) Columns() []string {
	cols := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		cols[i] = t.Column
	}
	return cols
}

// Validate reports the first problem that would stop the dataset from
// producing a compilable file.
func (d DatasetDefinition) Validate() error {
	fail := func(format string, args ...any) error {
		return &isoerr.DefinitionError{Dataset: d.Info.Key, Reason: fmt.Sprintf(format, args...)}
	}

	switch {
	case d.Info.Key == "":
		return fail("key is required")
	case d.Info.Group == "":
		return fail("group is required")
	case d.Info.Input == "":
		return fail("input is required")
	case d.Info.Output == "":
		return fail("output is required")
	case filepath.Ext(d.Info.Output) != ".go":
		return fail("output %q must be a .go file", d.Info.Output)
	case len(d.Tables) == 0:
		return fail("at least one table is required")
	}

	names := make(map[string]bool, len(d.Tables))
	for _, t := range d.Tables {
		if !token.IsIdentifier(t.Name) || !token.IsExported(t.Name) {
			return fail("table name %q is not an exported identifier", t.Name)
		}
		if names[t.Name] {
			return fail("table %s declared twice", t.Name)
		}
		names[t.Name] = true

		if t.Column == "" {
			return fail("table %s has no column", t.Name)
		}
	}

	return nil
}

// TableCount is the number of entries written to one table.
type TableCount struct {
	Name    string
	Entries int
}

// Result summarizes one generated file.
type Result struct {
	Dataset string
	Group   string
	Input   string
	Output  string
	Rows    int   // Data rows read
	Bytes   int64 // Raw input bytes read
	Tables  []TableCount
}
