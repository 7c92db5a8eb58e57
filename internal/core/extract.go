package core

// extract.go turns a record sequence into table entries in a single pass.
//
// Per table and per record:
//  1. Read the table's column (a short row is a KeyError, never a blank entry)
//  2. Normalize (lowercase unless the table sets a Normalizer)
//  3. Drop empty values when SkipEmpty is set
//  4. Drop repeats when Dedup is set; the first occurrence wins
//
// Seen-sets live for one Extract call only.

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/JonMunkholm/isogen/internal/csv"
	"github.com/JonMunkholm/isogen/internal/emit"
	"github.com/JonMunkholm/isogen/internal/isoerr"
)

// ContextCheckInterval is how often (in rows) Extract checks for cancellation.
var ContextCheckInterval = 100

// CheckColumns verifies that every column the tables read is in the header.
// Each missing column is reported as an *isoerr.KeyError.
func CheckColumns(header []string, specs []TableSpec) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var errs []error
	reported := make(map[string]bool)
	for _, spec := range specs {
		if present[spec.Column] || reported[spec.Column] {
			continue
		}
		reported[spec.Column] = true
		errs = append(errs, &isoerr.KeyError{Column: spec.Column})
	}

	return errors.Join(errs...)
}

// Extract reads every record and fills one table per TableSpec, in order.
// Entries keep the order of the rows they came from.
func Extract(ctx context.Context, records iter.Seq2[csv.Record, error], specs []TableSpec) ([]emit.Table, error) {
	tables := make([]emit.Table, len(specs))
	seen := make([]map[string]struct{}, len(specs))
	for i, spec := range specs {
		tables[i] = emit.Table{Name: spec.Name, Entries: []string{}}
		if spec.Dedup {
			seen[i] = make(map[string]struct{})
		}
	}

	n := 0
	for rec, err := range records {
		if err != nil {
			return nil, err
		}

		if n%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("operation cancelled at line %d: %w", rec.Line, err)
			}
		}
		n++

		for i, spec := range specs {
			raw, ok := rec.Get(spec.Column)
			if !ok {
				return nil, &isoerr.KeyError{Column: spec.Column, Line: rec.Line}
			}

			v := spec.normalize(raw)
			if v == "" && spec.SkipEmpty {
				continue
			}

			if seen[i] != nil {
				if _, dup := seen[i][v]; dup {
					continue
				}
				seen[i][v] = struct{}{}
			}

			tables[i].Entries = append(tables[i].Entries, v)
		}
	}

	return tables, nil
}
