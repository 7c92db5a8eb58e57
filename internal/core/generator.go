package core

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/encoding"

	"github.com/JonMunkholm/isogen/internal/csv"
	"github.com/JonMunkholm/isogen/internal/emit"
	"github.com/JonMunkholm/isogen/internal/isoerr"
)

// Options configures a Generator.
type Options struct {
	InputDir  string            // Directory holding the CSV inputs (default ".")
	OutputDir string            // Directory receiving generated files (default ".")
	Package   string            // Package clause of generated files
	Encoding  encoding.Encoding // Input charset; nil means UTF-8
	Logger    *slog.Logger      // Defaults to slog.Default()
}

// Generator runs dataset pipelines: read CSV, extract tables, emit Go source.
// Groups run one after another; the first error stops the run.
type Generator struct {
	opts   Options
	groups map[string][]DatasetDefinition
	order  []string
	logger *slog.Logger
}

// NewGenerator validates defs and opts and returns a Generator for them.
func NewGenerator(defs []DatasetDefinition, opts Options) (*Generator, error) {
	if !token.IsIdentifier(opts.Package) {
		return nil, &isoerr.DefinitionError{Reason: fmt.Sprintf("invalid package name %q", opts.Package)}
	}
	if len(defs) == 0 {
		return nil, &isoerr.DefinitionError{Reason: "no datasets defined"}
	}
	if opts.InputDir == "" {
		opts.InputDir = "."
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	g := &Generator{
		opts:   opts,
		groups: make(map[string][]DatasetDefinition),
		logger: opts.Logger,
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}

	keys := make(map[string]bool, len(defs))
	outputs := make(map[string]string)
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if keys[def.Info.Key] {
			return nil, &isoerr.DefinitionError{Dataset: def.Info.Key, Reason: "key defined twice"}
		}
		keys[def.Info.Key] = true

		if other, ok := outputs[def.Info.Output]; ok && other != def.Info.Group {
			return nil, &isoerr.DefinitionError{
				Dataset: def.Info.Key,
				Reason:  fmt.Sprintf("output %s is also written by group %s", def.Info.Output, other),
			}
		}
		outputs[def.Info.Output] = def.Info.Group

		if _, ok := g.groups[def.Info.Group]; !ok {
			g.order = append(g.order, def.Info.Group)
		}
		g.groups[def.Info.Group] = append(g.groups[def.Info.Group], def)
	}

	sort.Strings(g.order)
	for _, variants := range g.groups {
		sortDefinitions(variants)
	}

	return g, nil
}

// Groups returns the group names in the order Run processes them.
func (g *Generator) Groups() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Resolve picks the first variant of group whose input file exists.
// When none exists it returns an *isoerr.FileError for the preferred input
// that wraps fs.ErrNotExist.
func (g *Generator) Resolve(group string) (DatasetDefinition, error) {
	variants, ok := g.groups[group]
	if !ok {
		return DatasetDefinition{}, &isoerr.DefinitionError{Reason: fmt.Sprintf("unknown group %q", group)}
	}

	for _, def := range variants {
		path := g.inputPath(def)
		_, err := os.Stat(path)
		if err == nil {
			return def, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return DatasetDefinition{}, &isoerr.FileError{Op: "stat", Path: path, Err: err}
		}
		g.logger.Debug("dataset input not found", "dataset", def.Info.Key, "input", path)
	}

	return DatasetDefinition{}, &isoerr.FileError{Op: "open", Path: g.inputPath(variants[0]), Err: fs.ErrNotExist}
}

// Run generates every group. Optional groups without input are skipped.
func (g *Generator) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(g.order))

	for _, group := range g.order {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("operation cancelled before %s: %w", group, err)
		}

		def, err := g.Resolve(group)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && g.optional(group) {
				g.logger.Info("skipping optional dataset group", "group", group, "reason", err.Error())
				continue
			}
			return results, fmt.Errorf("%s: %w", group, err)
		}

		res, err := g.RunDataset(ctx, def)
		if err != nil {
			return results, fmt.Errorf("%s: %w", group, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// RunDataset runs one pipeline: open, check columns, extract, emit.
func (g *Generator) RunDataset(ctx context.Context, def DatasetDefinition) (Result, error) {
	input := g.inputPath(def)
	output := filepath.Join(g.opts.OutputDir, def.Info.Output)
	logger := g.logger.With("dataset", def.Info.Key, "input", input)

	r, err := csv.Open(input, csv.WithEncoding(g.opts.Encoding))
	if err != nil {
		return Result{}, err
	}
	defer r.Close()

	if err := CheckColumns(r.Header(), def.Tables); err != nil {
		return Result{}, withPath(err, input)
	}

	tables, err := Extract(ctx, r.Records(), def.Tables)
	if err != nil {
		return Result{}, withPath(err, input)
	}

	if err := emit.WriteFile(output, g.opts.Package, tables); err != nil {
		return Result{}, err
	}

	res := Result{
		Dataset: def.Info.Key,
		Group:   def.Info.Group,
		Input:   input,
		Output:  output,
		Rows:    r.Rows(),
		Bytes:   r.BytesRead(),
		Tables:  make([]TableCount, len(tables)),
	}
	for i, t := range tables {
		res.Tables[i] = TableCount{Name: t.Name, Entries: len(t.Entries)}
		logger.Debug("table extracted", "table", t.Name, "entries", len(t.Entries))
	}

	logger.Info("dataset generated", "output", output, "rows", res.Rows, "bytes", res.Bytes)
	return res, nil
}

func (g *Generator) inputPath(def DatasetDefinition) string {
	return filepath.Join(g.opts.InputDir, def.Info.Input)
}

// optional reports whether every variant of group may be absent.
func (g *Generator) optional(group string) bool {
	for _, def := range g.groups[group] {
		if !def.Info.Optional {
			return false
		}
	}
	return true
}

// withPath fills in the input path on key errors raised without one.
func withPath(err error, path string) error {
	switch e := err.(type) {
	case *isoerr.KeyError:
		if e.Path == "" {
			e.Path = path
		}
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			withPath(inner, path)
		}
	}
	return err
}
