// Package emit renders lookup tables as Go source.
//
// Each table becomes a package-level presence-only map:
//
//	var CurrencyAlpha = map[string]struct{}{
//		"usd": {},
//		"eur": {},
//	}
//
// Entries keep the order they were given in, so regenerating from unchanged
// input produces byte-identical files.
package emit

import (
	"bytes"
	"fmt"
	"go/token"
	"io"
	"os"

	"github.com/dave/jennifer/jen"

	"github.com/JonMunkholm/isogen/internal/isoerr"
)

// Header is the comment written above the package clause of every file.
const Header = "Code generated by isogen. DO NOT EDIT."

// Table is one named set of lookup keys.
type Table struct {
	Name    string
	Entries []string
}

// Render writes a Go file declaring tables in package pkg to w.
func Render(w io.Writer, pkg string, tables []Table) error {
	f, err := build(pkg, tables)
	if err != nil {
		return err
	}
	if err := f.Render(w); err != nil {
		return fmt.Errorf("render %s: %w", pkg, err)
	}
	return nil
}

// WriteFile renders tables and replaces the file at path with the result.
// Nothing is written when rendering fails.
func WriteFile(path, pkg string, tables []Table) (err error) {
	var buf bytes.Buffer
	if err := Render(&buf, pkg, tables); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &isoerr.FileError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &isoerr.FileError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return &isoerr.FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func build(pkg string, tables []Table) (*jen.File, error) {
	if !token.IsIdentifier(pkg) {
		return nil, &isoerr.DefinitionError{Reason: fmt.Sprintf("invalid package name %q", pkg)}
	}

	f := jen.NewFile(pkg)
	f.HeaderComment(Header)

	declared := make(map[string]bool, len(tables))
	for _, t := range tables {
		if !token.IsIdentifier(t.Name) || !token.IsExported(t.Name) {
			return nil, &isoerr.DefinitionError{Reason: fmt.Sprintf("table name %q is not an exported identifier", t.Name)}
		}
		if declared[t.Name] {
			return nil, &isoerr.DefinitionError{Reason: fmt.Sprintf("table %s declared twice", t.Name)}
		}
		declared[t.Name] = true

		// gofmt only separates consecutive var declarations with a single
		// newline.
		if len(declared) > 1 {
			f.Line()
		}
		f.Var().Id(t.Name).Op("=").Map(jen.String()).Struct().ValuesFunc(entries(t.Entries))
	}

	return f, nil
}

// entries lays out one key per line. jen.Dict would sort the keys, which
// loses the input order.
func entries(keys []string) func(*jen.Group) {
	return func(g *jen.Group) {
		for _, k := range keys {
			g.Line().Lit(k).Op(":").Values()
		}
		if len(keys) > 0 {
			g.Line()
		}
	}
}
