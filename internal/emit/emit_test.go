package emit

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/JonMunkholm/isogen/internal/isoerr"
)

// parseTables parses generated source and returns each var's keys in order.
func parseTables(t *testing.T, src []byte) (string, map[string][]string, []string) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "gen.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}

	tables := make(map[string][]string)
	var order []string
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			name := vs.Names[0].Name
			order = append(order, name)
			lit := vs.Values[0].(*ast.CompositeLit)
			keys := []string{}
			for _, elt := range lit.Elts {
				kv := elt.(*ast.KeyValueExpr)
				k, err := strconv.Unquote(kv.Key.(*ast.BasicLit).Value)
				if err != nil {
					t.Fatalf("unquote %s: %v", kv.Key.(*ast.BasicLit).Value, err)
				}
				keys = append(keys, k)
			}
			tables[name] = keys
		}
	}
	return file.Name.Name, tables, order
}

func TestRender_Layout(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "iso", []Table{
		{Name: "CountryAlpha2", Entries: []string{"us", "fr"}},
		{Name: "CountryAlpha3", Entries: []string{"usa", "fra"}},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "// "+Header+"\n\npackage iso\n") {
		t.Errorf("output should start with header and package clause, got:\n%s", out)
	}

	for _, want := range []string{
		"var CountryAlpha2 = map[string]struct{}{\n",
		"\t\"us\": {},\n\t\"fr\": {},\n}\n",
		"}\n\nvar CountryAlpha3 = map[string]struct{}{\n",
		"\t\"usa\": {},\n\t\"fra\": {},\n}\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	pkg, tables, order := parseTables(t, buf.Bytes())
	if pkg != "iso" {
		t.Errorf("package = %q, want %q", pkg, "iso")
	}
	if len(order) != 2 || order[0] != "CountryAlpha2" || order[1] != "CountryAlpha3" {
		t.Errorf("declaration order = %v", order)
	}
	if got := tables["CountryAlpha2"]; len(got) != 2 || got[0] != "us" || got[1] != "fr" {
		t.Errorf("CountryAlpha2 = %v, want [us fr]", got)
	}
}

func TestRender_PreservesInsertionOrder(t *testing.T) {
	entries := []string{"usd", "eur", "aud", "chf", "afn"}

	var buf bytes.Buffer
	if err := Render(&buf, "iso", []Table{{Name: "CurrencyAlpha", Entries: entries}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	_, tables, _ := parseTables(t, buf.Bytes())
	got := tables["CurrencyAlpha"]
	if len(got) != len(entries) {
		t.Fatalf("CurrencyAlpha has %d entries, want %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], entries[i])
		}
	}
}

func TestRender_EscapesKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "iso", []Table{{Name: "Odd", Entries: []string{`a"b`, `c\d`}}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	_, tables, _ := parseTables(t, buf.Bytes())
	if got := tables["Odd"]; len(got) != 2 || got[0] != `a"b` || got[1] != `c\d` {
		t.Errorf("Odd = %q", got)
	}
}

func TestRender_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "iso", []Table{{Name: "CurrencyAlpha"}}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	_, tables, _ := parseTables(t, buf.Bytes())
	if got, ok := tables["CurrencyAlpha"]; !ok || len(got) != 0 {
		t.Errorf("CurrencyAlpha = %v, %v, want empty table", got, ok)
	}
}

func TestRender_Deterministic(t *testing.T) {
	tables := []Table{
		{Name: "CountryAlpha2", Entries: []string{"us", "de", "jp"}},
		{Name: "CountryAlpha3", Entries: []string{"usa", "deu", "jpn"}},
	}

	var first, second bytes.Buffer
	if err := Render(&first, "iso", tables); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := Render(&second, "iso", tables); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two renders of the same tables differ")
	}
}

func TestRender_InvalidNames(t *testing.T) {
	tests := []struct {
		name   string
		pkg    string
		tables []Table
	}{
		{"bad package", "my-pkg", []Table{{Name: "CurrencyAlpha"}}},
		{"empty package", "", nil},
		{"unexported table", "iso", []Table{{Name: "currencyAlpha"}}},
		{"not an identifier", "iso", []Table{{Name: "Currency Alpha"}}},
		{"duplicate table", "iso", []Table{{Name: "CurrencyAlpha"}, {Name: "CurrencyAlpha"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Render(&bytes.Buffer{}, tt.pkg, tt.tables)

			var defErr *isoerr.DefinitionError
			if !errors.As(err, &defErr) {
				t.Errorf("Render() error = %v, want *isoerr.DefinitionError", err)
			}
		})
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencies.go")
	if err := os.WriteFile(path, []byte("stale content that is much longer than the generated file will be ......................................................................"), 0o644); err != nil {
		t.Fatal(err)
	}

	tables := []Table{{Name: "CurrencyAlpha", Entries: []string{"usd", "eur"}}}
	if err := WriteFile(path, "iso", tables); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "stale") {
		t.Error("WriteFile() kept old content")
	}

	var want bytes.Buffer
	if err := Render(&want, "iso", tables); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("file content differs from Render output:\n%s", got)
	}
}

func TestWriteFile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "countries.go")

	err := WriteFile(path, "iso", []Table{{Name: "CountryAlpha2", Entries: []string{"us"}}})

	var fileErr *isoerr.FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("WriteFile() error = %v, want *isoerr.FileError", err)
	}
	if fileErr.Op != "create" {
		t.Errorf("Op = %q, want %q", fileErr.Op, "create")
	}
}

func TestWriteFile_InvalidTableLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.go")
	if err := os.WriteFile(path, []byte("package iso\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, "iso", []Table{{Name: "lower"}}); err == nil {
		t.Fatal("WriteFile() expected error for unexported table name")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "package iso\n" {
		t.Errorf("file changed to %q after failed render", got)
	}
}
