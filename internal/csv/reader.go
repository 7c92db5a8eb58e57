// Package csv reads header-first CSV datasets as a lazy sequence of records.
//
// Parsing is delegated to encoding/csv with strict quoting: a quoted field may
// hold commas, quotes and newlines, and malformed quoting is reported as an
// *isoerr.ParseError. Rows may be shorter or longer than the header.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/isogen/internal/isoerr"
)

// Reader yields the data rows of one CSV file.
// The first row is consumed by Open and becomes the header.
type Reader struct {
	path   string
	file   *os.File
	count  *countingReader
	cr     *stdcsv.Reader
	header []string
	index  map[string]int
	rows   int
}

type options struct {
	enc encoding.Encoding
}

// Option configures Open.
type Option func(*options)

// WithEncoding decodes the input from enc to UTF-8 before parsing.
// A nil encoding means the input is already UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.enc = enc
	}
}

// LookupCharset returns the decoder for a charset name.
// UTF-8 (and the empty name) return a nil encoding: no decoding is needed.
func LookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
}

// Open opens path and reads its header row.
// The caller must Close the reader.
func Open(path string, opts ...Option) (*Reader, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &isoerr.FileError{Op: "open", Path: path, Err: err}
	}

	count := &countingReader{r: f}
	src := skipBOM(count)
	if o.enc != nil {
		src = transform.NewReader(src, o.enc.NewDecoder())
	}

	cr := stdcsv.NewReader(newUTF8Sanitizer(src))
	cr.FieldsPerRecord = -1

	r := &Reader{path: path, file: f, count: count, cr: cr}

	header, err := cr.Read()
	if err != nil {
		f.Close()
		if errors.Is(err, io.EOF) {
			return nil, &isoerr.ParseError{Path: path, Err: errors.New("empty file: no header row")}
		}
		return nil, r.wrapErr(err)
	}

	r.header = make([]string, len(header))
	r.index = make(map[string]int, len(header))
	for i, h := range header {
		key := CleanHeader(h)
		r.header[i] = key
		r.index[key] = i
	}

	return r, nil
}

// Path returns the file the reader was opened on.
func (r *Reader) Path() string { return r.path }

// Header returns the cleaned header names in file order.
func (r *Reader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// HasColumn reports whether name is one of the header columns.
func (r *Reader) HasColumn(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Rows returns the number of data rows read so far.
func (r *Reader) Rows() int { return r.rows }

// BytesRead returns the number of raw bytes read from the file so far.
func (r *Reader) BytesRead() int64 { return r.count.n }

// Records returns the remaining rows as a lazy sequence.
// On a read or parse error the sequence yields the error once and stops.
func (r *Reader) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			row, err := r.cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Record{}, r.wrapErr(err))
				return
			}

			r.rows++
			line, _ := r.cr.FieldPos(0)
			if !yield(Record{Line: line, index: r.index, values: row}, nil) {
				return
			}
		}
	}
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if err := r.file.Close(); err != nil {
		return &isoerr.FileError{Op: "close", Path: r.path, Err: err}
	}
	return nil
}

// wrapErr classifies an error returned by encoding/csv.
func (r *Reader) wrapErr(err error) error {
	var pe *stdcsv.ParseError
	if errors.As(err, &pe) {
		return &isoerr.ParseError{Path: r.path, Line: pe.Line, Err: pe.Err}
	}
	return &isoerr.FileError{Op: "read", Path: r.path, Err: err}
}

// CleanHeader normalizes a header cell so it can be looked up by its plain
// column name. It trims whitespace and a stray BOM, and unwraps Excel's
// ="..." text-formula form.
func CleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	if strings.HasPrefix(h, `="`) && strings.HasSuffix(h, `"`) && len(h) >= 3 {
		h = h[2 : len(h)-1]
	}
	return h
}
