package csv

// Record is one data row keyed by header name.
// All records from one Reader share the header index.
type Record struct {
	Line   int // 1-based line in the source file where the row starts
	index  map[string]int
	values []string
}

// NewRecord builds a record from a header and a row. It is mostly useful for
// feeding the extractor without a file.
func NewRecord(line int, header, row []string) Record {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[CleanHeader(h)] = i
	}
	return Record{Line: line, index: index, values: row}
}

// Get returns the value of column. It reports false when the header has no
// such column or the row is too short to reach it.
func (r Record) Get(column string) (string, bool) {
	i, ok := r.index[column]
	if !ok || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// Len returns the number of cells in the row.
func (r Record) Len() int { return len(r.values) }

// Map returns the row as a header -> value map. Columns past the end of a
// short row are absent; cells past the end of the header are dropped.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.index))
	for name, i := range r.index {
		if i < len(r.values) {
			out[name] = r.values[i]
		}
	}
	return out
}
