// Package isoerr defines the error types shared by the reader, the extractor
// and the emitter.
//
// Every failure in a generation run is fatal. The types exist so the entry
// point can tell the user what kind of problem stopped the run:
//
//   - FileError: an input could not be opened or an output could not be written
//   - ParseError: the CSV structure is malformed
//   - KeyError: a column referenced by a dataset is absent
//   - DefinitionError: a dataset definition or emitter input is invalid
//
// Inspect them with errors.As; all of them unwrap to their cause.
package isoerr

import "fmt"

// FileError reports a failed file system operation.
type FileError struct {
	Op   string // "open", "create", "write", "close", "stat"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ParseError reports malformed CSV input.
type ParseError struct {
	Path string
	Line int // 1-based; 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid csv %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("invalid csv %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// KeyError reports a column that a dataset needs but the input does not have.
// Line is 0 when the column is missing from the header itself, otherwise it is
// the line of a row too short to hold the column.
type KeyError struct {
	Path   string
	Column string
	Line   int
}

func (e *KeyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("column not found: %q missing from %s line %d", e.Column, e.Path, e.Line)
	}
	return fmt.Sprintf("column not found: %q missing from %s header", e.Column, e.Path)
}

// DefinitionError reports an invalid dataset definition or emitter input.
type DefinitionError struct {
	Dataset string
	Reason  string
}

func (e *DefinitionError) Error() string {
	if e.Dataset == "" {
		return "invalid definition: " + e.Reason
	}
	return fmt.Sprintf("invalid definition %s: %s", e.Dataset, e.Reason)
}
