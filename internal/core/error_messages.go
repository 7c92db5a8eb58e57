package core

// error_messages.go maps run failures to messages with codes, so the entry
// point can say what went wrong and what to do about it.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Input not found: A CSV input could not be opened
//	          Action: Place the dataset CSV in the input directory
//
//	FILE002 - Output not writable: A generated file could not be written
//	          Action: Check that the output directory exists and is writable
//
// # CSV Errors (CSV001-CSV099)
//
//	CSV001 - Invalid CSV: The input is not well-formed CSV
//	         Action: Fix the quoting at the reported line and regenerate
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Column not found: A column the dataset reads is missing
//	         Action: Check the header names or use the matching dataset variant
//
// # Definition Errors (DEF001-DEF099)
//
//	DEF001 - Invalid definition: A dataset definition cannot produce valid Go
//	         Action: Fix the definitions file or configuration
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - Cancelled: The run was interrupted
//	         Action: Run the generator again
//
// # Default Error (ERR000)
//
// Fallback when no typed error is found in the chain.
//
// A failed run may leave partial output behind. Treat its generated files as
// invalid and regenerate after fixing the cause.

import (
	"context"
	"errors"

	"github.com/JonMunkholm/isogen/internal/isoerr"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for reference
}

var (
	msgInputNotFound = UserMessage{
		Message: "A dataset input could not be opened",
		Action:  "Place the dataset CSV in the input directory",
		Code:    "FILE001",
	}
	msgOutputNotWritable = UserMessage{
		Message: "A generated file could not be written",
		Action:  "Check that the output directory exists and is writable",
		Code:    "FILE002",
	}
	msgInvalidCSV = UserMessage{
		Message: "The input is not well-formed CSV",
		Action:  "Fix the quoting at the reported line and regenerate",
		Code:    "CSV001",
	}
	msgColumnNotFound = UserMessage{
		Message: "A column the dataset reads is missing",
		Action:  "Check the header names or use the matching dataset variant",
		Code:    "COL001",
	}
	msgInvalidDefinition = UserMessage{
		Message: "A dataset definition cannot produce valid Go source",
		Action:  "Fix the definitions file or configuration",
		Code:    "DEF001",
	}
	msgCancelled = UserMessage{
		Message: "The run was interrupted",
		Action:  "Run the generator again",
		Code:    "RUN001",
	}
	msgUnknown = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Check the log for the underlying error",
		Code:    "ERR000",
	}
)

// MapError converts an error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		keyErr   *isoerr.KeyError
		parseErr *isoerr.ParseError
		fileErr  *isoerr.FileError
		defErr   *isoerr.DefinitionError
	)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return msgCancelled
	case errors.As(err, &keyErr):
		return msgColumnNotFound
	case errors.As(err, &parseErr):
		return msgInvalidCSV
	case errors.As(err, &defErr):
		return msgInvalidDefinition
	case errors.As(err, &fileErr):
		switch fileErr.Op {
		case "create", "write", "close":
			return msgOutputNotWritable
		default:
			return msgInputNotFound
		}
	}

	return msgUnknown
}
