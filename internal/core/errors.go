package core

// errors.go defines the validation error taxonomy and the mapping from
// technical errors to user-facing messages.
//
// Only loading can fail hard (ValidationError). Everything downstream
// degrades instead of failing: date and time parsing fall back to the raw
// input, enrichment failures are absorbed at the call site, and rows that
// match no category are silently omitted. Do not upgrade those paths to
// errors; availability of output is preferred over strictness.
//
// Error codes are grouped by category:
//
//	VAL001 - Missing columns: required columns absent from the export
//	VAL002 - Empty result: no upcoming programs after filtering
//	FILE001 - Invalid file: the upload could not be parsed
//	FILE002 - Empty file: the upload contained no rows
//	REQ001 - Invalid request body: malformed JSON payload
//	SES001 - Session not found: generation session expired or unknown
//	ERR000 - Unknown error: fallback when no pattern matches
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationKind discriminates the fatal loading failures.
type ValidationKind int

const (
	// MissingColumns: one or more required columns are absent.
	MissingColumns ValidationKind = iota
	// EmptyResult: no rows with status "upcoming" remain after filtering.
	EmptyResult
)

// ValidationError is fatal to loading. No partial table is ever returned
// alongside one.
type ValidationError struct {
	Kind    ValidationKind
	Columns []string // populated for MissingColumns
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingColumns:
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
	case EmptyResult:
		return "no upcoming programs found"
	default:
		return "validation failed"
	}
}

// UserMessage is a user-friendly error with a support reference code.
type UserMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// errorPattern maps an error substring to a UserMessage.
type errorPattern struct {
	patterns []string
	msg      UserMessage
}

var errorPatterns = []errorPattern{
	{
		patterns: []string{"missing required columns"},
		msg: UserMessage{
			Code:    "VAL001",
			Message: "The export is missing required columns.",
			Action:  "Download a fresh coaching export and upload it unchanged.",
		},
	},
	{
		patterns: []string{"no upcoming programs"},
		msg: UserMessage{
			Code:    "VAL002",
			Message: "No upcoming programs were found in the export.",
			Action:  "Check that the export was filtered to status Upcoming.",
		},
	},
	{
		patterns: []string{"parse csv", "parse workbook", "invalid file"},
		msg: UserMessage{
			Code:    "FILE001",
			Message: "The file could not be read.",
			Action:  "Upload the CSV or XLSX export exactly as downloaded.",
		},
	},
	{
		patterns: []string{"empty file"},
		msg: UserMessage{
			Code:    "FILE002",
			Message: "The uploaded file is empty.",
			Action:  "Upload an export that contains course rows.",
		},
	},
	{
		patterns: []string{"invalid request body"},
		msg: UserMessage{
			Code:    "REQ001",
			Message: "The request body could not be parsed.",
			Action:  "Check the JSON payload and try again.",
		},
	},
	{
		patterns: []string{"session not found"},
		msg: UserMessage{
			Code:    "SES001",
			Message: "This generation session no longer exists.",
			Action:  "Start a new session and upload the export again.",
		},
	},
}

// MapError translates a technical error into a UserMessage. The original
// error keeps its detail for logging; clients only ever see the mapped
// message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Code: "ERR000", Message: "An unexpected error occurred."}
	}

	// Validation errors carry their detail into the message: the operator
	// needs to know which columns were missing.
	var verr *ValidationError
	if errors.As(err, &verr) {
		switch verr.Kind {
		case MissingColumns:
			return UserMessage{
				Code:    "VAL001",
				Message: fmt.Sprintf("The export is missing required columns: %s.", strings.Join(verr.Columns, ", ")),
				Action:  "Download a fresh coaching export and upload it unchanged.",
			}
		case EmptyResult:
			return errorPatterns[1].msg
		}
	}

	lower := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		for _, p := range ep.patterns {
			if strings.Contains(lower, p) {
				return ep.msg
			}
		}
	}

	return UserMessage{
		Code:    "ERR000",
		Message: "An unexpected error occurred.",
		Action:  "Please try again or contact support with code ERR000.",
	}
}
