package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, "ERR000"},
		{"missing columns", &ValidationError{Kind: MissingColumns, Columns: []string{"Name"}}, "VAL001"},
		{"empty result", &ValidationError{Kind: EmptyResult}, "VAL002"},
		{"wrapped validation error", fmt.Errorf("load: %w", &ValidationError{Kind: EmptyResult}), "VAL002"},
		{"parse failure", errors.New("parse CSV: record on line 2"), "FILE001"},
		{"workbook failure", errors.New("parse workbook: zip: not a valid zip file"), "FILE001"},
		{"empty file", errors.New("empty file"), "FILE002"},
		{"session missing", errors.New("session not found: abc"), "SES001"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" {
				t.Error("mapped message must not be empty")
			}
		})
	}
}

func TestMapErrorMissingColumnsDetail(t *testing.T) {
	err := &ValidationError{Kind: MissingColumns, Columns: []string{"Start Date", "Time"}}
	got := MapError(err)
	if !strings.Contains(got.Message, "Start Date, Time") {
		t.Errorf("message should list the missing columns, got %q", got.Message)
	}
}

func TestValidationErrorString(t *testing.T) {
	err := &ValidationError{Kind: MissingColumns, Columns: []string{"Name", "Status"}}
	if got := err.Error(); got != "missing required columns: Name, Status" {
		t.Errorf("Error() = %q", got)
	}

	err = &ValidationError{Kind: EmptyResult}
	if got := err.Error(); got != "no upcoming programs found" {
		t.Errorf("Error() = %q", got)
	}
}
