package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "validation error",
			err:      &ValidationError{Field: "title", Reason: "must not be empty"},
			expected: "Error: title: must not be empty",
		},
		{
			name:     "format error",
			err:      &FormatError{Reason: "missing version"},
			expected: "Error: invalid data format: missing version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("day %s not found", "2024-01-02")
	if got != "Error: day 2024-01-02 not found" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestErrorsAs(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("saving day: %w", &StorageError{Op: "set", Key: "wt:u:2024-01-01", Err: cause})

	var se *StorageError
	if !errors.As(wrapped, &se) {
		t.Fatal("errors.As() did not find StorageError")
	}
	if se.Op != "set" {
		t.Errorf("StorageError.Op = %q, want set", se.Op)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is() did not reach the underlying cause")
	}

	var pe *ParseError
	parse := &ParseError{Key: "goals_u", Err: cause}
	if !errors.As(error(parse), &pe) || !errors.Is(parse, cause) {
		t.Error("ParseError does not unwrap to its cause")
	}

	var ve *ValidationError
	if !errors.As(Validation("target", "must be positive, got %d", 0), &ve) {
		t.Fatal("Validation() did not build a ValidationError")
	}
	if ve.Reason != "must be positive, got 0" {
		t.Errorf("ValidationError.Reason = %q", ve.Reason)
	}
}
