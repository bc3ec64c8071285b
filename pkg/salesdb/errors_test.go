package salesdb

import (
	"errors"
	"strings"
	"testing"
)

func TestRowError(t *testing.T) {
	cause := errors.New("no product")
	err := &RowError{Sheet: "ventas", Row: 42, Err: cause}

	msg := err.Error()
	if !strings.Contains(msg, `"ventas"`) || !strings.Contains(msg, "42") {
		t.Errorf("message = %q, want sheet and row", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("RowError should unwrap to its cause")
	}
}

func TestRowErrorWrapsSentinels(t *testing.T) {
	err := &RowError{Sheet: "ventas", Row: 1, Err: ErrMissingReference}
	if !errors.Is(err, ErrMissingReference) {
		t.Error("RowError should expose the wrapped sentinel")
	}
}

func TestQueryError(t *testing.T) {
	cause := errors.New("syntax error")
	err := &QueryError{Query: "SELECT nope", Err: cause}

	if !strings.Contains(err.Error(), "SELECT nope") {
		t.Errorf("message = %q, want query text", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("QueryError should unwrap to its cause")
	}
}
