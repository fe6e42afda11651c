package db

import (
	"errors"
	"testing"
)

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &Error{Op: OpQuery, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find inner error")
	}
	if err.Error() != "QUERY: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}
