package host

import (
	"errors"
	"testing"
)

func TestOpError(t *testing.T) {
	base := errors.New("boom")
	err := error(&OpError{Op: "sync", Index: -1, Err: base})
	if err.Error() != "sync: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) || !errors.Is(err, ErrHostOperation) {
		t.Error("OpError must unwrap to both causes")
	}
	err = &OpError{Op: "insert block", Index: 0, Err: base}
	if err.Error() != "insert block (element 1): boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestModeNames(t *testing.T) {
	if InsertAfter.String() != "after" {
		t.Errorf("InsertAfter = %q", InsertAfter)
	}
	if SelectDeletedRange.String() != "select-deleted-range" {
		t.Errorf("SelectDeletedRange = %q", SelectDeletedRange)
	}
	if DeleteMode(3).String() != "DeleteMode(3)" || InsertLocation(5).String() != "InsertLocation(5)" {
		t.Error("unexpected names for unknown modes")
	}
}
