package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := New(ScanFailed, "scan aborted", nil)
	if got := err.Error(); got != "[SCAN_FAILED] scan aborted" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorFormatWithCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := New(ConfigInvalid, "cannot read config", cause)

	msg := err.Error()
	if !strings.Contains(msg, "CONFIG_INVALID") || !strings.Contains(msg, "permission denied") {
		t.Errorf("Error() = %q, want code and cause", msg)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New(InternalError, "wrapped", cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(IndexMissing, "no index", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Fatal("IndexMissing should carry suggested fixes")
	}
	if err.SuggestedFixes[0].Command != "ctxhub scan" {
		t.Errorf("fix command = %q, want %q", err.SuggestedFixes[0].Command, "ctxhub scan")
	}

	if fixes := GetSuggestedFixes(InternalError); fixes != nil {
		t.Errorf("InternalError should have no fixes, got %v", fixes)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(ScanFailed, "scan aborted", nil).WithDetails(map[string]int{"files": 3})
	if err.Details == nil {
		t.Error("WithDetails should attach details")
	}
}
