package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	// Default build has no commit baked in
	info := Info()
	if info != Version {
		t.Errorf("Info() = %q, want %q", info, Version)
	}
}

func TestInfoWithCommit(t *testing.T) {
	oldCommit := Commit
	defer func() { Commit = oldCommit }()

	Commit = "abcdef1234567890"
	info := Info()
	if !strings.Contains(info, "abcdef1") {
		t.Errorf("Info() = %q, want short commit included", info)
	}
	if strings.Contains(info, "abcdef12") {
		t.Errorf("Info() = %q, commit should be truncated to 7 chars", info)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	for _, want := range []string{"ctxhub version", Version, "Commit:", "Built:"} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() missing %q:\n%s", want, full)
		}
	}
}
