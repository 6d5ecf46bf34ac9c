package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	got := String()
	if !strings.Contains(got, "v"+Version) {
		t.Errorf("String() = %q, want it to contain v%s", got, Version)
	}
	if !strings.Contains(got, Commit) {
		t.Errorf("String() = %q, want it to contain commit %q", got, Commit)
	}
}
