package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = "1.2.0"
	Commit = "0123456789abcdef"

	got := String()
	if !strings.HasPrefix(got, "newsroom 1.2.0 (commit: 0123456") {
		t.Errorf("String() = %q, want newsroom 1.2.0 with short commit", got)
	}
}
