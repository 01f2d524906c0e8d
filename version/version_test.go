package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	if got := GetFullVersion(); got != "dev" {
		t.Errorf("GetFullVersion failed: expected dev, got %q", got)
	}

	v, c, d := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = v, c, d }()

	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2026-01-01"
	want := "1.2.0 (commit abc123, built 2026-01-01)"
	if got := GetFullVersion(); got != want {
		t.Errorf("GetFullVersion failed: expected %q, got %q", want, got)
	}
	if got := GetVersion(); got != "1.2.0" {
		t.Errorf("GetVersion failed: expected 1.2.0, got %q", got)
	}
}
