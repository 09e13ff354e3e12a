package build

import "testing"

func TestVersion(t *testing.T) {
	if got := Version(); got != "0.1.0" {
		t.Errorf("Version() = %q, want embedded 0.1.0", got)
	}

	version = "9.9.9"
	t.Cleanup(func() { version = "" })
	if got := Version(); got != "9.9.9" {
		t.Errorf("Version() = %q, want ldflags override", got)
	}
}

func TestCommitAndDateDefaults(t *testing.T) {
	if Commit() != "unknown" || Date() != "unknown" {
		t.Errorf("unexpected defaults: commit=%q date=%q", Commit(), Date())
	}
}
