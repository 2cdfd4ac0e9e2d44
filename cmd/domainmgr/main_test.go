package main

import (
	"os"
	"testing"
)

func runWithArgs(args ...string) int {
	old := os.Args
	defer func() { os.Args = old }()
	os.Args = append([]string{"domainmgr"}, args...)
	return run()
}

func setCreds(t *testing.T) {
	t.Helper()
	t.Setenv("GODADDY_API_KEY", "test-key")
	t.Setenv("GODADDY_API_SECRET", "test-secret")
}

func clearCreds(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GODADDY_API_KEY", "GODADDY_API_SECRET"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

// Keep these exit codes stable: they matter in scripts.
func TestRun_Version_Exit0(t *testing.T) {
	if got := runWithArgs("--version"); got != 0 {
		t.Fatalf("exit=%d, want 0", got)
	}
}

func TestRun_MissingCredentials_Exit1(t *testing.T) {
	clearCreds(t)
	if got := runWithArgs("check", "example.com"); got != 1 {
		t.Fatalf("exit=%d, want 1", got)
	}
}

func TestRun_UnknownFlag_Exit2(t *testing.T) {
	if got := runWithArgs("--no-such-flag"); got != 2 {
		t.Fatalf("exit=%d, want 2", got)
	}
}

func TestRun_BadFormat_Exit2(t *testing.T) {
	setCreds(t)
	if got := runWithArgs("--format", "yaml", "check", "example.com"); got != 2 {
		t.Fatalf("exit=%d, want 2", got)
	}
}

func TestRun_CheckNoInput_Exit2(t *testing.T) {
	setCreds(t)
	if got := runWithArgs("check"); got != 2 {
		t.Fatalf("exit=%d, want 2", got)
	}
}
