package main

import "testing"

func TestRunHelp(t *testing.T) {
	if err := run([]string{"--help"}); err != nil {
		t.Fatalf("run(--help) error = %v, want nil", err)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	if err := run([]string{"--definitely-not-a-flag"}); err == nil {
		t.Fatalf("run() = nil, want error for unknown flag")
	}
}

func TestRunInvalidOptions(t *testing.T) {
	if err := run([]string{"--timeout", "-5s"}); err == nil {
		t.Fatalf("run() = nil, want validation error for negative timeout")
	}
}

func TestRunBadLogLevel(t *testing.T) {
	if err := run([]string{"--log-level", "shouting", "--listen", "127.0.0.1:0"}); err == nil {
		t.Fatalf("run() = nil, want error for unknown log level")
	}
}
