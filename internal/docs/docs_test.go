package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shocklink/internal/docs"
)

func TestWriteCreatesFile(t *testing.T) {
	dir := t.TempDir()

	if err := docs.Write(dir); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, docs.FileName))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	content := string(data)
	for _, want := range []string{"shockerID", "OpenShockToken", "customName", "minDuration", "maxDuration", "minIntensity", "maxIntensity", "api.openshock.app", "300", "30000"} {
		if !strings.Contains(content, want) {
			t.Errorf("documentation missing %q", want)
		}
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, docs.FileName)
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := docs.Write(dir); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) == "stale" {
		t.Errorf("documentation was not overwritten")
	}
}

func TestWriteUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "missing", "deeper")

	if err := docs.Write(sub); err == nil {
		t.Errorf("Write() = nil, want error for missing directory")
	}
}
