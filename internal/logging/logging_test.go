package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"shocklink/internal/logging"
)

func TestNewDefaultsToInfo(t *testing.T) {
	log, err := logging.New(logging.Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", log.GetLevel())
	}
}

func TestNewParsesLevel(t *testing.T) {
	log, err := logging.New(logging.Options{Level: "debug"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := logging.New(logging.Options{Level: "shouting"}); err == nil {
		t.Errorf("New() = nil error, want failure for unknown level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shocklink.log")

	log, err := logging.New(logging.Options{File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info().Msg("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) == 0 {
		t.Errorf("log file is empty, want at least one entry")
	}
}
