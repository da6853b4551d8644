package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/backmassage/mkvresort/internal/config"
)

func TestNew_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info().Msg("test message")
}

func TestNew_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "mkvresort.log")

	l, err := New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info().Str("file", "a.mkv").Msg("to file")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("to file")) || !bytes.Contains(b, []byte("a.mkv")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.Verbose = true
	l, err := New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	if l.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level: got %v, want debug", l.GetLevel())
	}
}
