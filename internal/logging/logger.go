// Package logging constructs the process logger: a console stream with
// optional color and an optional append-mode file sink carrying the
// structured form of every event.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/backmassage/mkvresort/internal/config"
	"github.com/backmassage/mkvresort/internal/term"
)

// Logger wraps a zerolog.Logger together with the file sink it may own.
// Call Close when done if LogFile was set.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New resolves the color mode, builds the console writer, and optionally
// opens cfg.LogFile as a second, structured sink.
func New(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    !term.Enabled(),
	}

	l := &Logger{}
	var sink io.Writer = console
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		sink = zerolog.MultiLevelWriter(console, f)
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	l.Logger = zerolog.New(sink).Level(level).With().Timestamp().Logger()
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
