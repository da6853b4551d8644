// Package check provides system diagnostics (--check mode) and
// pre-pipeline dependency validation for mkvmerge.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/mkvresort/internal/config"
)

// ErrMkvmergeNotFound is returned by Deps when the tool is missing.
var ErrMkvmergeNotFound = errors.New("mkvmerge not found on PATH (install mkvtoolnix)")

// Logger is the minimal logging interface needed by RunCheck. Defined
// here (rather than importing the logging package) so that check stays
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(msg string)
	Error(msg string)
}

// RunCheck runs the --check flow: it reports whether the configured
// mkvmerge binary is available and which version it is. Returns false
// when the tool is unusable.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	path, err := exec.LookPath(cfg.Mkvmerge)
	if err != nil {
		log.Error(fmt.Sprintf("%s: not found", cfg.Mkvmerge))
		return false
	}
	log.Info(fmt.Sprintf("mkvmerge: %s", path))

	out, err := exec.Command(cfg.Mkvmerge, "--version").Output()
	if err != nil {
		log.Error(fmt.Sprintf("mkvmerge found but --version failed: %v", err))
		return false
	}
	log.Info(fmt.Sprintf("version: %s", firstLine(string(out))))
	return true
}

// Deps is the pre-pipeline validation: the configured mkvmerge binary
// must be resolvable. Returns ErrMkvmergeNotFound otherwise.
func Deps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.Mkvmerge); err != nil {
		return ErrMkvmergeNotFound
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "\n"); i > 0 {
		s = s[:i]
	}
	return s
}
