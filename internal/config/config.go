// Package config holds runtime configuration: defaults, optional .env
// overrides, CLI flag parsing, and validation.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/backmassage/mkvresort/internal/remux"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultPreset is used when no -p/--preset is given; the single preset
// broadcasts to every batch.
const DefaultPreset = "./preset/default.json"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadEnv], and then mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Repeatable batch arguments, in the order given on the command line.
	Inputs  []string
	Outputs []string
	Presets []string

	// External tool.
	Mkvmerge string // Binary name or path. Default: "mkvmerge".

	// Output naming.
	Suffix string // Appended to the stem for directory outputs. Default: " (1)".

	// Behavior flags.
	DryRun   bool
	Progress bool // Default: true. Cleared by --no-progress.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults set. Used as the base
// before [LoadEnv] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		Mkvmerge:  "mkvmerge",
		Suffix:    remux.DefaultSuffix,
		Progress:  true,
		ColorMode: ColorAuto,
	}
}

// LoadEnv overlays settings from the environment, after loading an
// optional .env file from the working directory. CLI flags parsed later
// still take precedence.
func LoadEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MKVRESORT_MKVMERGE"); v != "" {
		cfg.Mkvmerge = v
	}
	if v, ok := os.LookupEnv("MKVRESORT_SUFFIX"); ok {
		cfg.Suffix = v
	}
	if v := os.Getenv("MKVRESORT_COLOR"); v != "" {
		cfg.ColorMode = ColorMode(v)
	}
	if v := os.Getenv("MKVRESORT_LOG"); v != "" {
		cfg.LogFile = v
	}
}

// Validate checks enum fields and, when not in CheckOnly mode, that the
// batch arguments are present. Count reconciliation between the lists
// happens during argument resolution, still before any file is touched.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.Mkvmerge == "" {
		return errors.New("mkvmerge binary must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Inputs) == 0 {
		return errors.New("need at least one --input")
	}
	if len(c.Outputs) == 0 {
		return errors.New("need at least one --output")
	}
	return nil
}
