package config

// This file implements CLI flag parsing and help text. The input,
// output, and preset options are repeatable; their order on the command
// line assigns the 1-based batch indices.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints
// and exits. On error it returns non-nil (e.g. unknown flag).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("mkvresort", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var negated negatedFlags
	defineBatchFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "mkvresort v"+version)
		os.Exit(0)
	}

	if len(fs.Args()) != 0 {
		return fmt.Errorf("unexpected argument %q (use -i/-o/-p options)", fs.Args()[0])
	}

	if len(cfg.Presets) == 0 {
		cfg.Presets = []string{DefaultPreset}
	}
	return nil
}

// negatedFlags holds boolean flags applied after Parse, so Config
// defaults hold unless the user passes the flag.
type negatedFlags struct {
	noProgress  bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineBatchFlags registers the repeatable -i/--input, -o/--output,
// -p/--preset options.
func defineBatchFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var((*stringList)(&cfg.Inputs), "input", "Path to input file or directory (repeatable)")
	fs.Var((*stringList)(&cfg.Inputs), "i", "Same as --input")
	fs.Var((*stringList)(&cfg.Outputs), "output", "Path to output file or directory (repeatable)")
	fs.Var((*stringList)(&cfg.Outputs), "o", "Same as --output")
	fs.Var((*stringList)(&cfg.Presets), "preset", "Path to JSON sort preset (one, or one per input)")
	fs.Var((*stringList)(&cfg.Presets), "p", "Same as --preset")
}

// defineBehaviorFlags registers tool, suffix, dry-run, progress.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.Mkvmerge, "mkvmerge", cfg.Mkvmerge, "mkvmerge binary name or path")
	fs.StringVar(&cfg.Suffix, "suffix", cfg.Suffix, "Stem suffix for outputs placed in a directory")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not write any files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.noProgress, "no-progress", false, "Disable the remux progress bar")
}

// defineDisplayFlags registers color, verbose, check, log, version, help.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noProgress {
		cfg.Progress = false
	}
	if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	}
}

// stringList is a repeatable string flag value.
type stringList []string

func (s *stringList) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprint(*s)
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprint(fs.Output(), `mkvresort - batch-reorder streams in Matroska files

Usage:
  mkvresort -i INPUT -o OUTPUT [-p PRESET] [options]

Each -i/-o pair forms a batch, in command-line order. An input may be a
file or a directory (scanned recursively for .mkv files). An output with
an extension is a file target; anything else is a directory target. Give
one preset for all batches, or exactly one per input.

Batch options:
  -i, --input PATH    Input file or directory (repeatable)
  -o, --output PATH   Output file or directory (repeatable)
  -p, --preset FILE   JSON sort preset (default `+DefaultPreset+`)

Options:
      --mkvmerge BIN  mkvmerge binary name or path
      --suffix STR    Stem suffix for outputs placed in a directory
  -d, --dry-run       Preview only; do not write any files
      --no-progress   Disable the remux progress bar
      --color         Force colored logs
      --no-color      Disable colored logs
  -v, --verbose       Verbose output
  -c, --check         Run system diagnostics and exit
  -l, --log FILE      Append logs to file
      --version       Print version and exit
  -h, --help          Show this help
`)
}
