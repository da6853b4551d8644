// Command mkvresort is the CLI entrypoint for batch-reordering streams
// in Matroska files via mkvmerge.
//
// It parses flags, validates configuration, resolves and reconciles the
// batch arguments, and runs the identify/remux pipeline, or system
// diagnostics with --check.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/mkvresort/internal/batch"
	"github.com/backmassage/mkvresort/internal/check"
	"github.com/backmassage/mkvresort/internal/config"
	"github.com/backmassage/mkvresort/internal/display"
	"github.com/backmassage/mkvresort/internal/logging"
	"github.com/backmassage/mkvresort/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// Exit status for a user-initiated interrupt, distinct from ordinary
// failures (128 + SIGINT).
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once logging.New succeeds, all output
	// goes through the logger.
	cfg := config.DefaultConfig()
	config.LoadEnv(&cfg)
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "mkvresort: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "mkvresort: %v\n", err)
		return 1
	}

	log, err := logging.New(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkvresort: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, checkLogger{log}) {
			return 1
		}
		return 0
	}

	log.Info().Str("version", version).Str("commit", commit).Msg("mkvresort")

	// Fail fast if mkvmerge is unavailable.
	if err := check.Deps(&cfg); err != nil {
		log.Error().Err(err).Msg("dependency check failed")
		return 1
	}

	// Phase 3: Resolve and reconcile the batch arguments. Every
	// cardinality and path problem surfaces here, before any file is
	// probed or written.
	inputs, err := batch.ResolveInputs(cfg.Inputs)
	if err != nil {
		log.Error().Err(err).Msg("invalid input argument")
		return 1
	}
	outputs, err := batch.ResolveOutputs(cfg.Outputs, len(cfg.Inputs))
	if err != nil {
		log.Error().Err(err).Msg("invalid output argument")
		return 1
	}
	presets, err := batch.ResolvePresets(cfg.Presets, len(cfg.Inputs))
	if err != nil {
		log.Error().Err(err).Msg("invalid preset argument")
		return 1
	}
	items := batch.Reconcile(inputs, outputs, presets)

	if cfg.DryRun {
		log.Warn().Msg("DRY RUN: no files will be written")
	}

	// Phase 4: Signal handling. Cancel the context on SIGINT/SIGTERM
	// so the pipeline stops once the in-flight subprocess returns.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn().Msg("received interrupt, stopping")
		cancel()
	}()

	// Phase 5: Run the pipeline (identify all -> remux all).
	_, err = pipeline.New(&cfg, log.Logger).Run(ctx, items)
	switch code := exitStatus(ctx.Err(), err); code {
	case exitInterrupted:
		log.Warn().Msg("cancelled by user")
		return code
	case 0:
		return 0
	default:
		log.Error().Err(err).Msg("run aborted")
		return code
	}
}

// exitStatus maps the pipeline result to a process exit code.
// Cancellation kills the in-flight subprocess, so an interrupt usually
// surfaces as a tool error ("signal: killed" wrapped in a probe or
// remux error) rather than context.Canceled; any failure with the
// context already cancelled counts as an interrupt.
func exitStatus(ctxErr, err error) int {
	switch {
	case err == nil:
		return 0
	case ctxErr != nil:
		return exitInterrupted
	default:
		return 1
	}
}

// checkLogger adapts the process logger to the minimal interface the
// check package needs.
type checkLogger struct{ log *logging.Logger }

func (c checkLogger) Info(msg string)  { c.log.Info().Msg(msg) }
func (c checkLogger) Error(msg string) { c.log.Error().Msg(msg) }
