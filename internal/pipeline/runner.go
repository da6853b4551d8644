package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/mkvresort/internal/batch"
	"github.com/backmassage/mkvresort/internal/config"
	"github.com/backmassage/mkvresort/internal/display"
	"github.com/backmassage/mkvresort/internal/order"
	"github.com/backmassage/mkvresort/internal/probe"
	"github.com/backmassage/mkvresort/internal/remux"
	"github.com/backmassage/mkvresort/internal/term"
)

// Prober identifies one file's streams, grouped by codec type.
type Prober interface {
	Probe(ctx context.Context, path string) (probe.Classification, error)
}

// Remuxer rewrites one file with the given track order.
type Remuxer interface {
	Remux(ctx context.Context, outputFile, input string, trackOrder []int64) error
}

// Runner executes work items sequentially against its collaborators.
type Runner struct {
	Cfg     *config.Config
	Log     zerolog.Logger
	Prober  Prober
	Remuxer Remuxer
}

// New returns a Runner wired to the real mkvmerge binary from cfg.
func New(cfg *config.Config, log zerolog.Logger) *Runner {
	return &Runner{
		Cfg:     cfg,
		Log:     log,
		Prober:  mkvmergeProber{tool: cfg.Mkvmerge},
		Remuxer: mkvmergeRemuxer{tool: cfg.Mkvmerge},
	}
}

// Run processes all batches: identify everything first, then remux
// everything. The first failure aborts the whole run; there is no
// per-file skip-and-continue and no retry. A cancelled context is
// returned as its ctx.Err().
func (r *Runner) Run(ctx context.Context, items []batch.WorkItem) (RunStats, error) {
	stats := RunStats{Batches: len(items)}
	for i := range items {
		stats.Files += items[i].Files()
	}

	if err := r.identifyAll(ctx, items, &stats); err != nil {
		return stats, err
	}
	if err := r.remuxAll(ctx, items, &stats); err != nil {
		return stats, err
	}

	r.logSummary(&stats)
	return stats, nil
}

// identifyAll probes every file of every batch and attaches the target
// track orders. Each batch ends with TrackOrder parallel to InputFiles.
func (r *Runner) identifyAll(ctx context.Context, items []batch.WorkItem, stats *RunStats) error {
	for i := range items {
		item := &items[i]
		r.Log.Info().
			Int("batch", item.Batch).
			Str("name", item.InputGiven).
			Msg("identify batch started")

		item.TrackOrder = make([][]int64, 0, item.Files())
		for _, file := range item.InputFiles {
			if err := ctx.Err(); err != nil {
				return err
			}

			c, err := r.Prober.Probe(ctx, file)
			if err != nil {
				stats.Failed++
				return err
			}

			trackOrder := order.TrackOrder(c, item.Spec)
			item.TrackOrder = append(item.TrackOrder, trackOrder)
			stats.Identified++

			r.Log.Debug().
				Str("file", filepath.Base(file)).
				Str("streams", display.FormatStreamCounts(c)).
				Str("order", display.FormatTrackOrder(trackOrder)).
				Msg("identified")
		}

		r.Log.Info().
			Int("batch", item.Batch).
			Str("name", item.InputGiven).
			Msg("identify batch completed")
	}
	return nil
}

// remuxAll rewrites every file of every batch with its precomputed
// track order.
func (r *Runner) remuxAll(ctx context.Context, items []batch.WorkItem, stats *RunStats) error {
	bar := r.progressBar(stats.Files)
	if bar != nil {
		defer bar.Close()
	}

	for i := range items {
		item := &items[i]
		r.Log.Info().
			Int("batch", item.Batch).
			Str("name", item.InputGiven).
			Msg("remux batch started")

		for idx, file := range item.InputFiles {
			if err := ctx.Err(); err != nil {
				return err
			}

			outputFile := remux.OutputFile(file, item.OutputPath, item.OutputIsDir, r.Cfg.Suffix)
			if bar != nil {
				bar.Describe(filepath.Base(file))
			}

			if r.Cfg.DryRun {
				r.Log.Info().
					Str("file", filepath.Base(file)).
					Str("output", outputFile).
					Str("order", display.FormatTrackOrder(item.TrackOrder[idx])).
					Msg("[DRY] would remux")
				stats.Remuxed++
				continue
			}

			if err := r.Remuxer.Remux(ctx, outputFile, file, item.TrackOrder[idx]); err != nil {
				stats.Failed++
				return err
			}
			stats.Remuxed++
			if fi, err := os.Stat(outputFile); err == nil {
				stats.OutputBytes += fi.Size()
			}

			r.Log.Debug().
				Str("file", filepath.Base(file)).
				Str("output", filepath.Base(outputFile)).
				Msg("remuxed")
			if bar != nil {
				bar.Add(1)
			}
		}

		r.Log.Info().
			Int("batch", item.Batch).
			Str("name", item.InputGiven).
			Msg("remux batch completed")
	}
	return nil
}

// progressBar returns the remux-phase bar, or nil when progress display
// is off, pointless (dry run), or would interleave with verbose logs or
// a non-TTY stream. The bar writes to stderr so it never mixes with the
// stdout log stream, and its TTY check follows stderr for the same
// reason; log colors follow stdout (term.Configure).
func (r *Runner) progressBar(total int) *progressbar.ProgressBar {
	if !r.Cfg.Progress || r.Cfg.DryRun || r.Cfg.Verbose || !term.IsTerminal(os.Stderr) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("remuxing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *Runner) logSummary(stats *RunStats) {
	ev := r.Log.Info().
		Int("batches", stats.Batches).
		Int("files", stats.Files).
		Int("identified", stats.Identified).
		Int("remuxed", stats.Remuxed).
		Int("failed", stats.Failed)
	if !r.Cfg.DryRun {
		ev = ev.Str("written", display.FormatBytes(stats.OutputBytes))
	}
	ev.Msg("done")
}

// --- default exec-backed collaborators ---

type mkvmergeProber struct {
	tool string
}

func (p mkvmergeProber) Probe(ctx context.Context, path string) (probe.Classification, error) {
	records, err := probe.Identify(ctx, p.tool, path)
	if err != nil {
		return probe.Classification{}, err
	}
	return probe.Classify(records), nil
}

type mkvmergeRemuxer struct {
	tool string
}

func (m mkvmergeRemuxer) Remux(ctx context.Context, outputFile, input string, trackOrder []int64) error {
	return remux.Execute(ctx, m.tool, outputFile, input, trackOrder)
}
