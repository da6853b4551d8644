package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/backmassage/mkvresort/internal/batch"
	"github.com/backmassage/mkvresort/internal/config"
	"github.com/backmassage/mkvresort/internal/preset"
	"github.com/backmassage/mkvresort/internal/probe"
	"github.com/backmassage/mkvresort/internal/remux"
)

// --- fakes ---

type fakeProber struct {
	results map[string]probe.Classification
	fail    map[string]error
	probed  []string
}

func (f *fakeProber) Probe(_ context.Context, path string) (probe.Classification, error) {
	f.probed = append(f.probed, path)
	if err := f.fail[path]; err != nil {
		return probe.Classification{}, err
	}
	c, ok := f.results[path]
	if !ok {
		return probe.Classification{}, fmt.Errorf("unexpected probe of %q", path)
	}
	return c, nil
}

type remuxCall struct {
	output string
	input  string
	order  []int64
}

type fakeRemuxer struct {
	calls []remuxCall
	fail  map[string]error
}

func (f *fakeRemuxer) Remux(_ context.Context, outputFile, input string, trackOrder []int64) error {
	f.calls = append(f.calls, remuxCall{output: outputFile, input: input, order: trackOrder})
	return f.fail[input]
}

// twoAudio builds a classification with one video track and two audio
// tracks whose languages are given in id order 1, 2.
func twoAudio(lang1, lang2 string) probe.Classification {
	return probe.Classify([]probe.StreamRecord{
		{ID: 0, Type: probe.Video},
		{ID: 1, Type: probe.Audio, Properties: map[string]probe.Value{"language": probe.StringValue(lang1)}},
		{ID: 2, Type: probe.Audio, Properties: map[string]probe.Value{"language": probe.StringValue(lang2)}},
	})
}

func testRunner(cfg *config.Config, p Prober, m Remuxer) *Runner {
	return &Runner{Cfg: cfg, Log: zerolog.Nop(), Prober: p, Remuxer: m}
}

func languageDescending() preset.Spec {
	return preset.Spec{{Field: "language", Descending: true}}
}

// --- tests ---

func TestRun_SortsAndRemuxesBatch(t *testing.T) {
	items := []batch.WorkItem{{
		Batch:       1,
		InputGiven:  "/in",
		InputFiles:  []string{"/in/a.mkv", "/in/b.mkv"},
		OutputPath:  "/out",
		OutputIsDir: true,
		Spec:        languageDescending(),
	}}

	prober := &fakeProber{results: map[string]probe.Classification{
		"/in/a.mkv": twoAudio("eng", "jpn"),
		"/in/b.mkv": twoAudio("jpn", "eng"),
	}}
	remuxer := &fakeRemuxer{}
	cfg := config.DefaultConfig()
	cfg.Progress = false
	r := testRunner(&cfg, prober, remuxer)

	stats, err := r.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Identified != 2 || stats.Remuxed != 2 || stats.Failed != 0 {
		t.Errorf("stats: %+v", stats)
	}
	if len(remuxer.calls) != 2 {
		t.Fatalf("got %d remux calls, want 2", len(remuxer.calls))
	}

	// a.mkv: audio jpn(2) before eng(1) under language descending.
	first := remuxer.calls[0]
	if first.input != "/in/a.mkv" {
		t.Errorf("first input: %q", first.input)
	}
	if want := filepath.Join("/out", "a (1).mkv"); first.output != want {
		t.Errorf("first output: got %q, want %q", first.output, want)
	}
	if !orderEqual(first.order, []int64{0, 2, 1}) {
		t.Errorf("first order: got %v, want [0 2 1]", first.order)
	}

	// b.mkv already has jpn first; natural order kept.
	second := remuxer.calls[1]
	if !orderEqual(second.order, []int64{0, 1, 2}) {
		t.Errorf("second order: got %v, want [0 1 2]", second.order)
	}
}

func TestRun_IdentifyPhaseCompletesBeforeRemuxPhase(t *testing.T) {
	items := []batch.WorkItem{
		{Batch: 1, InputFiles: []string{"/in/a.mkv"}, OutputPath: "/out", OutputIsDir: true},
		{Batch: 2, InputFiles: []string{"/in/b.mkv"}, OutputPath: "/out", OutputIsDir: true},
	}

	var sequence []string
	prober := &fakeProber{results: map[string]probe.Classification{
		"/in/a.mkv": twoAudio("eng", "jpn"),
		"/in/b.mkv": twoAudio("eng", "jpn"),
	}}
	remuxer := &fakeRemuxer{}
	cfg := config.DefaultConfig()
	cfg.Progress = false
	r := testRunner(&cfg, proberFunc(func(ctx context.Context, path string) (probe.Classification, error) {
		sequence = append(sequence, "probe "+path)
		return prober.Probe(ctx, path)
	}), remuxerFunc(func(ctx context.Context, out, in string, ord []int64) error {
		sequence = append(sequence, "remux "+in)
		return remuxer.Remux(ctx, out, in, ord)
	}))

	if _, err := r.Run(context.Background(), items); err != nil {
		t.Fatal(err)
	}

	want := []string{"probe /in/a.mkv", "probe /in/b.mkv", "remux /in/a.mkv", "remux /in/b.mkv"}
	if len(sequence) != len(want) {
		t.Fatalf("sequence: %v", sequence)
	}
	for i := range want {
		if sequence[i] != want[i] {
			t.Errorf("step %d: got %q, want %q", i, sequence[i], want[i])
		}
	}
}

func TestRun_ProbeFailureHaltsBeforeAnyRemux(t *testing.T) {
	items := []batch.WorkItem{{
		Batch:      1,
		InputFiles: []string{"/in/bad.mkv", "/in/good.mkv"},
		OutputPath: "/out", OutputIsDir: true,
	}}

	probeErr := &probe.Error{Path: "/in/bad.mkv", Err: errors.New("headers unreadable")}
	prober := &fakeProber{
		results: map[string]probe.Classification{"/in/good.mkv": twoAudio("eng", "jpn")},
		fail:    map[string]error{"/in/bad.mkv": probeErr},
	}
	remuxer := &fakeRemuxer{}
	cfg := config.DefaultConfig()
	cfg.Progress = false
	r := testRunner(&cfg, prober, remuxer)

	stats, err := r.Run(context.Background(), items)
	var pe *probe.Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected probe.Error, got %v", err)
	}
	if len(prober.probed) != 1 {
		t.Errorf("run must halt on first failure, probed %v", prober.probed)
	}
	if len(remuxer.calls) != 0 {
		t.Errorf("no remux expected after probe failure, got %d calls", len(remuxer.calls))
	}
	if stats.Failed != 1 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestRun_RemuxFailureHalts(t *testing.T) {
	items := []batch.WorkItem{{
		Batch:      1,
		InputFiles: []string{"/in/a.mkv", "/in/b.mkv"},
		OutputPath: "/out", OutputIsDir: true,
	}}

	prober := &fakeProber{results: map[string]probe.Classification{
		"/in/a.mkv": twoAudio("eng", "jpn"),
		"/in/b.mkv": twoAudio("eng", "jpn"),
	}}
	remuxer := &fakeRemuxer{fail: map[string]error{"/in/a.mkv": errors.New("mkvmerge exited 2")}}
	cfg := config.DefaultConfig()
	cfg.Progress = false
	r := testRunner(&cfg, prober, remuxer)

	stats, err := r.Run(context.Background(), items)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(remuxer.calls) != 1 {
		t.Errorf("remux must halt on first failure, got %d calls", len(remuxer.calls))
	}
	if stats.Remuxed != 0 || stats.Failed != 1 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	items := []batch.WorkItem{{
		Batch:      1,
		InputFiles: []string{"/in/a.mkv"},
		OutputPath: "/out", OutputIsDir: true,
	}}

	prober := &fakeProber{results: map[string]probe.Classification{
		"/in/a.mkv": twoAudio("eng", "jpn"),
	}}
	remuxer := &fakeRemuxer{}
	cfg := config.DefaultConfig()
	cfg.DryRun = true
	r := testRunner(&cfg, prober, remuxer)

	stats, err := r.Run(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if len(remuxer.calls) != 0 {
		t.Errorf("dry run must not remux, got %d calls", len(remuxer.calls))
	}
	if stats.Remuxed != 1 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	items := []batch.WorkItem{{
		Batch:      1,
		InputFiles: []string{"/in/a.mkv"},
		OutputPath: "/out", OutputIsDir: true,
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := &fakeProber{}
	remuxer := &fakeRemuxer{}
	cfg := config.DefaultConfig()
	cfg.Progress = false
	r := testRunner(&cfg, prober, remuxer)

	_, err := r.Run(ctx, items)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(prober.probed) != 0 || len(remuxer.calls) != 0 {
		t.Error("nothing should run after cancellation")
	}
}

func TestRun_SummaryReportsCounters(t *testing.T) {
	items := []batch.WorkItem{{
		Batch:      1,
		InputFiles: []string{"/in/a.mkv", "/in/b.mkv"},
		OutputPath: "/out", OutputIsDir: true,
	}}

	prober := &fakeProber{results: map[string]probe.Classification{
		"/in/a.mkv": twoAudio("eng", "jpn"),
		"/in/b.mkv": twoAudio("jpn", "eng"),
	}}
	cfg := config.DefaultConfig()
	cfg.Progress = false

	var buf bytes.Buffer
	r := testRunner(&cfg, prober, &fakeRemuxer{})
	r.Log = zerolog.New(&buf)

	if _, err := r.Run(context.Background(), items); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, field := range []string{`"identified":2`, `"remuxed":2`, `"failed":0`, `"message":"done"`} {
		if !strings.Contains(out, field) {
			t.Errorf("summary missing %s in: %s", field, out)
		}
	}
}

func TestRun_InterruptDuringRemuxSurfacesToolError(t *testing.T) {
	items := []batch.WorkItem{{
		Batch:      1,
		InputFiles: []string{"/in/a.mkv"},
		OutputPath: "/out", OutputIsDir: true,
	}}

	prober := &fakeProber{results: map[string]probe.Classification{
		"/in/a.mkv": twoAudio("eng", "jpn"),
	}}
	cfg := config.DefaultConfig()
	cfg.Progress = false

	// An interrupt mid-remux kills the child: the context cancels and
	// the call returns the tool's exit error, not context.Canceled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := testRunner(&cfg, prober, remuxerFunc(func(_ context.Context, out, in string, _ []int64) error {
		cancel()
		return &remux.Error{Input: in, Output: out, Err: errors.New("signal: killed")}
	}))

	_, err := r.Run(ctx, items)
	var re *remux.Error
	if !errors.As(err, &re) {
		t.Fatalf("expected remux.Error, got %v", err)
	}
	if errors.Is(err, context.Canceled) {
		t.Error("tool error must not read as context.Canceled")
	}
	if ctx.Err() == nil {
		t.Error("context should be cancelled; it is the only interrupt signal left")
	}
}

func TestRun_TrackOrderParallelToInputFiles(t *testing.T) {
	items := []batch.WorkItem{{
		Batch:      1,
		InputFiles: []string{"/in/a.mkv", "/in/b.mkv", "/in/c.mkv"},
		OutputPath: "/out", OutputIsDir: true,
		Spec: languageDescending(),
	}}

	prober := &fakeProber{results: map[string]probe.Classification{
		"/in/a.mkv": twoAudio("eng", "jpn"),
		"/in/b.mkv": twoAudio("jpn", "eng"),
		"/in/c.mkv": probe.Classify(nil),
	}}
	cfg := config.DefaultConfig()
	cfg.Progress = false
	r := testRunner(&cfg, prober, &fakeRemuxer{})

	if _, err := r.Run(context.Background(), items); err != nil {
		t.Fatal(err)
	}
	if got := len(items[0].TrackOrder); got != 3 {
		t.Fatalf("TrackOrder length %d, want 3", got)
	}
	if len(items[0].TrackOrder[2]) != 0 {
		t.Errorf("file with no streams should yield an empty order: %v", items[0].TrackOrder[2])
	}
}

// --- adapters and helpers ---

type proberFunc func(context.Context, string) (probe.Classification, error)

func (f proberFunc) Probe(ctx context.Context, path string) (probe.Classification, error) {
	return f(ctx, path)
}

type remuxerFunc func(context.Context, string, string, []int64) error

func (f remuxerFunc) Remux(ctx context.Context, out, in string, ord []int64) error {
	return f(ctx, out, in, ord)
}

func orderEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
