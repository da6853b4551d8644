package remux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Error reports a failed remux invocation, carrying the tail of the
// tool's output for diagnosis.
type Error struct {
	Input  string
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("remux %q -> %q: %v", e.Input, e.Output, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Execute runs mkvmerge to rewrite input as outputFile with the given
// track order. The subprocess is awaited fully; a non-zero exit status
// is an *Error. mkvmerge reports problems on stdout, so both streams
// are captured.
func Execute(ctx context.Context, tool, outputFile, input string, order []int64) error {
	args := BuildArgs(outputFile, input, order)
	cmd := exec.CommandContext(ctx, tool, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		if msg := tail(buf.String(), 10); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &Error{Input: input, Output: outputFile, Err: err}
	}
	return nil
}

// tail returns the last n non-empty lines of s joined by "; ".
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	var kept []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "; ")
}
