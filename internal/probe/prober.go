package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Error reports a failed identify call: the external tool errored or its
// output could not be parsed.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("identify %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Identify runs a single mkvmerge identify call against path and returns
// the parsed stream records. tool is the mkvmerge binary name or path.
func Identify(ctx context.Context, tool, path string) ([]StreamRecord, error) {
	cmd := exec.CommandContext(ctx, tool,
		"--identify",
		"--identification-format", "json",
		path,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, &Error{Path: path, Err: fmt.Errorf("%w: %s", err, msg)}
		}
		return nil, &Error{Path: path, Err: err}
	}

	records, err := ParseIdentifyJSON(out)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return records, nil
}

// ParseIdentifyJSON converts raw mkvmerge identify JSON into stream
// records. A non-empty errors array in the document is itself an error.
// Exported for testing without a real mkvmerge binary.
func ParseIdentifyJSON(data []byte) ([]StreamRecord, error) {
	var raw identifyOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse identify JSON: %w", err)
	}
	if len(raw.Errors) > 0 {
		return nil, fmt.Errorf("identify reported: %s", strings.Join(raw.Errors, "; "))
	}

	records := make([]StreamRecord, 0, len(raw.Tracks))
	for _, t := range raw.Tracks {
		records = append(records, StreamRecord{
			ID:         t.ID,
			Type:       CodecType(t.Type),
			Codec:      t.Codec,
			Properties: convertProperties(t.Properties),
		})
	}
	return records, nil
}

// --- mkvmerge identify wire types ---

type identifyOutput struct {
	Errors   []string        `json:"errors"`
	Warnings []string        `json:"warnings"`
	Tracks   []identifyTrack `json:"tracks"`
}

type identifyTrack struct {
	ID         int64                      `json:"id"`
	Type       string                     `json:"type"`
	Codec      string                     `json:"codec"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// convertProperties narrows raw JSON property values into the closed
// Value variant. Non-scalar properties (arrays, objects, null) have no
// representation and are left absent.
func convertProperties(raw map[string]json.RawMessage) map[string]Value {
	props := make(map[string]Value, len(raw))
	for field, msg := range raw {
		var v interface{}
		if err := json.Unmarshal(msg, &v); err != nil {
			continue
		}
		switch x := v.(type) {
		case string:
			props[field] = StringValue(x)
		case float64:
			props[field] = NumberValue(x)
		case bool:
			props[field] = BoolValue(x)
		}
	}
	return props
}
