// Package preset loads sort presets: ordered JSON mappings from stream
// property name to sort direction. Key order in the file is significant
// (first rule has the highest priority), so the loader walks the JSON
// token stream instead of unmarshalling into a map.
package preset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Rule is a single sort criterion: a stream property name and a direction.
type Rule struct {
	Field      string
	Descending bool
}

// Spec is an ordered list of sort rules. Rules earlier in the list take
// priority; later rules only break ties. An empty Spec leaves streams in
// their probed order.
type Spec []Rule

// Load reads a preset file of the form {"field": true, ...} where the
// boolean selects descending order. Declaration order is preserved.
// A duplicate field updates the direction of the rule already declared.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", path, err)
	}
	return spec, nil
}

// Parse decodes preset JSON preserving key order. Exported for testing
// without fixture files.
func Parse(data []byte) (Spec, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse preset JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("preset must be a JSON object, got %v", tok)
	}

	var spec Spec
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse preset JSON: %w", err)
		}
		field := keyTok.(string)

		var descending bool
		if err := dec.Decode(&descending); err != nil {
			return nil, fmt.Errorf("preset field %q: direction must be a boolean: %w", field, err)
		}

		if i, ok := seen[field]; ok {
			spec[i].Descending = descending
			continue
		}
		seen[field] = len(spec)
		spec = append(spec, Rule{Field: field, Descending: descending})
	}

	// Consume the closing brace so trailing garbage is reported.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse preset JSON: %w", err)
	}
	return spec, nil
}

// Fields returns the rule field names in declaration order.
func (s Spec) Fields() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Field
	}
	return out
}
