package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/mkvresort/internal/preset"
)

// InputGroup is one resolved -i argument: the path as given and the
// ordered files behind it (itself for a file, a recursive scan for a
// directory).
type InputGroup struct {
	Batch    int
	Given    string
	Resolved []string
}

// OutputGroup is one resolved -o argument. A value with an extension is
// a file target; anything else is a directory target.
type OutputGroup struct {
	Batch    int
	Given    string
	Resolved string
	IsDir    bool
}

// PresetGroup is one resolved -p argument with its loaded sort spec.
type PresetGroup struct {
	Batch int
	Path  string
	Spec  preset.Spec
}

// ResolveInputs validates every input path and expands directories into
// their contained container files. Batch indices are assigned by
// argument position, 1-based.
func ResolveInputs(paths []string) ([]InputGroup, error) {
	groups := make([]InputGroup, 0, len(paths))
	for i, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, &PathError{Path: p, Reason: "input path does not exist", Err: err}
		}

		var resolved []string
		if fi.IsDir() {
			resolved, err = ScanDir(p)
			if err != nil {
				return nil, &PathError{Path: p, Reason: "cannot scan directory", Err: err}
			}
			if len(resolved) == 0 {
				return nil, &PathError{Path: p, Reason: "no mkv files found in directory"}
			}
		} else {
			resolved = []string{p}
		}

		groups = append(groups, InputGroup{Batch: i + 1, Given: p, Resolved: resolved})
	}
	return groups, nil
}

// ScanDir walks dir recursively and returns all .mkv files
// (case-insensitive) sorted lexicographically for a deterministic
// processing order.
func ScanDir(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".mkv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ResolveOutputs validates every output path and classifies it as file
// or directory target. The output count must match the input count; a
// file target's parent directory must already exist, a directory target
// is created when missing.
func ResolveOutputs(paths []string, inputCount int) ([]OutputGroup, error) {
	if len(paths) != inputCount {
		return nil, &CardinalityError{Option: "output", Inputs: inputCount, Got: len(paths)}
	}

	groups := make([]OutputGroup, 0, len(paths))
	for i, p := range paths {
		g := OutputGroup{Batch: i + 1, Given: p, Resolved: p}
		if filepath.Ext(p) != "" {
			parent := filepath.Dir(p)
			fi, err := os.Stat(parent)
			if err != nil || !fi.IsDir() {
				return nil, &PathError{Path: p, Reason: "parent directory of output file does not exist", Err: err}
			}
		} else {
			if err := os.MkdirAll(p, 0o755); err != nil {
				return nil, &PathError{Path: p, Reason: "cannot create output directory", Err: err}
			}
			g.IsDir = true
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ResolvePresets loads every preset file into a sort spec. The preset
// count must equal the input count or be exactly one; a single preset is
// broadcast to all batches (sharing the loaded spec read-only).
func ResolvePresets(paths []string, inputCount int) ([]PresetGroup, error) {
	if len(paths) != inputCount && len(paths) != 1 {
		return nil, &CardinalityError{Option: "preset", Inputs: inputCount, Got: len(paths)}
	}

	if len(paths) == 1 && inputCount > 1 {
		expanded := make([]string, inputCount)
		for i := range expanded {
			expanded[i] = paths[0]
		}
		paths = expanded
	}

	groups := make([]PresetGroup, 0, len(paths))
	loaded := make(map[string]preset.Spec)
	for i, p := range paths {
		spec, ok := loaded[p]
		if !ok {
			fi, err := os.Stat(p)
			if err != nil {
				return nil, &PathError{Path: p, Reason: "preset path does not exist", Err: err}
			}
			if fi.IsDir() {
				return nil, &PathError{Path: p, Reason: "preset is not a file"}
			}
			spec, err = preset.Load(p)
			if err != nil {
				return nil, &PathError{Path: p, Reason: "cannot load preset", Err: err}
			}
			loaded[p] = spec
		}
		groups = append(groups, PresetGroup{Batch: i + 1, Path: p, Spec: spec})
	}
	return groups, nil
}
