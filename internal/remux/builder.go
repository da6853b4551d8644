package remux

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containerExt is the canonical output extension; every output is a
// Matroska container regardless of the extension the user supplied.
const containerExt = ".mkv"

// DefaultSuffix is appended to the input stem for directory outputs so
// a resorted copy never collides with its source.
const DefaultSuffix = " (1)"

// OutputFile resolves the concrete output path for one input file.
// Directory targets get "<stem><suffix>.mkv" inside the directory; file
// targets are used as given with the extension forced to .mkv.
func OutputFile(input, output string, outputIsDir bool, suffix string) string {
	if outputIsDir {
		base := filepath.Base(input)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		return filepath.Join(output, stem+suffix+containerExt)
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + containerExt
}

// EncodeTrackOrder renders a flat id sequence as the mkvmerge
// --track-order value: container-index:track-id pairs, comma separated.
// All tracks come from the single input container, index 0.
func EncodeTrackOrder(order []int64) string {
	pairs := make([]string, len(order))
	for i, id := range order {
		pairs[i] = fmt.Sprintf("0:%d", id)
	}
	return strings.Join(pairs, ",")
}

// BuildArgs assembles the mkvmerge argument list for one remux. The
// parenthesised input group applies the track order to all tracks of
// that single container. A file with no tracks gets no --track-order
// directive at all.
func BuildArgs(outputFile, input string, order []int64) []string {
	args := []string{
		"--output", outputFile,
		"(", input, ")",
	}
	if len(order) > 0 {
		args = append(args, "--track-order", EncodeTrackOrder(order))
	}
	return args
}
