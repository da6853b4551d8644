package batch

import "github.com/backmassage/mkvresort/internal/preset"

// WorkItem is one batch unit: the merged contributions of the input,
// output, and preset lists for a single batch index. TrackOrder is
// attached once during the identify phase (one target order per input
// file, parallel to InputFiles) and consumed read-only by the remux
// phase.
type WorkItem struct {
	Batch       int
	InputGiven  string
	InputFiles  []string
	OutputPath  string
	OutputIsDir bool
	Spec        preset.Spec
	TrackOrder  [][]int64
}

// Files returns the number of input files in the batch.
func (w *WorkItem) Files() int { return len(w.InputFiles) }

// Reconcile merges the three argument lists by batch index into one
// ordered list of work items.
//
// Items appear in insertion order of each index's first appearance, not
// numeric order: indices are expected dense and ascending from 1, but
// nothing here assumes it. When two entries contribute the same field
// for one index, the later entry in argument order wins. Cardinality is
// validated by the resolvers; Reconcile never truncates.
func Reconcile(inputs []InputGroup, outputs []OutputGroup, presets []PresetGroup) []WorkItem {
	byBatch := make(map[int]*WorkItem)
	var order []int

	claim := func(batch int) *WorkItem {
		if w, ok := byBatch[batch]; ok {
			return w
		}
		w := &WorkItem{Batch: batch}
		byBatch[batch] = w
		order = append(order, batch)
		return w
	}

	for _, g := range inputs {
		w := claim(g.Batch)
		w.InputGiven = g.Given
		w.InputFiles = g.Resolved
	}
	for _, g := range outputs {
		w := claim(g.Batch)
		w.OutputPath = g.Resolved
		w.OutputIsDir = g.IsDir
	}
	for _, g := range presets {
		w := claim(g.Batch)
		w.Spec = g.Spec
	}

	items := make([]WorkItem, len(order))
	for i, batch := range order {
		items[i] = *byBatch[batch]
	}
	return items
}
