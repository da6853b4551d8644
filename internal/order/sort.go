package order

import (
	"sort"

	"github.com/backmassage/mkvresort/internal/preset"
	"github.com/backmassage/mkvresort/internal/probe"
)

// Sort returns a new ordering of records according to spec. The input
// slice is not modified.
//
// Rules are applied as one stable sort each, in reverse declaration
// order: each pass only refines ties left by the one before, so the
// first-declared rule ends up with the highest priority (the classic
// least-significant-key-first technique). Records lacking a rule's field
// sort as the empty string. An empty spec returns the original order.
func Sort(records []probe.StreamRecord, spec preset.Spec) []probe.StreamRecord {
	sorted := make([]probe.StreamRecord, len(records))
	copy(sorted, records)

	for i := len(spec) - 1; i >= 0; i-- {
		rule := spec[i]
		sort.SliceStable(sorted, func(a, b int) bool {
			cmp := sorted[a].Property(rule.Field).Compare(sorted[b].Property(rule.Field))
			if rule.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return sorted
}
