package order

import (
	"github.com/backmassage/mkvresort/internal/preset"
	"github.com/backmassage/mkvresort/internal/probe"
)

// Permutation turns natural (the original track-id order of one codec
// group) into the id sequence that realizes the sorted arrangement.
//
// Working left to right on a copy of natural, each position that does
// not already hold the id the sorted order specifies for it is fixed by
// swapping that id in from wherever it currently sits. The repeated
// positional swap, rather than a full re-sort, leaves ties not touched
// by a required swap in their original relative order. The result is
// always a permutation of natural: no id is invented or dropped, even
// when a record has nothing to sort on.
func Permutation(natural []int64, sorted []probe.StreamRecord) []int64 {
	ids := make([]int64, len(natural))
	copy(ids, natural)

	for pos := range ids {
		if pos >= len(sorted) {
			break
		}
		want := sorted[pos].ID
		if ids[pos] == want {
			continue
		}
		if cur := indexOf(ids, want); cur >= 0 {
			ids[pos], ids[cur] = ids[cur], ids[pos]
		}
	}
	return ids
}

// indexOf returns the position of id in ids, or -1.
func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// TrackOrder computes one file's flat track order: each codec group is
// sorted by spec, resolved into an id permutation, and the per-group
// sequences are concatenated in the video, audio, subtitles group order
// of the classification.
func TrackOrder(c probe.Classification, spec preset.Spec) []int64 {
	var flat []int64
	for _, g := range c.Groups {
		flat = append(flat, Permutation(g.IDs(), Sort(g.Records, spec))...)
	}
	return flat
}
