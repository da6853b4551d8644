// Package probe provides mkvmerge-based stream identification and typed
// result structures. A single JSON identify call per file yields every
// track with its property bag; Classify groups the tracks by codec type
// in the fixed video, audio, subtitles order.
//
// Property bags are heterogeneous and sparse, so values are held in a
// small closed variant (string, number, boolean, absent) rather than
// interface{}. Missing properties compare as the empty string, which
// keeps multi-key sorting total and type-safe.
package probe
