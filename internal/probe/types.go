package probe

import (
	"strconv"
	"strings"
)

// CodecType is the stream class reported by mkvmerge identify.
type CodecType string

const (
	Video     CodecType = "video"
	Audio     CodecType = "audio"
	Subtitles CodecType = "subtitles"
)

// CodecTypes is the canonical group order wherever streams are grouped
// or track orders are concatenated.
var CodecTypes = []CodecType{Video, Audio, Subtitles}

// Kind discriminates the closed set of property value types.
type Kind int

const (
	Absent Kind = iota
	String
	Number
	Bool
)

// Value is one stream property: a string, a number, a boolean, or absent.
// The zero Value is Absent.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// StringValue wraps a string property.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// NumberValue wraps a numeric property.
func NumberValue(f float64) Value { return Value{kind: Number, num: f} }

// BoolValue wraps a boolean property.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// Kind returns the value's discriminator.
func (v Value) Kind() Kind { return v.kind }

// Text returns the canonical string form: the string itself, a shortest
// round-trip float, "true"/"false", or "" when absent.
func (v Value) Text() string {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Compare orders two values. Same-kind values compare naturally (numbers
// numerically, false before true); everything else, including the absent
// sentinel, compares by canonical string form. The result is -1, 0, or 1.
func (v Value) Compare(o Value) int {
	// The absent sentinel participates as the empty string.
	a, b := v, o
	if a.kind == Absent {
		a = StringValue("")
	}
	if b.kind == Absent {
		b = StringValue("")
	}

	switch {
	case a.kind == Number && b.kind == Number:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case a.kind == Bool && b.kind == Bool:
		switch {
		case !a.b && b.b:
			return -1
		case a.b && !b.b:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Text(), b.Text())
}

// StreamRecord is one probed track: its id (unique within a file), codec
// type, codec label, and sparse property bag. Records are immutable once
// built.
type StreamRecord struct {
	ID         int64
	Type       CodecType
	Codec      string
	Properties map[string]Value
}

// Property returns the named property, or the absent Value when the
// record does not carry it.
func (r StreamRecord) Property(field string) Value {
	return r.Properties[field]
}

// Group is the ordered set of records sharing one codec type.
type Group struct {
	Type    CodecType
	Records []StreamRecord
}

// Count returns the number of records in the group.
func (g Group) Count() int { return len(g.Records) }

// IDs returns the record ids in group order.
func (g Group) IDs() []int64 {
	ids := make([]int64, len(g.Records))
	for i, r := range g.Records {
		ids[i] = r.ID
	}
	return ids
}

// Classification holds the probed streams of one file grouped by codec
// type, always in video, audio, subtitles order. Types with no streams
// are present as empty groups.
type Classification struct {
	Groups []Group
}

// Group returns the group for t. Types outside the canonical three
// return an empty group.
func (c Classification) Group(t CodecType) Group {
	for _, g := range c.Groups {
		if g.Type == t {
			return g
		}
	}
	return Group{Type: t}
}

// TotalStreams returns the stream count across all groups.
func (c Classification) TotalStreams() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Records)
	}
	return n
}

// Classify groups records by codec type, preserving record order within
// each group. The result always contains the three canonical groups in
// fixed order; records of any other type are dropped, matching the
// identify contract of keeping only remuxable stream classes.
func Classify(records []StreamRecord) Classification {
	c := Classification{Groups: make([]Group, len(CodecTypes))}
	index := make(map[CodecType]int, len(CodecTypes))
	for i, t := range CodecTypes {
		c.Groups[i] = Group{Type: t}
		index[t] = i
	}
	for _, r := range records {
		i, ok := index[r.Type]
		if !ok {
			continue
		}
		c.Groups[i].Records = append(c.Groups[i].Records, r)
	}
	return c
}
