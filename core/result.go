package core

import "github.com/sarchlab/adhocdec/instr"

const (
	// UnknownValue stands in for call arguments missing from the stack.
	UnknownValue = "<UNKNOWN_VALUE>"

	// MissingValue stands in for the value side of an assignment missing from
	// the stack.
	MissingValue = "<MISSING_VALUE>"
)

// Stats summarizes a run.
type Stats struct {
	Instructions int
	KindCounts   map[instr.Kind]int
	Placeholders int
	LineWarnings []LineWarning
	// OpenArrays counts array literals still under construction at the end of
	// the stream.
	OpenArrays int
}

func newStats() *Stats {
	return &Stats{
		KindCounts: make(map[instr.Kind]int),
	}
}

// Result is the output of a run: the reconstructed text of every source file
// seen in the listing.
type Result struct {
	Files *SourceMap
	Stats Stats
}
