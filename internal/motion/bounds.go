// Package motion keeps moving sprites inside a rectangular (or D-dimensional)
// arena. It has two parts: a boundary calculator that turns arena and
// footprint extents into per-axis ranges of valid centre positions, and a
// controller that advances bodies, reflects them off the edges and clamps
// them back into range once per tick.
//
// The package is pure logic: no rendering, no audio, no timers. Hosts feed
// it the arena size and elapsed time every tick and consume the returned
// bounce events.
package motion

import "fmt"

// Status classifies a coordinate against a Range.
type Status int

const (
	Within Status = iota // Min <= v <= Max
	Below                // v < Min
	Above                // v > Max
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case Within:
		return "Within"
	case Below:
		return "Below"
	case Above:
		return "Above"
	default:
		return "Unknown"
	}
}

// Range is the inclusive interval of valid centre positions on one axis.
// Min > Max when the footprint is larger than the arena on that axis.
type Range struct {
	Min, Max float64
}

// Classify reports whether v is below, within or above the range.
// Both ends are inclusive, so a value sitting exactly on an edge is Within.
func (r Range) Classify(v float64) Status {
	if v < r.Min {
		return Below
	}
	if v > r.Max {
		return Above
	}
	return Within
}

// Clamp restricts v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if v > r.Max {
		v = r.Max
	}
	if v < r.Min {
		v = r.Min
	}
	return v
}

// Degenerate reports whether no position satisfies the range.
func (r Range) Degenerate() bool {
	return r.Min > r.Max
}

// Mid returns the midpoint between Min and Max. For ranges produced by
// ComputeBounds this is always the arena's centre on that axis.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// ComputeBounds returns one Range per axis for a sprite with the given
// footprint inside an arena with the given extents:
//
//	half = footprint/2; min = half; max = arena - half
//
// Any finite input is accepted. If the slices differ in length, only the
// common prefix is used.
func ComputeBounds(arena, footprint []float64) []Range {
	n := min(len(arena), len(footprint))
	ranges := make([]Range, n)
	for i := range n {
		half := footprint[i] / 2
		ranges[i] = Range{Min: half, Max: arena[i] - half}
	}
	return ranges
}
