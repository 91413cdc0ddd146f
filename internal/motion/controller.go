package motion

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// Errors reported for bodies the controller refuses to move.
var (
	ErrNilBody    = errors.New("motion: nil body")
	ErrNilKind    = errors.New("motion: body has no kind")
	ErrDimensions = errors.New("motion: dimension mismatch")
	ErrNonFinite  = errors.New("motion: non-finite value")
)

// Arena holds the playable extents for one tick, one entry per axis.
// Hosts rebuild it every tick from the live window size.
type Arena []float64

// NewArena creates a two-dimensional arena.
func NewArena(width, height float64) Arena {
	return Arena{width, height}
}

// Dims returns the number of axes.
func (a Arena) Dims() int {
	return len(a)
}

// Center returns the arena's centre point.
func (a Arena) Center() []float64 {
	c := make([]float64, len(a))
	for i, e := range a {
		c[i] = e / 2
	}
	return c
}

// Validate returns an error if any extent is NaN or infinite.
// Zero and negative extents are allowed and produce degenerate ranges.
func (a Arena) Validate() error {
	if len(a) == 0 {
		return fmt.Errorf("%w: arena has no axes", ErrDimensions)
	}
	for i, e := range a {
		if !finite(e) {
			return fmt.Errorf("%w: arena extent %d is %v", ErrNonFinite, i, e)
		}
	}
	return nil
}

// Kind holds the constants shared by every body of one entity kind.
type Kind struct {
	Name      string
	Footprint []float64 // Bounding extents, one per axis
	Speed     float64   // Distance per second for a unit direction

	// Reflect makes the controller flip the direction on an axis when the
	// body runs into an edge. Kinds without it are only clamped.
	Reflect bool
}

// EntityID identifies a body within its host's registry.
type EntityID uint64

// Body is the mutable motion state of a single entity.
type Body struct {
	ID        EntityID
	Kind      *Kind
	Position  []float64 // Centre position
	Direction []float64 // Only the signs and relative sizes matter; Kind.Speed scales it
}

// NewBody creates a body of the given kind. The position and direction
// slices are copied.
func NewBody(id EntityID, kind *Kind, position, direction []float64) *Body {
	return &Body{
		ID:        id,
		Kind:      kind,
		Position:  append([]float64(nil), position...),
		Direction: append([]float64(nil), direction...),
	}
}

// Tick carries the per-tick inputs supplied by the host.
type Tick struct {
	Arena   Arena
	Elapsed float64 // Seconds since the previous tick
}

// Bounce reports that a body was reflected off at least one arena edge
// during a tick. Hitting a corner produces a single Bounce listing both axes.
type Bounce struct {
	BodyID   EntityID
	Kind     *Kind
	Axes     []int
	Position []float64 // Position after clamping
}

// Controller advances and confines bodies. It holds no entity state of its
// own; the same controller can serve any number of batches.
type Controller struct {
	logger *log.Logger
}

// NewController creates a controller that reports skipped bodies to logger.
// A nil logger discards those reports.
func NewController(logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{logger: logger}
}

// Step moves every body once and returns the bounces that occurred, in the
// same order as bodies.
//
// For each body the new position is computed from its direction, the kind's
// speed and the elapsed time. On each axis where that position falls outside
// the valid range, the direction component is flipped (for reflecting
// kinds). Every axis is then clamped into range, so the flip happens once
// per crossing and the next tick starts back on the edge. Axes where the footprint does not fit the arena are pinned to
// the arena's midpoint and never bounce.
//
// Malformed bodies are logged and skipped; they never stop the rest of the
// batch. An invalid arena skips the whole tick and leaves all state as is.
func (c *Controller) Step(tick Tick, bodies []*Body) []Bounce {
	if err := tick.Arena.Validate(); err != nil {
		c.logger.Warn("skipping tick", "error", err)
		return nil
	}

	elapsed := tick.Elapsed
	if !finite(elapsed) || elapsed < 0 {
		c.logger.Warn("invalid elapsed time, treating as zero", "elapsed", elapsed)
		elapsed = 0
	}

	var bounces []Bounce
	for _, b := range bodies {
		if err := validateBody(tick.Arena, b); err != nil {
			c.logger.Warn("skipping body", "id", bodyID(b), "error", err)
			continue
		}
		if bounce, ok := advance(tick.Arena, elapsed, b); ok {
			bounces = append(bounces, bounce)
		}
	}
	return bounces
}

// Confine clamps a body into the arena without moving it or touching its
// direction. Hosts call it after a resize or right after spawning.
func (c *Controller) Confine(a Arena, b *Body) error {
	if err := validateBody(a, b); err != nil {
		return err
	}
	for i, r := range ComputeBounds(a, b.Kind.Footprint) {
		if r.Degenerate() {
			b.Position[i] = r.Mid()
			continue
		}
		b.Position[i] = r.Clamp(b.Position[i])
	}
	return nil
}

// advance applies one tick of motion to b. Direction update and clamping
// happen in a single pass so no body is ever left outside its range between
// the two.
func advance(a Arena, elapsed float64, b *Body) (Bounce, bool) {
	bounds := ComputeBounds(a, b.Kind.Footprint)
	speed := b.Kind.Speed * elapsed

	var axes []int
	for i, r := range bounds {
		p := b.Position[i] + b.Direction[i]*speed

		if r.Degenerate() {
			b.Position[i] = r.Mid()
			continue
		}

		if b.Kind.Reflect && r.Classify(p) != Within {
			b.Direction[i] = -b.Direction[i]
			axes = append(axes, i)
		}
		b.Position[i] = r.Clamp(p)
	}

	if len(axes) == 0 {
		return Bounce{}, false
	}
	return Bounce{
		BodyID:   b.ID,
		Kind:     b.Kind,
		Axes:     axes,
		Position: append([]float64(nil), b.Position...),
	}, true
}

func validateBody(a Arena, b *Body) error {
	if b == nil {
		return ErrNilBody
	}
	if b.Kind == nil {
		return ErrNilKind
	}

	dims := a.Dims()
	if len(b.Position) != dims || len(b.Direction) != dims || len(b.Kind.Footprint) != dims {
		return fmt.Errorf("%w: arena has %d axes, position %d, direction %d, footprint %d",
			ErrDimensions, dims, len(b.Position), len(b.Direction), len(b.Kind.Footprint))
	}

	if !finite(b.Kind.Speed) {
		return fmt.Errorf("%w: speed of kind %q", ErrNonFinite, b.Kind.Name)
	}
	for i := range dims {
		if !finite(b.Position[i]) || !finite(b.Direction[i]) || !finite(b.Kind.Footprint[i]) {
			return fmt.Errorf("%w: axis %d", ErrNonFinite, i)
		}
	}
	return nil
}

func bodyID(b *Body) any {
	if b == nil {
		return "nil"
	}
	return b.ID
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
