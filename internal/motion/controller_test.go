package motion

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enemyKind() *Kind {
	return &Kind{Name: "enemy", Footprint: []float64{64, 64}, Speed: 200, Reflect: true}
}

func TestStepBounceOffLeftEdge(t *testing.T) {
	c := NewController(nil)
	b := NewBody(1, enemyKind(), []float64{34, 300}, []float64{-1, 0})

	bounces := c.Step(Tick{Arena: NewArena(800, 600), Elapsed: 0.1}, []*Body{b})

	require.Len(t, bounces, 1)
	assert.Equal(t, EntityID(1), bounces[0].BodyID)
	assert.Equal(t, []int{0}, bounces[0].Axes)
	assert.Equal(t, []float64{1, 0}, b.Direction)
	assert.InDelta(t, 32, b.Position[0], 1e-9)
	assert.InDelta(t, 300, b.Position[1], 1e-9)
	assert.Equal(t, b.Position, bounces[0].Position)
}

func TestStepExactlyAtEdgeDoesNotBounce(t *testing.T) {
	c := NewController(nil)
	b := NewBody(1, enemyKind(), []float64{32, 300}, []float64{-1, 0})

	// Zero elapsed time leaves the body sitting on the edge.
	bounces := c.Step(Tick{Arena: NewArena(800, 600), Elapsed: 0}, []*Body{b})

	assert.Empty(t, bounces)
	assert.Equal(t, []float64{-1, 0}, b.Direction)
	assert.Equal(t, 32.0, b.Position[0])
}

func TestStepCornerHitIsSingleBounce(t *testing.T) {
	c := NewController(nil)
	b := NewBody(7, enemyKind(), []float64{760, 560}, []float64{1, 1})

	bounces := c.Step(Tick{Arena: NewArena(800, 600), Elapsed: 0.1}, []*Body{b})

	require.Len(t, bounces, 1)
	assert.Equal(t, []int{0, 1}, bounces[0].Axes)
	assert.Equal(t, []float64{-1, -1}, b.Direction)
	assert.Equal(t, []float64{768, 568}, b.Position)
}

func TestStepFlipsOncePerCrossing(t *testing.T) {
	c := NewController(nil)
	b := NewBody(1, enemyKind(), []float64{40, 300}, []float64{-1, 0})
	tick := Tick{Arena: NewArena(800, 600), Elapsed: 0.1}

	total := 0
	for range 5 {
		total += len(c.Step(tick, []*Body{b}))
	}

	assert.Equal(t, 1, total)
	assert.Equal(t, 1.0, b.Direction[0])
	assert.Greater(t, b.Position[0], 32.0)
}

func TestStepOutsideRangeAlwaysFlips(t *testing.T) {
	// A body left outside the range, for example by a shrinking window,
	// bounces even when its direction already points back inside.
	c := NewController(nil)
	b := NewBody(1, enemyKind(), []float64{900, 300}, []float64{-1, 0})

	bounces := c.Step(Tick{Arena: NewArena(800, 600), Elapsed: 0.01}, []*Body{b})

	require.Len(t, bounces, 1)
	assert.Equal(t, []int{0}, bounces[0].Axes)
	assert.Equal(t, 1.0, b.Direction[0])
	assert.Equal(t, 768.0, b.Position[0])
}

func TestStepNegativeSpeedStillReflects(t *testing.T) {
	c := NewController(nil)
	kind := enemyKind()
	kind.Speed = -200
	b := NewBody(1, kind, []float64{34, 300}, []float64{1, 0})
	tick := Tick{Arena: NewArena(800, 600), Elapsed: 0.01}

	total := 0
	for range 10 {
		total += len(c.Step(tick, []*Body{b}))
	}

	assert.Equal(t, 1, total)
	assert.Equal(t, -1.0, b.Direction[0])
	assert.Greater(t, b.Position[0], 32.0, "the body moves away from the edge")
}

func TestStepNonReflectingKindOnlyClamps(t *testing.T) {
	c := NewController(nil)
	player := &Kind{Name: "player", Footprint: []float64{64, 64}, Speed: 500}
	b := NewBody(1, player, []float64{40, 40}, []float64{-1, -1})

	bounces := c.Step(Tick{Arena: NewArena(800, 600), Elapsed: 1}, []*Body{b})

	assert.Empty(t, bounces)
	assert.Equal(t, []float64{-1, -1}, b.Direction)
	assert.Equal(t, []float64{32, 32}, b.Position)
}

func TestStepInwardMotionNeverBounces(t *testing.T) {
	c := NewController(nil)
	kind := &Kind{Name: "slow", Footprint: []float64{2, 2}, Speed: 1, Reflect: true}
	b := NewBody(1, kind, []float64{10, 10}, []float64{1, 1})
	tick := Tick{Arena: NewArena(100, 100), Elapsed: 1}

	for i := range 50 {
		before := append([]float64(nil), b.Position...)
		bounces := c.Step(tick, []*Body{b})
		require.Empty(t, bounces, "tick %d", i)
		for axis, r := range ComputeBounds(tick.Arena, kind.Footprint) {
			assert.Equal(t, before[axis]+1, b.Position[axis])
			assert.Equal(t, b.Position[axis], r.Clamp(b.Position[axis]))
		}
	}
}

func TestStepPostTickInvariant(t *testing.T) {
	c := NewController(nil)
	rng := rand.New(rand.NewSource(99))
	arena := NewArena(120, 40)
	kind := &Kind{Name: "enemy", Footprint: []float64{3, 2}, Speed: 90, Reflect: true}

	bodies := make([]*Body, 40)
	for i := range bodies {
		pos := []float64{rng.Float64()*400 - 140, rng.Float64()*200 - 80}
		dir := []float64{rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		bodies[i] = NewBody(EntityID(i), kind, pos, dir)
	}

	for tick := range 200 {
		elapsed := rng.Float64() * 0.5
		c.Step(Tick{Arena: arena, Elapsed: elapsed}, bodies)

		for _, b := range bodies {
			for axis, r := range ComputeBounds(arena, kind.Footprint) {
				require.GreaterOrEqual(t, b.Position[axis], r.Min, "tick %d body %d", tick, b.ID)
				require.LessOrEqual(t, b.Position[axis], r.Max, "tick %d body %d", tick, b.ID)
			}
		}
	}
}

func TestStepDegenerateAxisPinnedToMidpoint(t *testing.T) {
	c := NewController(nil)
	kind := &Kind{Name: "huge", Footprint: []float64{10, 50}, Speed: 100, Reflect: true}
	b := NewBody(1, kind, []float64{20, 3}, []float64{0, 1})
	tick := Tick{Arena: NewArena(80, 24), Elapsed: 0.5}

	for range 10 {
		assert.Empty(t, c.Step(tick, []*Body{b}))
		assert.Equal(t, 12.0, b.Position[1])
		assert.Equal(t, 1.0, b.Direction[1], "degenerate axis must not flip")
	}
}

func TestStepZeroDirectionStaysZero(t *testing.T) {
	c := NewController(nil)
	b := NewBody(1, enemyKind(), []float64{0, 0}, []float64{0, 0})

	// Out of range on both axes: reported once, clamped, still at rest.
	bounces := c.Step(Tick{Arena: NewArena(800, 600), Elapsed: 0.1}, []*Body{b})

	require.Len(t, bounces, 1)
	assert.Equal(t, []int{0, 1}, bounces[0].Axes)
	assert.Zero(t, b.Direction[0])
	assert.Zero(t, b.Direction[1])
	assert.Equal(t, []float64{32, 32}, b.Position)

	bounces = c.Step(Tick{Arena: NewArena(800, 600), Elapsed: 0.1}, []*Body{b})
	assert.Empty(t, bounces)
}

func TestStepSkipsMalformedBodies(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(log.New(&buf))
	kind := enemyKind()

	good := NewBody(1, kind, []float64{34, 300}, []float64{-1, 0})
	bodies := []*Body{
		nil,
		{ID: 2, Position: []float64{1, 1}, Direction: []float64{1, 1}},
		NewBody(3, kind, []float64{1, 2, 3}, []float64{1, 0}),
		NewBody(4, kind, []float64{math.NaN(), 2}, []float64{1, 0}),
		good,
	}

	bounces := c.Step(Tick{Arena: NewArena(800, 600), Elapsed: 0.1}, bodies)

	require.Len(t, bounces, 1)
	assert.Equal(t, EntityID(1), bounces[0].BodyID)
	assert.Equal(t, []float64{1, 2, 3}, bodies[2].Position, "skipped body must be untouched")
	assert.Contains(t, buf.String(), "skipping body")
}

func TestStepInvalidArenaSkipsTick(t *testing.T) {
	c := NewController(nil)
	b := NewBody(1, enemyKind(), []float64{100, 100}, []float64{1, 0})

	bounces := c.Step(Tick{Arena: Arena{math.Inf(1), 600}, Elapsed: 0.1}, []*Body{b})

	assert.Nil(t, bounces)
	assert.Equal(t, []float64{100, 100}, b.Position)
}

func TestStepNegativeElapsedTreatedAsZero(t *testing.T) {
	c := NewController(nil)
	b := NewBody(1, enemyKind(), []float64{100, 100}, []float64{1, 0})

	c.Step(Tick{Arena: NewArena(800, 600), Elapsed: -3}, []*Body{b})

	assert.Equal(t, []float64{100, 100}, b.Position)
}

func TestStepThreeDimensions(t *testing.T) {
	c := NewController(nil)
	kind := &Kind{Name: "cube", Footprint: []float64{2, 2, 2}, Speed: 10, Reflect: true}
	b := NewBody(1, kind, []float64{5, 5, 1.5}, []float64{0, 0, -1})

	bounces := c.Step(Tick{Arena: Arena{10, 10, 10}, Elapsed: 0.1}, []*Body{b})

	require.Len(t, bounces, 1)
	assert.Equal(t, []int{2}, bounces[0].Axes)
	assert.Equal(t, []float64{5, 5, 1}, b.Position)
	assert.Equal(t, 1.0, b.Direction[2])
}

func TestConfine(t *testing.T) {
	c := NewController(nil)
	b := NewBody(1, enemyKind(), []float64{-20, 900}, []float64{1, 1})

	require.NoError(t, c.Confine(NewArena(800, 600), b))
	assert.Equal(t, []float64{32, 568}, b.Position)
	assert.Equal(t, []float64{1, 1}, b.Direction)

	assert.ErrorIs(t, c.Confine(NewArena(800, 600), nil), ErrNilBody)
	assert.ErrorIs(t, c.Confine(Arena{800}, b), ErrDimensions)
}

func TestArena(t *testing.T) {
	a := NewArena(80, 24)
	assert.Equal(t, 2, a.Dims())
	assert.Equal(t, []float64{40, 12}, a.Center())
	assert.NoError(t, a.Validate())
	assert.ErrorIs(t, Arena{}.Validate(), ErrDimensions)
	assert.ErrorIs(t, Arena{1, math.NaN()}.Validate(), ErrNonFinite)
}
