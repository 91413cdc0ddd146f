package arena

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ball-arena/internal/config"
	"github.com/vovakirdan/ball-arena/internal/core"
	"github.com/vovakirdan/ball-arena/internal/motion"
	"github.com/vovakirdan/ball-arena/internal/registry"
)

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// emptyConfig has no initial entities, no timed spawns and a fixed
// difficulty, so tests can place everything by hand.
func emptyConfig() config.ArenaConfig {
	cfg := config.DefaultArenaConfig()
	cfg.Enemies.Count = 0
	cfg.Enemies.SpawnInterval = 0
	cfg.Stars.Count = 0
	cfg.Stars.SpawnInterval = 0
	cfg.Difficulty.Enabled = false
	return cfg
}

func newEmptyGame(t *testing.T, mode Mode) *Game {
	t.Helper()
	g := NewWithConfig(mode, emptyConfig())
	g.Reset(runtimeConfig(1))
	require.NotNil(t, g.World().Player())
	return g
}

func place(b *motion.Body, pos, dir []float64) {
	copy(b.Position, pos)
	copy(b.Direction, dir)
}

func held(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// assertInside checks that every body lies within its kind's bounds.
func assertInside(t *testing.T, g *Game) {
	t.Helper()
	for _, b := range g.World().All() {
		for i, r := range motion.ComputeBounds(g.Arena(), b.Kind.Footprint) {
			assert.Equal(t, motion.Within, r.Classify(b.Position[i]),
				"%s %d axis %d at %v outside %v", b.Kind.Name, b.ID, i, b.Position[i], r)
		}
	}
}

func TestGameReset(t *testing.T) {
	g := NewWithConfig(ModeNormal, config.DefaultArenaConfig())
	g.Reset(runtimeConfig(42))

	cfg := config.DefaultArenaConfig()
	assert.Len(t, g.World().Enemies(), cfg.Enemies.Count)
	assert.Len(t, g.World().Stars(), cfg.Stars.Count)
	assert.Equal(t, []float64{40, 11.5}, g.World().Player().Position)
	assert.Equal(t, motion.Arena{80, 23}, g.Arena())
	assert.Equal(t, core.GameState{}, g.State())
	assertInside(t, g)

	for range 30 {
		g.Step(held(core.ActionRight))
	}
	g.Reset(runtimeConfig(42))
	assert.Equal(t, []float64{40, 11.5}, g.World().Player().Position)
	assert.Equal(t, RunStats{}, g.Stats())
}

func TestEnemiesStartWithPositiveDirection(t *testing.T) {
	g := NewWithConfig(ModeNormal, config.DefaultArenaConfig())
	g.Reset(runtimeConfig(7))

	for _, e := range g.World().Enemies() {
		assert.InDelta(t, 1.0, e.Direction[0]*e.Direction[0]+e.Direction[1]*e.Direction[1], 1e-9)
		assert.GreaterOrEqual(t, e.Direction[0], 0.0)
		assert.GreaterOrEqual(t, e.Direction[1], 0.0)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		switch (i / 40) % 4 {
		case 0:
			inputs[i] = held(core.ActionRight)
		case 1:
			inputs[i] = held(core.ActionDown, core.ActionLeft)
		case 2:
			inputs[i] = held(core.ActionUp)
		default:
			inputs[i] = held()
		}
	}

	run := func() *Game {
		g := NewWithConfig(ModeZen, config.DefaultArenaConfig())
		g.Reset(runtimeConfig(12345))
		for _, in := range inputs {
			g.Step(in)
		}
		return g
	}

	g1, g2 := run(), run()
	assert.Equal(t, g1.State(), g2.State())
	assert.Equal(t, g1.Stats(), g2.Stats())
	require.Len(t, g2.World().All(), len(g1.World().All()))
	for i, b := range g1.World().All() {
		assert.Equal(t, b.Position, g2.World().All()[i].Position)
	}
}

func TestPlayerMovement(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	p := g.World().Player()

	g.Step(held(core.ActionRight))
	assert.InDelta(t, 40.5, p.Position[0], 1e-9)
	assert.InDelta(t, 11.5, p.Position[1], 1e-9)

	// Diagonal movement is normalised.
	g.Step(held(core.ActionRight, core.ActionDown))
	step := 0.5 / 1.4142135623730951
	assert.InDelta(t, 40.5+step, p.Position[0], 1e-9)
	assert.InDelta(t, 11.5+step, p.Position[1], 1e-9)

	// Opposite keys cancel out.
	before := append([]float64(nil), p.Position...)
	g.Step(held(core.ActionLeft, core.ActionRight))
	assert.Equal(t, before, p.Position)
}

func TestPlayerStopsAtEdges(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	p := g.World().Player()

	for range 600 {
		res := g.Step(held(core.ActionUp, core.ActionLeft))
		assert.Zero(t, res.Count(core.EventBounce), "the player never bounces")
	}
	assert.Equal(t, []float64{1, 0.5}, p.Position)
	assert.Equal(t, []float64{-1 / 1.4142135623730951, -1 / 1.4142135623730951}, p.Direction)
}

func TestEnemyBounceEvent(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	e := g.World().SpawnEnemy(g.Arena())
	place(e, []float64{78.9, 5}, []float64{1, 0})

	res := g.Step(held())
	require.Equal(t, 1, res.Count(core.EventBounce))
	assert.Equal(t, uint64(e.ID), res.Events[0].EntityID)
	assert.Equal(t, 79.0, e.Position[0])
	assert.Equal(t, -1.0, e.Direction[0])
	assert.Equal(t, 1, g.Stats().Bounces)

	// Heading back inwards: no second bounce.
	res = g.Step(held())
	assert.Zero(t, res.Count(core.EventBounce))
}

func TestEnemyCornerBounceIsOneEvent(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	e := g.World().SpawnEnemy(g.Arena())
	place(e, []float64{1.05, 0.55}, []float64{-0.6, -0.8})

	res := g.Step(held())
	assert.Equal(t, 1, res.Count(core.EventBounce))
	assert.Equal(t, []float64{0.6, 0.8}, e.Direction)
}

func TestCollectStar(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	star := g.World().SpawnStar(g.Arena())
	place(star, []float64{40.5, 11.5}, nil)
	other := g.World().SpawnStar(g.Arena())
	place(other, []float64{5.5, 5.5}, nil)

	res := g.Step(held())
	require.Equal(t, 1, res.Count(core.EventStar))
	assert.Equal(t, uint64(star.ID), res.Events[0].EntityID)
	assert.Equal(t, emptyConfig().Stars.Points, g.State().Score)
	assert.Equal(t, 1, g.Stats().Stars)
	require.Len(t, g.World().Stars(), 1)
	assert.Equal(t, other.ID, g.World().Stars()[0].ID)
}

func TestEnemyHitEndsGame(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	e := g.World().SpawnEnemy(g.Arena())
	place(e, []float64{40, 11.5}, []float64{0, 0})

	res := g.Step(held())
	assert.True(t, res.State.GameOver)
	require.Equal(t, 1, res.Count(core.EventHit))
	assert.Equal(t, uint64(e.ID), res.Events[len(res.Events)-1].EntityID)

	// A finished game ignores input and produces no events.
	before := append([]float64(nil), g.World().Player().Position...)
	res = g.Step(held(core.ActionRight))
	assert.Empty(t, res.Events)
	assert.Equal(t, before, g.World().Player().Position)
}

func TestZenModeSurvivesHits(t *testing.T) {
	g := newEmptyGame(t, ModeZen)
	e := g.World().SpawnEnemy(g.Arena())
	place(e, []float64{40, 11.5}, []float64{0, 0})

	for range 10 {
		res := g.Step(held())
		assert.False(t, res.State.GameOver)
		assert.Zero(t, res.Count(core.EventHit))
	}
	assert.Equal(t, "arena_zen", g.ID())
	assert.Equal(t, "Ball Arena (Zen)", g.Title())
}

func TestPause(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	p := g.World().Player()

	res := g.Step(held(core.ActionPause))
	assert.True(t, res.State.Paused)

	before := append([]float64(nil), p.Position...)
	g.Step(held(core.ActionRight))
	assert.Equal(t, before, p.Position)

	res = g.Step(held(core.ActionPause))
	assert.False(t, res.State.Paused)
}

func TestTimedSpawns(t *testing.T) {
	cfg := emptyConfig()
	cfg.Stars.SpawnInterval = 1
	cfg.Stars.Max = 2
	cfg.Enemies.SpawnInterval = 1
	cfg.Enemies.Max = 1

	g := NewWithConfig(ModeZen, cfg)
	g.Reset(runtimeConfig(3))

	for range 70 {
		g.Step(held())
	}
	assert.Equal(t, 1, len(g.World().Stars())+g.Stats().Stars)
	assert.Len(t, g.World().Enemies(), 1)

	for range 600 {
		g.Step(held())
	}
	assert.LessOrEqual(t, len(g.World().Stars()), cfg.Stars.Max)
	assert.Len(t, g.World().Enemies(), cfg.Enemies.Max)
}

func TestEntitiesStayInsideArena(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	cfg.Enemies.Count = 12
	cfg.Enemies.Speed = 40

	g := NewWithConfig(ModeZen, cfg)
	g.Reset(runtimeConfig(99))

	moves := []core.Action{core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft}
	for i := range 1200 {
		g.Step(held(moves[(i/90)%len(moves)]))
		assertInside(t, g)
	}
	assert.Positive(t, g.Stats().Bounces)
}

func TestResizeKeepsEntitiesInside(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	g := NewWithConfig(ModeZen, cfg)
	g.Reset(runtimeConfig(5))
	for range 30 {
		g.Step(held(core.ActionRight))
	}
	score := g.State().Score

	small := runtimeConfig(5)
	small.ScreenW, small.ScreenH = 20, 10
	g.Resize(small)

	assert.Equal(t, motion.Arena{20, 9}, g.Arena())
	assertInside(t, g)
	assert.Equal(t, score, g.State().Score, "resize does not restart the run")

	for range 120 {
		g.Step(held(core.ActionDown))
		assertInside(t, g)
	}
}

func TestResizeTooSmallPinsToMidpoint(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	g.Resize(core.RuntimeConfig{ScreenW: 1, ScreenH: 1, TickRate: 60})

	// Player is 2x1 and the arena is 1x0: both axes are degenerate.
	assert.Equal(t, []float64{0.5, 0}, g.World().Player().Position)
	g.Step(held(core.ActionRight))
	assert.Equal(t, []float64{0.5, 0}, g.World().Player().Position)
}

func TestStatsDuration(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	for range 60 {
		g.Step(held())
	}
	assert.InDelta(t, 1.0, g.Stats().Duration.Seconds(), 1e-6)
}

func TestRender(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	star := g.World().SpawnStar(g.Arena())
	place(star, []float64{10.5, 4.5}, nil)
	enemy := g.World().SpawnEnemy(g.Arena())
	place(enemy, []float64{60, 18.5}, []float64{0, 0})

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	assert.Contains(t, screen.Row(0), "Score: 0")
	// Player 2x1 centred at (40, 11.5) covers cells 39-40 of arena row 11.
	assert.Equal(t, PlayerChar, screen.Get(39, 12))
	assert.Equal(t, PlayerChar, screen.Get(40, 12))
	assert.Equal(t, StarChar, screen.Get(10, 5))
	assert.Equal(t, EnemyChar, screen.Get(59, 19))
	assert.Equal(t, core.ColorBrightRed, screen.GetCell(60, 19).Color)

	place(enemy, []float64{40, 11.5}, []float64{0, 0})
	g.Step(held())
	g.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "GAME OVER"))
}

func TestWorldIDs(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	w := g.World()

	seen := map[motion.EntityID]bool{w.Player().ID: true}
	for range 5 {
		e := w.SpawnEnemy(g.Arena())
		s := w.SpawnStar(g.Arena())
		assert.False(t, seen[e.ID])
		assert.False(t, seen[s.ID])
		seen[e.ID], seen[s.ID] = true, true
	}
	assert.Len(t, w.All(), 11)

	id := w.Stars()[0].ID
	assert.True(t, w.DespawnStar(id))
	assert.False(t, w.DespawnStar(id))
	assert.True(t, w.DespawnEnemy(w.Enemies()[0].ID))
	assert.False(t, w.DespawnEnemy(9999))
	assert.Len(t, w.All(), 9)

	// IDs are not reused after despawning.
	assert.False(t, seen[w.SpawnStar(g.Arena()).ID])
}

func TestEnemiesSpawnAwayFromPlayer(t *testing.T) {
	g := newEmptyGame(t, ModeNormal)
	p := g.World().Player()
	zone := []float64{6, 3}

	for range 50 {
		e := g.World().SpawnEnemy(g.Arena())
		assert.False(t, core.Overlaps(e.Position, e.Kind.Footprint, p.Position, zone))
	}
}

func TestRegistered(t *testing.T) {
	for id, title := range map[string]string{"arena": "Ball Arena", "arena_zen": "Ball Arena (Zen)"} {
		require.True(t, registry.Exists(id))
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
		assert.Equal(t, title, g.Title())
		_, ok := g.(registry.Resizer)
		assert.True(t, ok)
	}
}
