package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ball-arena/internal/audio"
	"github.com/vovakirdan/ball-arena/internal/config"
	"github.com/vovakirdan/ball-arena/internal/core"
	"github.com/vovakirdan/ball-arena/internal/games/arena"
	"github.com/vovakirdan/ball-arena/internal/storage"
)

type recordingPlayer struct {
	sounds []audio.Sound
}

func (p *recordingPlayer) Play(s audio.Sound) {
	p.sounds = append(p.sounds, s)
}

func quietArena(mode arena.Mode) *arena.Game {
	cfg := config.DefaultArenaConfig()
	cfg.Enemies.Count = 0
	cfg.Enemies.SpawnInterval = 0
	cfg.Stars.Count = 0
	cfg.Stars.SpawnInterval = 0
	cfg.Difficulty.Enabled = false
	return arena.NewWithConfig(mode, cfg)
}

func newTestModel(t *testing.T, g *arena.Game, opts Options) Model {
	t.Helper()
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, opts)
	m.Init()
	require.NotNil(t, g.World())
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestModelPlaysEventSounds(t *testing.T) {
	g := quietArena(arena.ModeNormal)
	rec := &recordingPlayer{}
	m := newTestModel(t, g, Options{Sound: rec})

	enemy := g.World().SpawnEnemy(g.Arena())
	copy(enemy.Position, []float64{78.9, 5})
	copy(enemy.Direction, []float64{1, 0})
	star := g.World().SpawnStar(g.Arena())
	copy(star.Position, []float64{40.5, 11.5})

	m = update(t, m, TickMsg{})
	assert.Equal(t, []audio.Sound{audio.SoundPluck, audio.SoundChime}, rec.sounds)
	assert.Equal(t, 1, m.State().Score)
}

func TestModelSavesRunOnceOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	g := quietArena(arena.ModeNormal)
	rec := &recordingPlayer{}
	m := newTestModel(t, g, Options{Store: store, Sound: rec})

	enemy := g.World().SpawnEnemy(g.Arena())
	copy(enemy.Position, []float64{40, 11.5})
	copy(enemy.Direction, []float64{0, 0})

	m = update(t, m, TickMsg{})
	assert.True(t, m.State().GameOver)
	assert.Contains(t, rec.sounds, audio.SoundHit)

	m = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	runs, err := store.RecentRuns("arena", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestModelHeldDirectionMovesPlayer(t *testing.T) {
	g := quietArena(arena.ModeNormal)
	m := newTestModel(t, g, Options{})
	start := g.World().Player().Position[0]

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for range 10 {
		m = update(t, m, TickMsg{})
	}
	moved := g.World().Player().Position[0]
	assert.Greater(t, moved, start)

	// Space stops the ball.
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	update(t, m, TickMsg{})
	assert.Equal(t, moved, g.World().Player().Position[0])
}

func TestModelResizeKeepsRunning(t *testing.T) {
	g := quietArena(arena.ModeZen)
	m := newTestModel(t, g, Options{})
	star := g.World().SpawnStar(g.Arena())
	copy(star.Position, []float64{40.5, 11.5})
	m = update(t, m, TickMsg{})
	require.Equal(t, 1, m.State().Score)

	m = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 12})
	assert.Equal(t, 30, m.screen.Width())
	assert.Equal(t, 1, g.State().Score, "resize must not restart the game")

	p := g.World().Player().Position
	assert.LessOrEqual(t, p[0], 29.0)
	assert.LessOrEqual(t, p[1], 10.5)
}

func TestModelBackAndQuit(t *testing.T) {
	g := quietArena(arena.ModeNormal)
	m := newTestModel(t, g, Options{AllowBack: true})

	// Esc while playing pauses.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, TickMsg{})
	require.True(t, m.State().Paused)

	// Esc while paused goes back to the menu.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())

	m = newTestModel(t, quietArena(arena.ModeNormal), Options{})
	next, cmd := m.Update(runes("q"))
	assert.True(t, next.(Model).IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, next.(Model).View())
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, quietArena(arena.ModeNormal), Options{})
	view := m.View()
	assert.Contains(t, view, "Score: 0")
	assert.Contains(t, view, string(arena.PlayerChar))
	assert.Equal(t, 24, len(strings.Split(view, "\n")))
}

func TestSoundFor(t *testing.T) {
	s, ok := soundFor(core.EventBounce)
	assert.True(t, ok)
	assert.Equal(t, audio.SoundPluck, s)
	s, ok = soundFor(core.EventStar)
	assert.True(t, ok)
	assert.Equal(t, audio.SoundChime, s)
	s, ok = soundFor(core.EventHit)
	assert.True(t, ok)
	assert.Equal(t, audio.SoundHit, s)
	_, ok = soundFor(core.EventType(42))
	assert.False(t, ok)
}
