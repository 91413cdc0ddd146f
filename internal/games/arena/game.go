// Package arena implements Ball Arena: steer a ball around the terminal,
// collect stars and dodge enemy balls that bounce off the window edges.
package arena

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-arena/internal/config"
	"github.com/vovakirdan/ball-arena/internal/core"
	"github.com/vovakirdan/ball-arena/internal/motion"
	"github.com/vovakirdan/ball-arena/internal/registry"
)

// HUDRows is the number of screen rows above the playfield.
const HUDRows = 1

// Mode selects the game rules.
type Mode int

const (
	ModeNormal Mode = iota // An enemy hit ends the game
	ModeZen                // Enemies are harmless
)

// Package-level settings applied by the CLI before games are created.
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger sets the logger used by games created afterwards.
// A nil logger discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// RunStats summarises a game for score storage.
type RunStats struct {
	Score    int
	Stars    int
	Bounces  int
	Duration time.Duration
}

// Game implements Ball Arena.
type Game struct {
	mode       Mode
	settings   *config.ArenaConfig // Fixed config; nil means load on Reset
	cfg        config.ArenaConfig
	runtime    core.RuntimeConfig
	arena      motion.Arena
	kinds      *Kinds
	world      *World
	controller *motion.Controller
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger

	score     int
	stars     int
	bounces   int
	ticks     int
	starTimer float64
	foeTimer  float64
	gameOver  bool
	paused    bool
}

// New creates a normal-mode game that loads its configuration on Reset.
func New() *Game {
	return &Game{mode: ModeNormal}
}

// NewZen creates a practice game where enemies never end the run.
func NewZen() *Game {
	return &Game{mode: ModeZen}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(mode Mode, cfg config.ArenaConfig) *Game {
	return &Game{mode: mode, settings: &cfg}
}

func init() {
	registry.Register("arena", func() registry.Game {
		return New()
	})
	registry.Register("arena_zen", func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return "arena_zen"
	}
	return "arena"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Ball Arena (Zen)"
	}
	return "Ball Arena"
}

// Reset starts a new run sized to the screen in cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.logger = logger
	g.cfg = g.loadConfig()
	g.runtime = cfg
	g.arena = arenaFor(cfg)

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	kinds := NewKinds(g.cfg)
	g.kinds = &kinds
	g.controller = motion.NewController(g.logger)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.world = NewWorld(g.kinds, g.rng, g.logger)

	g.score = 0
	g.stars = 0
	g.bounces = 0
	g.ticks = 0
	g.starTimer = 0
	g.foeTimer = 0
	g.gameOver = false
	g.paused = false

	g.world.SpawnPlayer(g.arena)
	for range g.cfg.Enemies.Count {
		g.world.SpawnEnemy(g.arena)
	}
	for range g.cfg.Stars.Count {
		g.world.SpawnStar(g.arena)
	}

	g.logger.Info("game reset", "game", g.ID(), "arena", []float64(g.arena),
		"enemies", len(g.world.Enemies()), "stars", len(g.world.Stars()), "seed", cfg.Seed)
}

// loadConfig returns the fixed config or loads one, falling back to the
// defaults when the file is unusable.
func (g *Game) loadConfig() config.ArenaConfig {
	if g.settings != nil {
		return *g.settings
	}

	cfg, err := config.LoadArena(configPath)
	if err != nil {
		g.logger.Warn("using default config", "error", err)
		cfg = config.DefaultArenaConfig()
	}
	preset, err := config.ParsePreset(difficultyPreset)
	if err != nil {
		g.logger.Warn("ignoring difficulty", "error", err)
	}
	config.ApplyArenaPreset(&cfg, preset)
	return cfg
}

// arenaFor converts screen dimensions to arena extents. Screen cells are
// one unit wide; the HUD rows are not part of the arena.
func arenaFor(cfg core.RuntimeConfig) motion.Arena {
	return motion.NewArena(float64(cfg.ScreenW), float64(cfg.ScreenH-HUDRows))
}

// Resize adapts a running game to new screen dimensions without restarting
// it. Every entity is pulled back inside the new arena.
func (g *Game) Resize(cfg core.RuntimeConfig) {
	if g.world == nil {
		g.Reset(cfg)
		return
	}
	g.runtime.ScreenW = cfg.ScreenW
	g.runtime.ScreenH = cfg.ScreenH
	g.arena = arenaFor(g.runtime)

	for _, b := range g.world.All() {
		if err := g.controller.Confine(g.arena, b); err != nil {
			g.logger.Warn("cannot confine entity", "id", b.ID, "error", err)
		}
	}
	g.logger.Debug("arena resized", "arena", []float64(g.arena))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	dt := g.runtime.TickSeconds()
	tick := motion.Tick{Arena: g.arena, Elapsed: dt}

	var events []core.Event

	// Player: held keys give the direction, diagonals are not faster.
	player := g.world.Player()
	dx, dy := in.Axis()
	player.Direction[0], player.Direction[1] = dx, dy
	motion.Normalize(player.Direction)
	g.controller.Step(tick, []*motion.Body{player})

	// Enemies
	g.kinds.Enemy.Speed = g.difficulty.Speed(g.cfg.Enemies.Speed, g.score, g.ticks)
	for _, b := range g.controller.Step(tick, g.world.Enemies()) {
		g.bounces++
		events = append(events, core.Event{Type: core.EventBounce, EntityID: uint64(b.BodyID)})
	}

	events = append(events, g.collectStars()...)
	if hit, ok := g.checkHit(); ok {
		events = append(events, hit)
	}

	if !g.gameOver {
		g.spawnTimed(dt)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// collectStars scores every star the player touches.
func (g *Game) collectStars() []core.Event {
	player := g.world.Player()
	var events []core.Event
	for _, s := range append([]*motion.Body(nil), g.world.Stars()...) {
		if !core.Overlaps(player.Position, player.Kind.Footprint, s.Position, s.Kind.Footprint) {
			continue
		}
		g.world.DespawnStar(s.ID)
		g.score += g.cfg.Stars.Points
		g.stars++
		events = append(events, core.Event{Type: core.EventStar, EntityID: uint64(s.ID)})
	}
	return events
}

// checkHit ends a normal game when an enemy touches the player.
func (g *Game) checkHit() (core.Event, bool) {
	if g.mode == ModeZen {
		return core.Event{}, false
	}
	player := g.world.Player()
	for _, e := range g.world.Enemies() {
		if core.Overlaps(player.Position, player.Kind.Footprint, e.Position, e.Kind.Footprint) {
			g.gameOver = true
			g.logger.Info("player hit", "enemy", e.ID, "score", g.score, "ticks", g.ticks)
			return core.Event{Type: core.EventHit, EntityID: uint64(e.ID)}, true
		}
	}
	return core.Event{}, false
}

// spawnTimed runs the star and enemy spawn timers. Enemy spawns speed up
// with difficulty.
func (g *Game) spawnTimed(dt float64) {
	if interval := g.cfg.Stars.SpawnInterval; interval > 0 {
		g.starTimer += dt
		if g.starTimer >= interval {
			g.starTimer = 0
			if len(g.world.Stars()) < g.cfg.Stars.Max {
				g.world.SpawnStar(g.arena)
			}
		}
	}

	if base := g.cfg.Enemies.SpawnInterval; base > 0 {
		g.foeTimer += dt
		if g.foeTimer >= g.difficulty.SpawnInterval(base, g.score, g.ticks) {
			g.foeTimer = 0
			if len(g.world.Enemies()) < g.cfg.Enemies.Max {
				g.world.SpawnEnemy(g.arena)
			}
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Stats returns the statistics of the current run.
func (g *Game) Stats() RunStats {
	return RunStats{
		Score:    g.score,
		Stars:    g.stars,
		Bounces:  g.bounces,
		Duration: time.Duration(float64(g.ticks) * g.runtime.TickSeconds() * float64(time.Second)),
	}
}

// World returns the entity registry of the current run.
func (g *Game) World() *World {
	return g.world
}

// Arena returns the current arena extents.
func (g *Game) Arena() motion.Arena {
	return g.arena
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.ArenaConfig {
	return g.cfg
}
