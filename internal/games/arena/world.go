package arena

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-arena/internal/config"
	"github.com/vovakirdan/ball-arena/internal/core"
	"github.com/vovakirdan/ball-arena/internal/motion"
)

// spawnAttempts bounds how often a spawn is re-rolled to keep it clear of
// the player.
const spawnAttempts = 16

// Kinds holds the three entity kinds of one game.
type Kinds struct {
	Player motion.Kind
	Enemy  motion.Kind
	Star   motion.Kind
}

// NewKinds builds the entity kinds from configuration.
func NewKinds(cfg config.ArenaConfig) Kinds {
	return Kinds{
		Player: motion.Kind{
			Name:      "player",
			Footprint: cfg.Player.Size.Extents(),
			Speed:     cfg.Player.Speed,
		},
		Enemy: motion.Kind{
			Name:      "enemy",
			Footprint: cfg.Enemies.Size.Extents(),
			Speed:     cfg.Enemies.Speed,
			Reflect:   true,
		},
		Star: motion.Kind{
			Name:      "star",
			Footprint: cfg.Stars.Size.Extents(),
		},
	}
}

// World is the entity registry of a running game: one player, any number
// of enemies and stars. IDs are never reused within a world.
type World struct {
	kinds   *Kinds
	rng     *rand.Rand
	logger  *log.Logger
	nextID  motion.EntityID
	player  *motion.Body
	enemies []*motion.Body
	stars   []*motion.Body
}

// NewWorld creates an empty world.
func NewWorld(kinds *Kinds, rng *rand.Rand, logger *log.Logger) *World {
	return &World{kinds: kinds, rng: rng, logger: logger}
}

func (w *World) allocID() motion.EntityID {
	w.nextID++
	return w.nextID
}

// Player returns the player body, or nil before SpawnPlayer.
func (w *World) Player() *motion.Body { return w.player }

// Enemies returns the live enemy bodies.
func (w *World) Enemies() []*motion.Body { return w.enemies }

// Stars returns the uncollected stars.
func (w *World) Stars() []*motion.Body { return w.stars }

// SpawnPlayer places the player at the centre of the arena, standing still.
func (w *World) SpawnPlayer(a motion.Arena) *motion.Body {
	w.player = motion.NewBody(w.allocID(), &w.kinds.Player, a.Center(), make([]float64, a.Dims()))
	w.logger.Debug("spawned", "kind", "player", "id", w.player.ID)
	return w.player
}

// SpawnEnemy places an enemy at a random position away from the player,
// heading in a random direction.
func (w *World) SpawnEnemy(a motion.Arena) *motion.Body {
	pos := w.clearPosition(a, w.kinds.Enemy.Footprint)
	dir := motion.RandomDirection(w.rng, a.Dims())
	b := motion.NewBody(w.allocID(), &w.kinds.Enemy, pos, dir)
	w.enemies = append(w.enemies, b)
	w.logger.Debug("spawned", "kind", "enemy", "id", b.ID)
	return b
}

// SpawnStar places a star at a random position.
func (w *World) SpawnStar(a motion.Arena) *motion.Body {
	pos := motion.RandomPosition(w.rng, a, w.kinds.Star.Footprint)
	b := motion.NewBody(w.allocID(), &w.kinds.Star, pos, make([]float64, a.Dims()))
	w.stars = append(w.stars, b)
	w.logger.Debug("spawned", "kind", "star", "id", b.ID)
	return b
}

// DespawnStar removes a star by ID and reports whether it existed.
func (w *World) DespawnStar(id motion.EntityID) bool {
	for i, s := range w.stars {
		if s.ID == id {
			w.stars = append(w.stars[:i], w.stars[i+1:]...)
			w.logger.Debug("despawned", "kind", "star", "id", id)
			return true
		}
	}
	return false
}

// DespawnEnemy removes an enemy by ID and reports whether it existed.
func (w *World) DespawnEnemy(id motion.EntityID) bool {
	for i, e := range w.enemies {
		if e.ID == id {
			w.enemies = append(w.enemies[:i], w.enemies[i+1:]...)
			w.logger.Debug("despawned", "kind", "enemy", "id", id)
			return true
		}
	}
	return false
}

// All returns every body in the world: player first, then enemies, then
// stars.
func (w *World) All() []*motion.Body {
	all := make([]*motion.Body, 0, 1+len(w.enemies)+len(w.stars))
	if w.player != nil {
		all = append(all, w.player)
	}
	all = append(all, w.enemies...)
	return append(all, w.stars...)
}

// clearPosition samples a spawn position whose footprint does not touch a
// safety zone around the player. The last sample is used if no clear spot
// turns up, so crowded or tiny arenas still spawn.
func (w *World) clearPosition(a motion.Arena, footprint []float64) []float64 {
	pos := motion.RandomPosition(w.rng, a, footprint)
	if w.player == nil {
		return pos
	}

	// Keep a gap of one player footprint on every side.
	zone := make([]float64, len(w.kinds.Player.Footprint))
	for i, f := range w.kinds.Player.Footprint {
		zone[i] = f * 3
	}

	for range spawnAttempts {
		if !core.Overlaps(pos, footprint, w.player.Position, zone) {
			return pos
		}
		pos = motion.RandomPosition(w.rng, a, footprint)
	}
	return pos
}
