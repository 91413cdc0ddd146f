package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ball-arena/internal/audio"
	"github.com/vovakirdan/ball-arena/internal/core"
	"github.com/vovakirdan/ball-arena/internal/games/arena"
	"github.com/vovakirdan/ball-arena/internal/registry"
	"github.com/vovakirdan/ball-arena/internal/storage"
)

// Options holds the collaborators of a game model. Zero values are safe:
// no storage, no sound and no logging.
type Options struct {
	Store     *storage.Store
	Sound     audio.Player
	Logger    *log.Logger
	AllowBack bool // B/Esc returns to the menu when paused or finished
}

// runReporter is implemented by games that keep per-run statistics.
type runReporter interface {
	Stats() arena.RunStats
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sound      audio.Player
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	held       *HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	allowBack  bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Sound == nil {
		opts.Sound = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		sound:      opts.Sound,
		logger:     opts.Logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		held:       NewHeldKeys(cfg.TickRate),
		inputFrame: core.NewInputFrame(),
		allowBack:  opts.AllowBack,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.IsStopKey(msg) {
		m.held.Release()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionQuit:
		if isQuit {
			m.quitting = true
			return m, tea.Quit
		}
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.held.Press(action)
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			if m.allowBack {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		m.inputFrame.Set(core.ActionPause)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. Games that can resize keep
// running; others restart unless they are already over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.held.Release()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.held.Apply(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.playEvents(result.Events)

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// playEvents turns simulation events into sound effects.
func (m Model) playEvents(events []core.Event) {
	for _, e := range events {
		if s, ok := soundFor(e.Type); ok {
			m.sound.Play(s)
		}
		m.logger.Debug("event", "type", e.Type, "entity", e.EntityID)
	}
}

func soundFor(t core.EventType) (audio.Sound, bool) {
	switch t {
	case core.EventBounce:
		return audio.SoundPluck, true
	case core.EventStar:
		return audio.SoundChime, true
	case core.EventHit:
		return audio.SoundHit, true
	default:
		return 0, false
	}
}

// saveResult stores the finished game. Games with run statistics store a
// full run; others store a positive score only.
func (m Model) saveResult() {
	if m.store == nil {
		return
	}

	if rr, ok := m.game.(runReporter); ok {
		stats := rr.Stats()
		id, err := m.store.SaveRun(storage.Run{
			GameID:   m.game.ID(),
			Score:    stats.Score,
			Stars:    stats.Stars,
			Bounces:  stats.Bounces,
			Duration: stats.Duration,
		})
		if err != nil {
			m.logger.Error("cannot save run", "game", m.game.ID(), "error", err)
			return
		}
		m.logger.Info("run saved", "game", m.game.ID(), "run", id, "score", stats.Score)
		return
	}

	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.logger.Error("cannot save score", "game", m.game.ID(), "error", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arena", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
