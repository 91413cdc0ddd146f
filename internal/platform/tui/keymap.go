package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ball-arena/internal/core"
)

// Terminals report key presses but never releases. A direction counts as
// held until its auto-repeat stops arriving.
const (
	firstPressHold = 550 * time.Millisecond // Covers the usual auto-repeat delay
	repeatHold     = 120 * time.Millisecond // Covers the gap between repeats
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// IsStopKey reports whether the key releases every held direction.
func (km *KeyMapper) IsStopKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case " ", "x":
		return true
	}
	return false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HeldKeys turns discrete direction presses into held directions that
// decay tick by tick.
type HeldKeys struct {
	first  int
	repeat int
	left   map[core.Action]int // Ticks until release
}

// NewHeldKeys creates a tracker for the given tick rate.
func NewHeldKeys(tickRate int) *HeldKeys {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := func(d time.Duration) int {
		return max(int(d.Seconds()*float64(tickRate)+0.5), 1)
	}
	return &HeldKeys{
		first:  ticks(firstPressHold),
		repeat: ticks(repeatHold),
		left:   make(map[core.Action]int),
	}
}

// Press records a direction key press. Pressing a direction releases the
// opposite one. Non-direction actions are ignored.
func (h *HeldKeys) Press(a core.Action) {
	opposite, ok := opposites[a]
	if !ok {
		return
	}
	delete(h.left, opposite)

	if h.left[a] > 0 {
		h.left[a] = max(h.left[a], h.repeat)
		return
	}
	h.left[a] = h.first
}

// Release drops every held direction.
func (h *HeldKeys) Release() {
	clear(h.left)
}

// Apply sets every held direction on frame and ages the holds by one tick.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	for a, n := range h.left {
		frame.Set(a)
		if n <= 1 {
			delete(h.left, a)
		} else {
			h.left[a] = n - 1
		}
	}
}

// Held reports whether a direction is currently held.
func (h *HeldKeys) Held(a core.Action) bool {
	return h.left[a] > 0
}

var opposites = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}
