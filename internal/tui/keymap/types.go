// Package keymap provides key binding definitions and lookup for the wizard.
// Bindings are declared per input mode and resolved to named commands, so the
// Update loop switches on commands rather than raw keys.
package keymap

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the wizard.
type Mode string

const (
	// ModeForm is active while a text field has focus. Printable keys belong
	// to the field, so only control keys are bound.
	ModeForm Mode = "form"
	// ModeSummary is active on read-only pages (activity summaries, the total).
	ModeSummary Mode = "summary"
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	CmdNextStep   Command = "next_step"
	CmdPrevStep   Command = "prev_step"
	CmdNextField  Command = "next_field"
	CmdPrevField  Command = "prev_field"
	CmdSelectNext Command = "select_next"
	CmdSelectPrev Command = "select_prev"
	CmdSubmit     Command = "submit"
	CmdEdit       Command = "edit"
	CmdCancel     Command = "cancel"
	CmdToggleMode Command = "toggle_mode"
	CmdDeactivate Command = "deactivate"
	CmdRetry      Command = "retry"
	CmdToggleHelp Command = "toggle_help"
	CmdQuit       Command = "quit"
)

// Modifier represents keyboard modifiers. Ctrl is folded into the key type by
// bubbletea, so only Alt is matched.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
)

// String returns the prefix used in key specs.
func (m Modifier) String() string {
	if m&ModAlt != 0 {
		return "alt+"
	}
	return ""
}

// KeyBinding represents a single key binding.
type KeyBinding struct {
	// KeyType is the bubbletea key. Rune keys use tea.KeyRunes and set Rune.
	KeyType tea.KeyType
	Rune    rune

	Modifiers Modifier
	Command   Command

	// Description and Category feed the help view.
	Description string
	Category    string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns the key spec of the binding, e.g. "ctrl+n" or "q".
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()
	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}
	if kb.Rune == ' ' {
		return prefix + "space"
	}
	return prefix + string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up the command for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name  string
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up the command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger cmd in mode.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// GetCategories returns the categories of a mode in declaration order.
func (km *Keymap) GetCategories(mode Mode) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// ParseKeySpec parses a key spec such as "ctrl+n", "shift+tab", "alt+x" or "q".
func ParseKeySpec(spec string) (tea.KeyType, rune, Modifier, error) {
	var mods Modifier
	remaining := spec
	if rest, ok := strings.CutPrefix(remaining, "alt+"); ok {
		mods |= ModAlt
		remaining = rest
	}

	switch remaining {
	case "enter":
		return tea.KeyEnter, 0, mods, nil
	case "tab":
		return tea.KeyTab, 0, mods, nil
	case "shift+tab":
		return tea.KeyShiftTab, 0, mods, nil
	case "esc", "escape":
		return tea.KeyEsc, 0, mods, nil
	case "space":
		return tea.KeyRunes, ' ', mods, nil
	case "up":
		return tea.KeyUp, 0, mods, nil
	case "down":
		return tea.KeyDown, 0, mods, nil
	case "pgup":
		return tea.KeyPgUp, 0, mods, nil
	case "pgdown":
		return tea.KeyPgDown, 0, mods, nil
	case "f1":
		return tea.KeyF1, 0, mods, nil
	}

	if letter, ok := strings.CutPrefix(remaining, "ctrl+"); ok && len(letter) == 1 {
		ch := letter[0]
		if ch >= 'a' && ch <= 'z' {
			return tea.KeyCtrlA + tea.KeyType(ch-'a'), 0, mods, nil
		}
	}

	if r := []rune(remaining); len(r) == 1 {
		return tea.KeyRunes, r[0], mods, nil
	}

	return 0, 0, 0, fmt.Errorf("unrecognized key spec: %s", spec)
}
