package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// shortHelpCommands are shown in the one-line help bar.
var shortHelpCommands = []Command{CmdNextStep, CmdPrevStep, CmdSubmit, CmdToggleMode, CmdToggleHelp, CmdQuit}

// Help adapts one mode of a Keymap to help.KeyMap.
type Help struct {
	km   *Keymap
	mode Mode
}

// HelpFor returns the help view of mode.
func (km *Keymap) HelpFor(mode Mode) Help {
	return Help{km: km, mode: mode}
}

// Binding merges every key bound to cmd into one key.Binding. It is disabled
// when cmd has no key in the mode.
func (h Help) Binding(cmd Command) key.Binding {
	bindings := h.km.GetBindingsForCommand(cmd, h.mode)
	if len(bindings) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	keys := make([]string, 0, len(bindings))
	for _, b := range bindings {
		keys = append(keys, b.String())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), bindings[0].Description),
	)
}

// ShortHelp implements help.KeyMap.
func (h Help) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(shortHelpCommands))
	for _, cmd := range shortHelpCommands {
		if b := h.Binding(cmd); b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp implements help.KeyMap, one column per category.
func (h Help) FullHelp() [][]key.Binding {
	var columns [][]key.Binding
	for _, category := range h.km.GetCategories(h.mode) {
		var column []key.Binding
		seen := make(map[Command]bool)
		for _, b := range h.km.GetModeBindings(h.mode) {
			if b.Category != category || seen[b.Command] {
				continue
			}
			seen[b.Command] = true
			column = append(column, h.Binding(b.Command))
		}
		columns = append(columns, column)
	}
	return columns
}
