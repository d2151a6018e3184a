package keymap

// DefaultKeymap returns the built-in wizard bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeForm:    defaultFormBindings(),
			ModeSummary: defaultSummaryBindings(),
		},
	}
}

// bind builds a binding from a key spec. Specs are compile-time constants, so a
// bad one is a programming error.
func bind(spec string, cmd Command, desc, category string) KeyBinding {
	keyType, r, mods, err := ParseKeySpec(spec)
	if err != nil {
		panic(err)
	}
	return KeyBinding{KeyType: keyType, Rune: r, Modifiers: mods, Command: cmd, Description: desc, Category: category}
}

func defaultFormBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeForm,
		Bindings: []KeyBinding{
			bind("ctrl+n", CmdNextStep, "next page", "Navigation"),
			bind("pgdown", CmdNextStep, "next page", "Navigation"),
			bind("ctrl+p", CmdPrevStep, "previous page", "Navigation"),
			bind("pgup", CmdPrevStep, "previous page", "Navigation"),
			bind("tab", CmdNextField, "next field", "Navigation"),
			bind("shift+tab", CmdPrevField, "previous field", "Navigation"),
			bind("down", CmdSelectNext, "next item", "Navigation"),
			bind("up", CmdSelectPrev, "previous item", "Navigation"),

			bind("enter", CmdSubmit, "save", "Editing"),
			bind("ctrl+e", CmdEdit, "edit saved", "Editing"),
			bind("esc", CmdCancel, "cancel edit", "Editing"),
			bind("ctrl+x", CmdDeactivate, "deactivate", "Editing"),

			bind("ctrl+t", CmdToggleMode, "summary view", "View"),
			bind("ctrl+r", CmdRetry, "retry", "View"),
			bind("f1", CmdToggleHelp, "help", "View"),

			bind("ctrl+c", CmdQuit, "quit", "Application"),
		},
	}
}

func defaultSummaryBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeSummary,
		Bindings: []KeyBinding{
			bind("n", CmdNextStep, "next page", "Navigation"),
			bind("ctrl+n", CmdNextStep, "next page", "Navigation"),
			bind("p", CmdPrevStep, "previous page", "Navigation"),
			bind("ctrl+p", CmdPrevStep, "previous page", "Navigation"),
			bind("j", CmdSelectNext, "next item", "Navigation"),
			bind("down", CmdSelectNext, "next item", "Navigation"),
			bind("k", CmdSelectPrev, "previous item", "Navigation"),
			bind("up", CmdSelectPrev, "previous item", "Navigation"),

			bind("x", CmdDeactivate, "deactivate", "Editing"),
			bind("ctrl+x", CmdDeactivate, "deactivate", "Editing"),

			bind("t", CmdToggleMode, "edit view", "View"),
			bind("ctrl+t", CmdToggleMode, "edit view", "View"),
			bind("r", CmdRetry, "retry", "View"),
			bind("ctrl+r", CmdRetry, "retry", "View"),
			bind("?", CmdToggleHelp, "help", "View"),
			bind("f1", CmdToggleHelp, "help", "View"),

			bind("q", CmdQuit, "quit", "Application"),
			bind("ctrl+c", CmdQuit, "quit", "Application"),
		},
	}
}
