package app

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/hotbar/internal/ui/help"
)

// pressKeys is the number of hotbar buttons reachable from the keyboard.
const pressKeys = 10

// Action is a function that executes a keybinding's behavior
type Action func(m *Model) (Model, tea.Cmd)

// ActionBinding combines a display binding with its action for dispatch.
type ActionBinding struct {
	help.HelpBinding        // embedded for display (Binding, Category, Order)
	Action           Action // nil = display-only (no action)
}

// dispatchKey iterates through bindings and executes the first matching action.
// Returns nil, nil if no binding matches.
func dispatchKey(m *Model, msg tea.KeyPressMsg, bindings []ActionBinding) (*Model, tea.Cmd) {
	for _, ab := range bindings {
		if key.Matches(msg, ab.Binding) && ab.Action != nil {
			newModel, cmd := ab.Action(m)
			return &newModel, cmd
		}
	}
	return nil, nil
}

// ToHelpBindings extracts display-only bindings from action bindings. Bindings
// without help text are skipped.
func ToHelpBindings(abs []ActionBinding) []help.HelpBinding {
	result := make([]help.HelpBinding, 0, len(abs))
	for _, ab := range abs {
		if ab.Binding.Help().Key == "" {
			continue
		}
		result = append(result, ab.HelpBinding)
	}
	return result
}

// KeyMap defines the key bindings for the application
type KeyMap struct {
	// Hotbar
	Switch key.Binding
	Press  [pressKeys]key.Binding

	// Editing
	Undo key.Binding
	Redo key.Binding
	Save key.Binding

	// General
	Quit  key.Binding
	Help  key.Binding
	Close key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Switch: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "switch hotbar"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
		),
	}

	for i := range km.Press {
		km.Press[i] = key.NewBinding(key.WithKeys(fmt.Sprintf("f%d", i+1)))
	}
	// One combined entry for the help display.
	km.Press[0].SetHelp("f1…f10", "press button")

	return km
}
