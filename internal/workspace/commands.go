// Package workspace is the terminal host the hotbar plugs into: it owns the
// open buffer, the command registry, the icon set and the hotbar surfaces.
package workspace

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chatter/hotbar/internal/editor"
)

var (
	// ErrUnknownCommand is returned when executing an unregistered id.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoEditor is returned when an editor command runs without a buffer.
	ErrNoEditor = errors.New("no active editor")

	// ErrDuplicateCommand is returned when registering an id twice.
	ErrDuplicateCommand = errors.New("command already registered")
)

// SourceEditor marks commands contributed by the editor itself.
const SourceEditor = "editor"

// Command is an entry in the registry. Exactly one of Run and EditorRun is set.
type Command struct {
	ID     string
	Name   string
	Source string

	Run       func()
	EditorRun func(b *editor.Buffer)
}

// Commands is the host command registry, keyed by full command id.
type Commands struct {
	commands map[string]*Command
	active   func() *editor.Buffer
}

// NewCommands creates a registry. active returns the buffer editor commands
// operate on, or nil when none is open.
func NewCommands(active func() *editor.Buffer) *Commands {
	return &Commands{
		commands: make(map[string]*Command),
		active:   active,
	}
}

// Register adds cmd.
func (c *Commands) Register(cmd Command) error {
	if _, ok := c.commands[cmd.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.ID)
	}
	c.commands[cmd.ID] = &cmd
	return nil
}

// Unregister removes the command with id and reports whether it existed.
func (c *Commands) Unregister(id string) bool {
	if _, ok := c.commands[id]; !ok {
		return false
	}
	delete(c.commands, id)
	return true
}

// UnregisterBySource removes every command from source and returns the count.
func (c *Commands) UnregisterBySource(source string) int {
	n := 0
	for id, cmd := range c.commands {
		if cmd.Source == source {
			delete(c.commands, id)
			n++
		}
	}
	return n
}

// Has reports whether id is registered.
func (c *Commands) Has(id string) bool {
	_, ok := c.commands[id]
	return ok
}

// All returns the registered commands sorted by id.
func (c *Commands) All() []Command {
	out := make([]Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		out = append(out, *cmd)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Execute runs the command with id.
func (c *Commands) Execute(id string) error {
	cmd, ok := c.commands[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}

	if cmd.EditorRun != nil {
		b := c.active()
		if b == nil {
			return fmt.Errorf("%s: %w", id, ErrNoEditor)
		}
		cmd.EditorRun(b)
		return nil
	}

	if cmd.Run != nil {
		cmd.Run()
	}
	return nil
}

// registerEditorCommands adds the editor's buffer commands.
func (c *Commands) registerEditorCommands() {
	for _, ec := range editor.Commands() {
		// Built-in ids are unique; a collision is a programming error.
		if err := c.Register(Command{
			ID:        ec.ID,
			Name:      ec.Name,
			Source:    SourceEditor,
			EditorRun: ec.Apply,
		}); err != nil {
			panic(err)
		}
	}
}
