// Package profile defines hotbar buttons, the profiles that group them, and
// the immutable registry the hotbar cycles through.
package profile

// Action is what a button does when clicked. It is a closed set:
// Switch, HostCommand and InsertText are the only implementations.
type Action interface {
	isAction()
}

// Switch advances the hotbar to the next profile.
type Switch struct{}

// HostCommand asks the host to run the command with the given id.
type HostCommand struct {
	ID string
}

// InsertText replaces the editor selection with Text.
type InsertText struct {
	Text string
}

func (Switch) isAction()      {}
func (HostCommand) isAction() {}
func (InsertText) isAction()  {}

// Button is a single hotbar entry.
type Button struct {
	ID      string
	Icon    string // opaque, resolved by the host
	Action  Action
	Tooltip string
}

// Label returns the tooltip, or the id when no tooltip is set.
func (b Button) Label() string {
	if b.Tooltip != "" {
		return b.Tooltip
	}
	return b.ID
}

// Profile is a named, ordered set of buttons.
type Profile struct {
	ID      string
	Name    string
	Buttons []Button
}
