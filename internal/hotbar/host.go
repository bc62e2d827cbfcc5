// Package hotbar renders a switchable row of quick-action buttons into a host
// editor and dispatches their clicks. Everything it needs from the host goes
// through the interfaces in this file.
package hotbar

// Slot names the host layout region a surface is attached to.
type Slot string

const (
	SlotTop    Slot = "top"
	SlotBottom Slot = "bottom"
)

// Position is a cursor location in an editing context.
type Position struct {
	Line int
	Ch   int
}

// EditingContext is the host's focused text buffer.
type EditingContext interface {
	// ReplaceSelection replaces the selection (or inserts at the cursor) and
	// leaves the cursor after the inserted text.
	ReplaceSelection(text string)
	Cursor() Position
	SetCursor(pos Position)
}

// Element is one interactive button on a surface.
type Element interface {
	SetTooltip(text string)
	// OnClick binds the click handler, replacing any previous one.
	OnClick(fn func())
}

// Surface is a host container that holds the rendered buttons.
type Surface interface {
	AddElement(id string) Element
	// Empty removes every element.
	Empty()
	// Detach removes the surface from its parent and releases it.
	Detach()
}

// Host is the capability set the controller consumes.
type Host interface {
	CreateSurface(parent Slot) Surface
	RenderIcon(el Element, icon string)
	// ActiveEditor reports the focused editing context, if any.
	ActiveEditor() (EditingContext, bool)
	// ExecuteCommand runs a host command. Failures are the host's business.
	ExecuteCommand(id string)
}

// Command is a host-invocable command contributed by a plugin.
type Command struct {
	ID       string
	Name     string
	Callback func()
}

// PluginHost extends Host with command registration.
type PluginHost interface {
	Host
	// AddCommand registers cmd under "<pluginID>:<cmd.ID>".
	AddCommand(pluginID string, cmd Command)
	// RemoveCommands drops every command registered by pluginID.
	RemoveCommands(pluginID string)
}
