package hotbar

import (
	"fmt"
	"strings"

	"github.com/chatter/hotbar/internal/logger"
	"github.com/chatter/hotbar/internal/profile"
)

// braceMarker triggers the one-step cursor correction after an insertion.
const braceMarker = "{}"

// Controller owns the active profile index and the hotbar surface.
// It is not safe for concurrent use; the host calls it from its UI loop.
type Controller struct {
	registry *profile.Registry
	host     Host
	log      *logger.Logger

	current int
	surface Surface
}

// NewController creates a controller on the first profile. Nothing is
// rendered until Activate.
func NewController(registry *profile.Registry, host Host, log *logger.Logger) *Controller {
	return &Controller{
		registry: registry,
		host:     host,
		log:      log,
	}
}

// Index returns the active profile index.
func (c *Controller) Index() int {
	return c.current
}

// Profile returns the active profile.
func (c *Controller) Profile() profile.Profile {
	return c.mustProfile()
}

// Active reports whether the controller currently owns a surface.
func (c *Controller) Active() bool {
	return c.surface != nil
}

// Activate creates the surface under parent and renders the active profile.
// It does nothing if a surface already exists.
func (c *Controller) Activate(parent Slot) {
	if c.surface != nil {
		return
	}

	c.surface = c.host.CreateSurface(parent)
	c.log.Debug("hotbar surface created", "slot", parent)

	c.Render()
}

// Deactivate detaches and releases the surface, if any.
func (c *Controller) Deactivate() {
	if c.surface == nil {
		return
	}

	c.surface.Detach()
	c.surface = nil
	c.log.Debug("hotbar surface released")
}

// Render replaces the surface contents with the active profile's buttons.
func (c *Controller) Render() {
	if c.surface == nil {
		return
	}

	p := c.mustProfile()
	c.surface.Empty()

	for _, b := range p.Buttons {
		el := c.surface.AddElement(b.ID)
		el.SetTooltip(b.Label())
		c.host.RenderIcon(el, b.Icon)

		el.OnClick(func() {
			c.Dispatch(b)
		})
	}

	c.log.Debug("hotbar rendered", "profile", p.ID, "buttons", len(p.Buttons))
}

// Switch advances to the next profile, wrapping after the last one.
func (c *Controller) Switch() {
	c.current = (c.current + 1) % c.registry.Len()
	c.log.Debug("hotbar switched", "index", c.current)

	c.Render()
}

// Dispatch performs the button's action.
func (c *Controller) Dispatch(b profile.Button) {
	switch action := b.Action.(type) {
	case profile.Switch:
		c.Switch()

	case profile.HostCommand:
		if _, ok := c.host.ActiveEditor(); !ok {
			c.log.Debug("no active editor, command skipped", "button", b.ID)
			return
		}
		c.host.ExecuteCommand(action.ID)

	case profile.InsertText:
		ed, ok := c.host.ActiveEditor()
		if !ok {
			c.log.Debug("no active editor, insert skipped", "button", b.ID)
			return
		}

		ed.ReplaceSelection(action.Text)

		// Lands between the braces of templates like \text{}.
		if strings.Contains(action.Text, braceMarker) {
			pos := ed.Cursor()
			ed.SetCursor(Position{Line: pos.Line, Ch: pos.Ch - 1})
		}

	default:
		panic(fmt.Sprintf("hotbar: unhandled action %T on button %q", b.Action, b.ID))
	}
}

// mustProfile returns the active profile. An out-of-range index means the
// registry invariant is broken, which is not recoverable.
func (c *Controller) mustProfile() profile.Profile {
	p, err := c.registry.ProfileAt(c.current)
	if err != nil {
		panic(err)
	}
	return p
}
