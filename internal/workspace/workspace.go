package workspace

import (
	"github.com/chatter/hotbar/internal/editor"
	"github.com/chatter/hotbar/internal/hotbar"
	"github.com/chatter/hotbar/internal/logger"
)

var _ hotbar.PluginHost = (*Workspace)(nil)

// Workspace is the terminal host. It owns at most one open buffer and one
// bar per slot.
type Workspace struct {
	log      *logger.Logger
	icons    *Icons
	commands *Commands
	bars     map[hotbar.Slot]*Bar

	buffer *editor.Buffer
	path   string
}

// New creates a workspace with the editor commands registered and no open
// buffer.
func New(icons *Icons, log *logger.Logger) *Workspace {
	w := &Workspace{
		log:   log.With("component", "workspace"),
		icons: icons,
		bars:  make(map[hotbar.Slot]*Bar),
	}

	w.commands = NewCommands(func() *editor.Buffer { return w.buffer })
	w.commands.registerEditorCommands()

	return w
}

// Open makes b the active buffer, backed by path ("" for a scratch buffer).
func (w *Workspace) Open(b *editor.Buffer, path string) {
	w.buffer = b
	w.path = path
	w.log.Info("buffer opened", "path", path, "lines", b.LineCount())
}

// Close drops the active buffer.
func (w *Workspace) Close() {
	if w.buffer == nil {
		return
	}
	w.log.Info("buffer closed", "path", w.path)
	w.buffer = nil
	w.path = ""
}

// Buffer returns the active buffer, or nil.
func (w *Workspace) Buffer() *editor.Buffer {
	return w.buffer
}

// Path returns the file backing the active buffer.
func (w *Workspace) Path() string {
	return w.path
}

// Commands returns the command registry.
func (w *Workspace) Commands() *Commands {
	return w.commands
}

// Bar returns the bar attached to slot.
func (w *Workspace) Bar(slot hotbar.Slot) (*Bar, bool) {
	b, ok := w.bars[slot]
	return b, ok
}

// CreateSurface attaches a new bar to parent. An existing bar in the same
// slot is replaced.
func (w *Workspace) CreateSurface(parent hotbar.Slot) hotbar.Surface {
	if _, ok := w.bars[parent]; ok {
		w.log.Warn("replacing bar in occupied slot", "slot", parent)
	}

	bar := newBar(parent, w.releaseBar)
	w.bars[parent] = bar
	return bar
}

func (w *Workspace) releaseBar(b *Bar) {
	if w.bars[b.slot] == b {
		delete(w.bars, b.slot)
	}
}

// RenderIcon sets the glyph of a bar button.
func (w *Workspace) RenderIcon(el hotbar.Element, icon string) {
	btn, ok := el.(*Button)
	if !ok {
		w.log.Warn("cannot render icon on foreign element", "icon", icon)
		return
	}
	btn.glyph = w.icons.Glyph(icon)
}

// ActiveEditor returns the open buffer as an editing context.
func (w *Workspace) ActiveEditor() (hotbar.EditingContext, bool) {
	if w.buffer == nil {
		return nil, false
	}
	return editingContext{buf: w.buffer}, true
}

// ExecuteCommand runs id. Failures are logged, not returned.
func (w *Workspace) ExecuteCommand(id string) {
	if err := w.commands.Execute(id); err != nil {
		w.log.Warn("command failed", "id", id, "err", err)
		return
	}
	w.log.Debug("command executed", "id", id)
}

// AddCommand registers a plugin command as "<pluginID>:<cmd.ID>".
func (w *Workspace) AddCommand(pluginID string, cmd hotbar.Command) {
	err := w.commands.Register(Command{
		ID:     pluginID + ":" + cmd.ID,
		Name:   cmd.Name,
		Source: pluginID,
		Run:    cmd.Callback,
	})
	if err != nil {
		w.log.Warn("plugin command not registered", "plugin", pluginID, "err", err)
	}
}

// RemoveCommands drops every command registered by pluginID.
func (w *Workspace) RemoveCommands(pluginID string) {
	n := w.commands.UnregisterBySource(pluginID)
	w.log.Debug("plugin commands removed", "plugin", pluginID, "count", n)
}

// editingContext exposes a buffer through the hotbar's capability interface.
type editingContext struct {
	buf *editor.Buffer
}

func (e editingContext) ReplaceSelection(text string) {
	e.buf.ReplaceSelection(text)
}

func (e editingContext) Cursor() hotbar.Position {
	p := e.buf.Cursor()
	return hotbar.Position{Line: p.Line, Ch: p.Ch}
}

func (e editingContext) SetCursor(pos hotbar.Position) {
	e.buf.SetCursor(editor.Position{Line: pos.Line, Ch: pos.Ch})
}
