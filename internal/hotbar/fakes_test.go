package hotbar

import (
	"strings"
	"unicode/utf8"
)

type fakeElement struct {
	id       string
	tooltip  string
	icon     string
	onClick  func()
	bindings int
}

func (e *fakeElement) SetTooltip(text string) { e.tooltip = text }

func (e *fakeElement) OnClick(fn func()) {
	e.onClick = fn
	e.bindings++
}

func (e *fakeElement) click() { e.onClick() }

type fakeSurface struct {
	parent   Slot
	elements []*fakeElement
	empties  int
	detached bool
}

func (s *fakeSurface) AddElement(id string) Element {
	el := &fakeElement{id: id}
	s.elements = append(s.elements, el)
	return el
}

func (s *fakeSurface) Empty() {
	s.elements = nil
	s.empties++
}

func (s *fakeSurface) Detach() { s.detached = true }

func (s *fakeSurface) ids() []string {
	ids := make([]string, len(s.elements))
	for i, el := range s.elements {
		ids[i] = el.id
	}
	return ids
}

// fakeEditor places the cursor right after inserted text, like the terminal
// host and the editors the hotbar targets.
type fakeEditor struct {
	cursor    Position
	inserted  []string
	setCursor []Position
}

func (e *fakeEditor) ReplaceSelection(text string) {
	e.inserted = append(e.inserted, text)

	if n := strings.Count(text, "\n"); n > 0 {
		e.cursor.Line += n
		e.cursor.Ch = utf8.RuneCountInString(text[strings.LastIndex(text, "\n")+1:])
		return
	}
	e.cursor.Ch += utf8.RuneCountInString(text)
}

func (e *fakeEditor) Cursor() Position { return e.cursor }

func (e *fakeEditor) SetCursor(pos Position) {
	e.setCursor = append(e.setCursor, pos)
	e.cursor = pos
}

type fakeHost struct {
	surfaces     []*fakeSurface
	editor       *fakeEditor
	executed     []string
	editorChecks int

	commands map[string]Command
	removed  []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{commands: make(map[string]Command)}
}

func (h *fakeHost) CreateSurface(parent Slot) Surface {
	s := &fakeSurface{parent: parent}
	h.surfaces = append(h.surfaces, s)
	return s
}

func (h *fakeHost) RenderIcon(el Element, icon string) {
	el.(*fakeElement).icon = icon
}

func (h *fakeHost) ActiveEditor() (EditingContext, bool) {
	h.editorChecks++
	if h.editor == nil {
		return nil, false
	}
	return h.editor, true
}

func (h *fakeHost) ExecuteCommand(id string) {
	h.executed = append(h.executed, id)
}

func (h *fakeHost) AddCommand(pluginID string, cmd Command) {
	h.commands[pluginID+":"+cmd.ID] = cmd
}

func (h *fakeHost) RemoveCommands(pluginID string) {
	h.removed = append(h.removed, pluginID)
	for id := range h.commands {
		if strings.HasPrefix(id, pluginID+":") {
			delete(h.commands, id)
		}
	}
}

// live returns the surfaces that have not been detached.
func (h *fakeHost) live() []*fakeSurface {
	var out []*fakeSurface
	for _, s := range h.surfaces {
		if !s.detached {
			out = append(out, s)
		}
	}
	return out
}
