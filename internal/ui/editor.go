package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chatter/hotbar/internal/editor"
	"github.com/chatter/hotbar/internal/ui/help"
)

// tabWidth is the number of columns a tab occupies on screen.
const tabWidth = 4

// EditorKeyMap defines the keys handled by the editor panel.
type EditorKeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding
	SelectUp    key.Binding
	SelectDown  key.Binding
	SelectHome  key.Binding
	SelectEnd   key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Backspace   key.Binding
	Delete      key.Binding
	Enter       key.Binding
	Tab         key.Binding
}

// DefaultEditorKeyMap returns the default editing keys.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Home:        key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:         key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "line end")),
		SelectLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("⇧←", "select left")),
		SelectRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("⇧→", "select right")),
		SelectUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("⇧↑", "select up")),
		SelectDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("⇧↓", "select down")),
		SelectHome:  key.NewBinding(key.WithKeys("shift+home"), key.WithHelp("⇧home", "select to line start")),
		SelectEnd:   key.NewBinding(key.WithKeys("shift+end"), key.WithHelp("⇧end", "select to line end")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Backspace:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete back")),
		Delete:      key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete forward")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "new line")),
		Tab:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("⇥", "tab")),
	}
}

// HelpBindings returns the editing keys worth listing in the help modal.
func (k EditorKeyMap) HelpBindings() []help.HelpBinding {
	return []help.HelpBinding{
		{Binding: k.SelectLeft, Category: help.CategoryEditing, Order: 10},
		{Binding: k.SelectRight, Category: help.CategoryEditing, Order: 11},
		{Binding: k.SelectUp, Category: help.CategoryEditing, Order: 12},
		{Binding: k.SelectDown, Category: help.CategoryEditing, Order: 13},
		{Binding: k.Home, Category: help.CategoryEditing, Order: 14},
		{Binding: k.End, Category: help.CategoryEditing, Order: 15},
		{Binding: k.PageUp, Category: help.CategoryEditing, Order: 16},
		{Binding: k.PageDown, Category: help.CategoryEditing, Order: 17},
	}
}

// EditorPanel displays a buffer and turns key presses into buffer edits.
type EditorPanel struct {
	buf    *editor.Buffer
	keys   EditorKeyMap
	width  int
	height int
	top    int // first visible line
	left   int // first visible text column
}

// NewEditorPanel creates an empty editor panel.
func NewEditorPanel() *EditorPanel {
	return &EditorPanel{keys: DefaultEditorKeyMap()}
}

// SetBuffer replaces the displayed buffer and resets scrolling.
func (p *EditorPanel) SetBuffer(b *editor.Buffer) {
	p.buf = b
	p.top = 0
	p.left = 0
}

// Buffer returns the displayed buffer.
func (p *EditorPanel) Buffer() *editor.Buffer {
	return p.buf
}

// KeyMap returns the panel's key bindings.
func (p *EditorPanel) KeyMap() EditorKeyMap {
	return p.keys
}

// SetSize sets the panel dimensions.
func (p *EditorPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.ScrollToCursor()
}

// HandleKey applies msg to the buffer. It reports whether the key was used.
func (p *EditorPanel) HandleKey(msg tea.KeyPressMsg) bool {
	if p.buf == nil {
		return false
	}

	b := p.buf
	switch {
	case key.Matches(msg, p.keys.Left):
		b.MoveLeft(false)
	case key.Matches(msg, p.keys.Right):
		b.MoveRight(false)
	case key.Matches(msg, p.keys.Up):
		b.MoveUp(false)
	case key.Matches(msg, p.keys.Down):
		b.MoveDown(false)
	case key.Matches(msg, p.keys.Home):
		b.MoveHome(false)
	case key.Matches(msg, p.keys.End):
		b.MoveEnd(false)
	case key.Matches(msg, p.keys.SelectLeft):
		b.MoveLeft(true)
	case key.Matches(msg, p.keys.SelectRight):
		b.MoveRight(true)
	case key.Matches(msg, p.keys.SelectUp):
		b.MoveUp(true)
	case key.Matches(msg, p.keys.SelectDown):
		b.MoveDown(true)
	case key.Matches(msg, p.keys.SelectHome):
		b.MoveHome(true)
	case key.Matches(msg, p.keys.SelectEnd):
		b.MoveEnd(true)
	case key.Matches(msg, p.keys.PageUp):
		for range max(1, p.height-1) {
			b.MoveUp(false)
		}
	case key.Matches(msg, p.keys.PageDown):
		for range max(1, p.height-1) {
			b.MoveDown(false)
		}
	case key.Matches(msg, p.keys.Backspace):
		b.Backspace()
	case key.Matches(msg, p.keys.Delete):
		b.DeleteForward()
	case key.Matches(msg, p.keys.Enter):
		b.Newline()
	case key.Matches(msg, p.keys.Tab):
		b.InsertRune('\t')
	case msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0:
		b.ReplaceSelection(msg.Text)
	default:
		return false
	}

	p.ScrollToCursor()
	return true
}

// ClickAt moves the cursor to the cell at (x, y) relative to the panel.
func (p *EditorPanel) ClickAt(x, y int) {
	if p.buf == nil || y < 0 || y >= p.height {
		return
	}

	line := p.top + y
	if line >= p.buf.LineCount() {
		line = p.buf.LineCount() - 1
	}

	col := max(0, x-p.gutterWidth()) + p.left
	p.buf.SetCursor(editor.Position{Line: line, Ch: chAtColumn(p.buf.Line(line), col)})
	p.ScrollToCursor()
}

// Scroll moves the view by delta lines without moving the cursor.
func (p *EditorPanel) Scroll(delta int) {
	if p.buf == nil {
		return
	}
	p.top = max(0, min(p.top+delta, p.buf.LineCount()-1))
}

// ScrollToCursor adjusts scrolling so the cursor is on screen.
func (p *EditorPanel) ScrollToCursor() {
	if p.buf == nil || p.height <= 0 {
		return
	}

	cur := p.buf.Cursor()
	if cur.Line < p.top {
		p.top = cur.Line
	}
	if cur.Line >= p.top+p.height {
		p.top = cur.Line - p.height + 1
	}

	textWidth := p.width - p.gutterWidth()
	if textWidth <= 0 {
		return
	}

	col := columnOf(p.buf.Line(cur.Line), cur.Ch)
	if col < p.left {
		p.left = col
	}
	if col >= p.left+textWidth {
		p.left = col - textWidth + 1
	}
}

// View renders exactly height rows of exactly width columns.
func (p *EditorPanel) View() string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}

	rows := make([]string, p.height)
	for y := range rows {
		rows[y] = p.renderRow(p.top + y)
	}
	return strings.Join(rows, "\n")
}

func (p *EditorPanel) gutterWidth() int {
	lines := 1
	if p.buf != nil {
		lines = p.buf.LineCount()
	}
	return max(3, len(fmt.Sprint(lines))) + 1
}

func (p *EditorPanel) renderRow(line int) string {
	gutter := p.gutterWidth()
	if gutter >= p.width {
		return strings.Repeat(" ", p.width)
	}

	if p.buf == nil || line >= p.buf.LineCount() {
		return GutterStyle.Render(fmt.Sprintf("%*s ", gutter-1, "~")) + strings.Repeat(" ", p.width-gutter)
	}

	var sb strings.Builder
	sb.WriteString(GutterStyle.Render(fmt.Sprintf("%*d ", gutter-1, line+1)))

	textWidth := p.width - gutter
	used := p.renderText(&sb, line, textWidth)
	sb.WriteString(strings.Repeat(" ", textWidth-used))

	return sb.String()
}

// renderText writes the visible part of line and returns the columns used.
func (p *EditorPanel) renderText(sb *strings.Builder, line, textWidth int) int {
	cur := p.buf.Cursor()
	from, to, selected := p.buf.Selection()

	runes := []rune(p.buf.Line(line))
	col := 0
	used := 0

	for ch := 0; ch <= len(runes); ch++ {
		text := " "
		if ch < len(runes) {
			text = cellText(runes[ch], col)
		} else if cur.Line != line || cur.Ch != ch {
			break
		}

		w := lipgloss.Width(text)
		start := col
		col += w

		if col <= p.left {
			continue
		}
		if start < p.left {
			// Cell straddles the left edge.
			text = strings.Repeat(" ", col-p.left)
			w = col - p.left
		}
		if used+w > textWidth {
			break
		}

		pos := editor.Position{Line: line, Ch: ch}
		switch {
		case pos == cur:
			text = CursorStyle.Render(text)
		case selected && !pos.Before(from) && pos.Before(to):
			text = SelectionStyle.Render(text)
		}

		sb.WriteString(text)
		used += w
	}

	return used
}

func cellText(r rune, col int) string {
	switch {
	case r == '\t':
		return strings.Repeat(" ", tabWidth-col%tabWidth)
	case r < 0x20 || r == 0x7f:
		return "^" + string(r^0x40)
	}
	return string(r)
}

// columnOf returns the screen column of rune index ch in line.
func columnOf(line string, ch int) int {
	col := 0
	for i, r := range []rune(line) {
		if i >= ch {
			break
		}
		col += lipgloss.Width(cellText(r, col))
	}
	return col
}

// chAtColumn returns the rune index whose cell covers col, or the line length
// when col is past the end.
func chAtColumn(line string, col int) int {
	runes := []rune(line)
	x := 0
	for i, r := range runes {
		w := lipgloss.Width(cellText(r, x))
		if col < x+w {
			return i
		}
		x += w
	}
	return len(runes)
}
