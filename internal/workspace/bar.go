package workspace

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/chatter/hotbar/internal/hotbar"
)

const (
	// buttonGap is the number of blank columns between buttons.
	buttonGap = 1

	// markerWidth is the width of the overflow markers at either end.
	markerWidth = 1

	// minBarWidth is the narrowest row that can show markers and a button.
	minBarWidth = 3
)

// Button is a clickable hotbar cell. It implements hotbar.Element.
type Button struct {
	id      string
	tooltip string
	glyph   string
	onClick func()
}

// SetTooltip sets the text shown while the pointer is over the button.
func (b *Button) SetTooltip(text string) {
	b.tooltip = text
}

// OnClick binds fn as the click handler, replacing any previous one.
func (b *Button) OnClick(fn func()) {
	b.onClick = fn
}

// ID returns the button id.
func (b *Button) ID() string { return b.id }

// Tooltip returns the tooltip text.
func (b *Button) Tooltip() string { return b.tooltip }

// Glyph returns the rendered icon label.
func (b *Button) Glyph() string { return b.glyph }

// Click runs the click handler, if any.
func (b *Button) Click() {
	if b.onClick != nil {
		b.onClick()
	}
}

// span is the column range [start, end) of a visible button.
type span struct {
	index int
	start int
	end   int
}

// Bar is a single-row button strip. It implements hotbar.Surface.
type Bar struct {
	slot    hotbar.Slot
	buttons []*Button
	width   int
	offset  int // index of the first visible button
	hovered int // -1 when the pointer is elsewhere
	release func(*Bar)

	buttonStyle lipgloss.Style
	hoverStyle  lipgloss.Style
	markerStyle lipgloss.Style
}

func newBar(slot hotbar.Slot, release func(*Bar)) *Bar {
	return &Bar{
		slot:    slot,
		hovered: -1,
		release: release,
		buttonStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		hoverStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1),
		markerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// AddElement appends a button.
func (b *Bar) AddElement(id string) hotbar.Element {
	btn := &Button{id: id}
	b.buttons = append(b.buttons, btn)
	return btn
}

// Empty removes every button.
func (b *Bar) Empty() {
	b.buttons = nil
	b.offset = 0
	b.hovered = -1
}

// Detach removes the bar from its slot.
func (b *Bar) Detach() {
	if b.release != nil {
		b.release(b)
		b.release = nil
	}
}

// Slot returns the slot the bar was created in.
func (b *Bar) Slot() hotbar.Slot {
	return b.slot
}

// Buttons returns the buttons in display order.
func (b *Bar) Buttons() []*Button {
	out := make([]*Button, len(b.buttons))
	copy(out, b.buttons)
	return out
}

// SetWidth sets the available width for rendering and hit testing.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Press clicks the button at index i, scrolling it into view.
func (b *Bar) Press(i int) bool {
	if i < 0 || i >= len(b.buttons) {
		return false
	}

	b.ensureVisible(i)
	b.buttons[i].Click()
	return true
}

// ClickAt handles a click at column x. Clicking an overflow marker scrolls.
func (b *Bar) ClickAt(x int) bool {
	spans, left, right := b.layout()

	switch {
	case left && x < markerWidth:
		b.Scroll(-1)
		return true
	case right && x >= b.width-markerWidth:
		b.Scroll(1)
		return true
	}

	for _, s := range spans {
		if x >= s.start && x < s.end {
			b.buttons[s.index].Click()
			return true
		}
	}
	return false
}

// HoverAt highlights the button under column x and returns its tooltip.
func (b *Bar) HoverAt(x int) (string, bool) {
	spans, _, _ := b.layout()

	for _, s := range spans {
		if x >= s.start && x < s.end {
			b.hovered = s.index
			return b.buttons[s.index].tooltip, true
		}
	}

	b.hovered = -1
	return "", false
}

// ClearHover removes the hover highlight.
func (b *Bar) ClearHover() {
	b.hovered = -1
}

// Scroll shifts the first visible button by delta.
func (b *Bar) Scroll(delta int) {
	b.offset = max(0, min(b.offset+delta, len(b.buttons)-1))
}

// View renders the bar padded to exactly the configured width.
func (b *Bar) View() string {
	if b.width <= 0 {
		return ""
	}
	if b.width < minBarWidth {
		return strings.Repeat(" ", b.width)
	}

	spans, left, right := b.layout()

	var sb strings.Builder
	x := 0

	if left {
		sb.WriteString(b.markerStyle.Render("‹"))
		x = markerWidth
	}

	for _, s := range spans {
		sb.WriteString(strings.Repeat(" ", s.start-x))

		style := b.buttonStyle
		if s.index == b.hovered {
			style = b.hoverStyle
		}
		sb.WriteString(style.Render(b.buttons[s.index].glyph))
		x = s.end
	}

	if right {
		sb.WriteString(strings.Repeat(" ", b.width-markerWidth-x))
		sb.WriteString(b.markerStyle.Render("›"))
		x = b.width
	}

	sb.WriteString(strings.Repeat(" ", b.width-x))
	return sb.String()
}

// layout places buttons from offset onwards. A right marker is reserved
// whenever a later button does not fit.
func (b *Bar) layout() (spans []span, left, right bool) {
	if b.width < minBarWidth {
		return nil, false, len(b.buttons) > 0
	}

	left = b.offset > 0
	x := 0
	if left {
		x = markerWidth
	}

	for i := b.offset; i < len(b.buttons); i++ {
		w := b.cellWidth(i)

		limit := b.width
		if i < len(b.buttons)-1 {
			limit -= markerWidth
		}
		if x+w > limit {
			right = true
			break
		}

		spans = append(spans, span{index: i, start: x, end: x + w})
		x += w + buttonGap
	}

	return spans, left, right
}

func (b *Bar) cellWidth(i int) int {
	return lipgloss.Width(b.buttonStyle.Render(b.buttons[i].glyph))
}

func (b *Bar) ensureVisible(i int) {
	if i < b.offset {
		b.offset = i
		return
	}

	for b.offset < i {
		spans, _, _ := b.layout()
		if len(spans) > 0 && spans[len(spans)-1].index >= i {
			return
		}
		b.offset++
	}
}
