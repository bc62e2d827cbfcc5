package help

import (
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// StatusBar renders a single status line: a message or key hints on the
// left, info segments and the version on the right.
type StatusBar struct {
	width    int
	version  string
	bindings []HelpBinding
	message  string
	info     []string

	// Styles
	keyStyle  lipgloss.Style
	descStyle lipgloss.Style
	sepStyle  lipgloss.Style
	msgStyle  lipgloss.Style
	infoStyle lipgloss.Style
}

const hintSeparator = " • "

// NewStatusBar creates a new status bar that displays the given version string.
func NewStatusBar(version string) *StatusBar {
	return &StatusBar{
		version:   version,
		keyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
		descStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")),
		sepStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		msgStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		infoStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
	}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetBindings sets the key hints shown when there is no message.
func (s *StatusBar) SetBindings(bindings []HelpBinding) {
	s.bindings = bindings
}

// SetMessage replaces the key hints with msg. An empty msg restores them.
func (s *StatusBar) SetMessage(msg string) {
	s.message = strings.ReplaceAll(msg, "\n", " ")
}

// Message returns the current message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetInfo sets the segments shown before the version. Empty segments are
// skipped.
func (s *StatusBar) SetInfo(segments ...string) {
	s.info = segments
}

// View renders the status bar. The result never exceeds the width; the right
// side is dropped first when space runs out.
func (s *StatusBar) View() string {
	if s.width <= 0 {
		return ""
	}

	right := s.renderRight()
	rightWidth := lipgloss.Width(right)

	const minGap = 1

	var left string
	if s.requiredLeftWidth()+minGap+rightWidth > s.width {
		left = s.renderLeft(s.width)
		right = ""
		rightWidth = 0
	} else {
		left = s.renderLeft(s.width - rightWidth - minGap)
	}

	leftWidth := lipgloss.Width(left)
	padding := max(s.width-leftWidth-rightWidth, 0)

	return left + strings.Repeat(" ", padding) + right
}

func (s *StatusBar) renderRight() string {
	var parts []string
	for _, seg := range s.info {
		if seg != "" {
			parts = append(parts, s.infoStyle.Render(seg))
		}
	}
	if s.version != "" {
		parts = append(parts, s.infoStyle.Render(s.version))
	}
	return strings.Join(parts, s.sepStyle.Render(hintSeparator))
}

// requiredLeftWidth is the width of the message, or of the pinned hints.
func (s *StatusBar) requiredLeftWidth() int {
	if s.message != "" {
		return lipgloss.Width(s.message)
	}

	width := 0
	for _, hb := range s.bindings {
		if !hb.Pinned || !hb.Binding.Enabled() {
			continue
		}
		h := hb.Binding.Help()
		if width > 0 {
			width += lipgloss.Width(hintSeparator)
		}
		width += lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Desc)
	}
	return width
}

// renderLeft renders the message or as many hints as fit in budget.
func (s *StatusBar) renderLeft(budget int) string {
	if budget <= 0 {
		return ""
	}

	if s.message != "" {
		return s.msgStyle.MaxWidth(budget).Render(s.message)
	}

	hints := s.pickHints(budget)
	rendered := make([]string, len(hints))
	for i, hb := range hints {
		h := hb.Binding.Help()
		rendered[i] = s.keyStyle.Render(h.Key) + " " + s.descStyle.Render(h.Desc)
	}
	return strings.Join(rendered, s.sepStyle.Render(hintSeparator))
}

// pickHints selects pinned hints first, then the rest by order, while they
// fit. The result is sorted by order.
func (s *StatusBar) pickHints(budget int) []HelpBinding {
	var candidates []HelpBinding
	for _, hb := range s.bindings {
		if hb.Binding.Enabled() && hb.Binding.Help().Key != "" {
			candidates = append(candidates, hb)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Pinned != candidates[j].Pinned {
			return candidates[i].Pinned
		}
		return candidates[i].Order < candidates[j].Order
	})

	sepWidth := lipgloss.Width(hintSeparator)

	var picked []HelpBinding
	used := 0
	for _, hb := range candidates {
		h := hb.Binding.Help()
		w := lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Desc)
		if len(picked) > 0 {
			w += sepWidth
		}
		if used+w > budget {
			continue
		}
		picked = append(picked, hb)
		used += w
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].Order < picked[j].Order
	})
	return picked
}
