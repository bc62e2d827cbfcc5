package ui

import (
	"charm.land/lipgloss/v2"
)

// Colors
var (
	secondaryColor = lipgloss.Color("241") // Gray
	selectionColor = lipgloss.Color("238") // Dark gray
)

// Styles for the editor panel
var (
	// Line numbers and past-the-end markers
	GutterStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	CursorStyle = lipgloss.NewStyle().
			Reverse(true)

	SelectionStyle = lipgloss.NewStyle().
			Background(selectionColor)
)
