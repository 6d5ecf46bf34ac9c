package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ricardo08S/StarrySky-4/internal/session"
)

// Constellation panel colors
const (
	colorShown  = "#7CFC00" // Lawn green
	colorHidden = "#444444" // Dark gray
	colorKey    = "135"     // violet
)

// keyFor returns the toggle key for a constellation index, or "" when
// the index has no digit key.
func keyFor(index int) string {
	if index < 0 || index > 9 {
		return ""
	}
	return fmt.Sprintf("%d", index)
}

// RenderConstellationBar renders a compact row of toggle keys.
// Format: 0 Orion ●   1 Monoceros ○   ...
func RenderConstellationBar(statuses []session.ConstellationStatus) string {
	if len(statuses) == 0 {
		return ""
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorKey)).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	var parts []string
	for _, st := range statuses {
		key := keyFor(st.Index)
		if key == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(key)+" "+nameStyle.Render(st.Name)+" "+visibilityDot(st.Visible))
	}
	return strings.Join(parts, "   ")
}

// RenderConstellationPanel renders one line per constellation.
// Format:
//
//	[0] Orion        shown   20 stars  21 lines
//	[1] Monoceros    hidden   8 stars   8 lines
func RenderConstellationPanel(statuses []session.ConstellationStatus) string {
	if len(statuses) == 0 {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorKey)).Bold(true)

	var lines []string
	for _, st := range statuses {
		key := keyFor(st.Index)
		if key == "" {
			key = "-"
		}
		line := labelStyle.Render(fmt.Sprintf("[%s] %-12s", key, st.Name))
		state := "hidden"
		if st.Visible {
			state = "shown"
		}
		line += " " + colorByVisibility(st.Visible, fmt.Sprintf("%-7s", state))
		line += dimStyle.Render(fmt.Sprintf("%3d stars %3d lines", st.Vertices, st.Edges))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func visibilityDot(visible bool) string {
	if visible {
		return colorByVisibility(true, "●")
	}
	return colorByVisibility(false, "○")
}

func colorByVisibility(visible bool, text string) string {
	color := colorHidden
	if visible {
		color = colorShown
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}
