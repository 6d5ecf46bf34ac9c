// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
	"github.com/Ricardo08S/StarrySky-4/internal/session"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
	"github.com/Ricardo08S/StarrySky-4/internal/version"
)

// sizeStep is the change in display size per bracket key press.
const sizeStep = 0.5

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSky ViewMode = iota
	ViewConstellations
)

// Session is the part of session.Manager the UI drives.
type Session interface {
	Toggle(i int) (constellation.ToggleResult, error)
	RebuildVisualSizes(minSize, maxSize float64) error
	Constellations() []session.ConstellationStatus
	VisibleStars() []star.Star
	Field() constellation.Field
	Snapshot() session.Snapshot
}

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// ErrorMsg signals a load error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	sess  Session
	scene func() render.Snapshot

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int
	lastErr   error

	skyView SkyViewModel

	// Data snapshot (refreshed on tick and after every mutation)
	snapshot       session.Snapshot
	constellations []session.ConstellationStatus
}

// New creates a new root UI model.
func New(sess Session, scene func() render.Snapshot, sensitivity float64) Model {
	m := Model{
		sess:     sess,
		scene:    scene,
		viewMode: ViewSky,
		skyView:  NewSkyViewModel(sensitivity),
	}
	m.refresh()
	return m
}

// WithObserver shows altitude and azimuth of the selected star from obs.
func (m Model) WithObserver(obs astro.Observer) Model {
	m.skyView = m.skyView.WithObserver(obs)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.skyView.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.toggle(int(key[0] - '0'))

		case "[":
			m.resize(-sizeStep, 0)
		case "]":
			m.resize(sizeStep, 0)
		case "{":
			m.resize(0, -sizeStep)
		case "}":
			m.resize(0, sizeStep)

		case "tab":
			m.viewMode = (m.viewMode + 1) % 2

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Title takes 3 lines, footer 2
		m.skyView = m.skyView.SetSize(msg.Width, msg.Height-5)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.refresh()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case ErrorMsg:
		m.lastErr = msg.Error

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// toggle flips constellation i and reports the outcome in the status line.
func (m *Model) toggle(i int) {
	res, err := m.sess.Toggle(i)
	switch {
	case errors.Is(err, constellation.ErrInvalidConstellationIndex):
		m.statusMsg = fmt.Sprintf("No constellation %d", i)
		return
	case err != nil:
		m.statusMsg = fmt.Sprintf("Toggle %d failed: %v", i, err)
		return
	}

	state := "hidden"
	if res.Visible {
		state = "shown"
	}
	m.statusMsg = fmt.Sprintf("%s %s", res.Name, state)
	if n := len(res.Missing); n > 0 {
		m.statusMsg += fmt.Sprintf(" (%d missing catalog entries)", n)
	}
	if n := len(res.Failed); n > 0 {
		m.statusMsg += fmt.Sprintf(" (%d render errors)", n)
	}
	m.refresh()
}

// resize shifts the display size bounds.
func (m *Model) resize(dMin, dMax float64) {
	f := m.sess.Field()
	minSize, maxSize := f.SizeMin+dMin, f.SizeMax+dMax
	if err := m.sess.RebuildVisualSizes(minSize, maxSize); err != nil {
		m.statusMsg = fmt.Sprintf("Size %.1f-%.1f rejected: %v", minSize, maxSize, err)
		return
	}
	m.statusMsg = fmt.Sprintf("Star size %.1f-%.1f", minSize, maxSize)
	m.refresh()
}

// refresh pulls fresh state from the session and the scene.
func (m *Model) refresh() {
	m.snapshot = m.sess.Snapshot()
	m.constellations = m.sess.Constellations()
	var scene render.Snapshot
	if m.scene != nil {
		scene = m.scene()
	}
	m.skyView = m.skyView.UpdateData(scene, m.snapshot.Field, m.sess.VisibleStars())
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.viewMode == ViewSky {
		m.skyView, cmd = m.skyView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSky:
		content = m.skyView.View()
	case ViewConstellations:
		content = RenderConstellationPanel(m.constellations)
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderTitle() + "\n" + m.renderTabs()
}

func (m Model) renderTitle() string {
	title := []rune("  ✦ S T A R R Y S K Y")

	var b strings.Builder
	for col, r := range title {
		color := gradientColor(col, 0, len(title), 1)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		b.WriteString(style.Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("   v%s", version.Version)))
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient.
// Blue -> purple -> magenta -> pink, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X",
		clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"Sky", "Constellations"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ") + "   " + RenderConstellationBar(m.constellations)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.lastErr != nil:
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	case m.snapshot.Stars == 0:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Waiting for catalog...")
	default:
		status = dimStyle.Render(fmt.Sprintf("%s catalog: %d stars", m.snapshot.Format, m.snapshot.Stars))
		if m.snapshot.Skipped > 0 {
			status += dimStyle.Render(fmt.Sprintf(" (%d skipped)", m.snapshot.Skipped))
		}
	}

	var help string
	switch m.viewMode {
	case ViewSky:
		help = dimStyle.Render("0-9: toggle | hjkl: pan | +/-: zoom | </>: sensitivity | [ ] { }: size | n/p: select | v: labels")
	default:
		help = dimStyle.Render("0-9: toggle | [ ] { }: size | tab: switch view")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + accentStyle.Render(m.statusMsg)
	}
	return footer
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}
