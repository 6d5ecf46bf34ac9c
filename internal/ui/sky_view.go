package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

const (
	// Field of view limits in degrees
	defaultFOV = 60.0
	minFOV     = 15.0
	maxFOV     = 90.0

	// Camera steps per key press, multiplied by the sensitivity
	panStepDeg  = 2.5
	zoomStepDeg = 2.5

	DefaultSensitivity = 2.0
	minSensitivity     = 0.5
	maxSensitivity     = 10.0

	// Terminal cells are roughly twice as tall as wide
	cellAspect = 0.5

	// Animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	// Star glyphs by relative display size
	glyphStarBright  = '✶'
	glyphStarMedium  = '✸'
	glyphStarDim     = '•'
	glyphStarVeryDim = '·'
	glyphSelected    = '◆'
	glyphLine        = '∙'

	colorSelected = "229" // bright gold
	colorLine     = "60"  // muted purple
	colorLabel    = "#d0c8ff"
)

// LabelMode controls how star labels are displayed.
type LabelMode int

const (
	LabelNone     LabelMode = iota // No labels
	LabelSelected                  // Only the selected star
	LabelAll                       // Every constellation vertex
)

// SkyViewModel renders the celestial sphere around a camera direction.
type SkyViewModel struct {
	width  int
	height int

	// Camera direction (degrees) and zoom
	camRA       float64
	camDec      float64
	fov         float64
	sensitivity float64

	// Animation state
	animating    bool
	animStartRA  float64
	animStartDec float64
	animTargRA   float64
	animTargDec  float64
	animStart    time.Time

	// Scene contents
	scene render.Snapshot
	field constellation.Field

	// Selection cycles over the vertices of visible constellations
	focusIdx   int
	selectable []star.Star

	labelMode LabelMode

	// Optional ground site for altitude/azimuth readouts
	observer *astro.Observer
	now      func() time.Time
}

// NewSkyViewModel creates a new sky view model looking at Orion.
func NewSkyViewModel(sensitivity float64) SkyViewModel {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	return SkyViewModel{
		camRA:       85,
		camDec:      0,
		fov:         defaultFOV,
		sensitivity: clampFloat(sensitivity, minSensitivity, maxSensitivity),
		labelMode:   LabelSelected,
		field:       constellation.DefaultField(),
	}
}

// WithObserver enables altitude and azimuth readouts for the selected star.
func (m SkyViewModel) WithObserver(obs astro.Observer) SkyViewModel {
	m.observer = &obs
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the scene and the selectable stars.
func (m SkyViewModel) UpdateData(scene render.Snapshot, field constellation.Field, selectable []star.Star) SkyViewModel {
	m.scene = scene
	m.field = field
	m.selectable = selectable
	if m.focusIdx >= len(m.selectable) {
		m.focusIdx = 0
	}
	return m
}

// Selected returns the selected star, if any.
func (m SkyViewModel) Selected() (star.Star, bool) {
	if m.focusIdx < 0 || m.focusIdx >= len(m.selectable) {
		return star.Star{}, false
	}
	return m.selectable[m.focusIdx], true
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		step := panStepDeg * m.sensitivity
		switch msg.String() {
		case "up", "k":
			m = m.pan(0, step)
		case "down", "j":
			m = m.pan(0, -step)
		case "left", "h":
			m = m.pan(step, 0)
		case "right", "l":
			m = m.pan(-step, 0)
		case "+", "=":
			m = m.zoom(-zoomStepDeg * m.sensitivity)
		case "-", "_":
			m = m.zoom(zoomStepDeg * m.sensitivity)
		case ">", ".":
			m.sensitivity = clampFloat(m.sensitivity+0.5, minSensitivity, maxSensitivity)
		case "<", ",":
			m.sensitivity = clampFloat(m.sensitivity-0.5, minSensitivity, maxSensitivity)
		case "n":
			return m.focusNext()
		case "p":
			return m.focusPrev()
		case "v":
			m = m.cycleLabelMode()
		}

	case animTickMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}

	return m, nil
}

// pan moves the camera. Declination stops at the poles.
func (m SkyViewModel) pan(dRA, dDec float64) SkyViewModel {
	m.animating = false
	m.camRA = wrapDegrees(m.camRA + dRA)
	m.camDec = clampFloat(m.camDec+dDec, -90, 90)
	return m
}

func (m SkyViewModel) zoom(d float64) SkyViewModel {
	m.fov = clampFloat(m.fov+d, minFOV, maxFOV)
	return m
}

func (m SkyViewModel) cycleLabelMode() SkyViewModel {
	m.labelMode = (m.labelMode + 1) % 3
	return m
}

func (m SkyViewModel) focusNext() (SkyViewModel, tea.Cmd) {
	if len(m.selectable) == 0 {
		return m, nil
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.selectable)
	return m.startAnimation()
}

func (m SkyViewModel) focusPrev() (SkyViewModel, tea.Cmd) {
	if len(m.selectable) == 0 {
		return m, nil
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.selectable) - 1
	}
	return m.startAnimation()
}

func (m SkyViewModel) startAnimation() (SkyViewModel, tea.Cmd) {
	s, ok := m.Selected()
	if !ok {
		return m, nil
	}

	m.animating = true
	m.animStartRA = m.camRA
	m.animStartDec = m.camDec
	m.animTargRA = astro.RadToDeg(s.RA)
	m.animTargDec = astro.RadToDeg(s.Dec)
	m.animStart = time.Now()

	return m, animTick()
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	elapsed := time.Since(m.animStart)
	t := float64(elapsed) / float64(animDuration)

	if t >= 1.0 {
		m.animating = false
		m.camRA = wrapDegrees(m.animTargRA)
		m.camDec = m.animTargDec
		return m, nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)

	m.camRA = wrapDegrees(lerpAngle(m.animStartRA, m.animTargRA, t))
	m.camDec = lerp(m.animStartDec, m.animTargDec, t)

	return m, animTick()
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	// Reserve lines for header and status
	viewHeight := m.height - 4
	viewWidth := m.width

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(viewWidth, viewHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))

	title := titleStyle.Render("Sky View")

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = dimStyle.Render("Labels: off")
	case LabelSelected:
		labelStr = accentStyle.Render("Labels: selected")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}

	camera := dimStyle.Render(fmt.Sprintf("RA:%.1f° Dec:%+.1f° FOV:%.0f° Sens:%.1f",
		m.camRA, m.camDec, m.fov, m.sensitivity))
	sizes := dimStyle.Render(fmt.Sprintf("Size:%.1f-%.1f", m.field.SizeMin, m.field.SizeMax))

	return fmt.Sprintf("%s | %s | %s | %s", title, camera, sizes, labelStr)
}

func (m SkyViewModel) renderStatus() string {
	s, ok := m.Selected()
	if !ok {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
		return dimStyle.Render(fmt.Sprintf("%d stars, %d constellation lines | toggle a constellation to select its stars",
			len(m.scene.Stars), m.lineCount()))
	}

	line1 := fmt.Sprintf(">>> HR %d %s | RA %s Dec %s | %s",
		s.CatalogNumber,
		s.DisplayName(),
		astro.FormatRA(s.RA),
		astro.FormatDec(s.Dec),
		s.SpectralLabel(),
	)
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSelected))
	status := accentStyle.Render(line1)

	colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color.Hex()))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))
	mag := "-"
	if s.HasMagnitude {
		mag = fmt.Sprintf("%.2f", s.Magnitude)
	}
	line2 := fmt.Sprintf("    %s %s | mag %s | size %.2f | %d/%d",
		colorStyle.Render("●"),
		s.Color.Hex(),
		mag,
		m.field.DisplaySize(s),
		m.focusIdx+1,
		len(m.selectable),
	)
	if h, ok := m.horizon(s); ok {
		line2 += " | " + formatHorizon(h, m.observer.Name)
	}
	return status + "\n" + dimStyle.Render(line2)
}

// horizon places s on the observer's sky, when an observer is set.
func (m SkyViewModel) horizon(s star.Star) (astro.Horizontal, bool) {
	if m.observer == nil || m.now == nil {
		return astro.Horizontal{}, false
	}
	return astro.ToHorizontal(s.RA, s.Dec, *m.observer, m.now()), true
}

func formatHorizon(h astro.Horizontal, site string) string {
	if site == "" {
		site = "site"
	}
	if !h.AboveHorizon() {
		return fmt.Sprintf("below %s horizon (alt %.1f°)", site, h.AltDeg)
	}
	return fmt.Sprintf("alt %.1f° az %.1f° from %s", h.AltDeg, h.AzDeg, site)
}

func (m SkyViewModel) lineCount() int {
	n := 0
	for _, g := range m.scene.Groups {
		n += len(g.Lines)
	}
	return n
}

// starPos tracks a drawn star for label rendering
type starPos struct {
	x, y       int
	name       string
	isSelected bool
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236" // very dark background
		}
	}

	// Constellation lines under the stars
	for _, g := range m.scene.Groups {
		for _, seg := range g.Lines {
			m.drawSegment(canvas, colors, width, height, seg)
		}
	}

	selected, hasSelected := m.Selected()
	vertices := make(map[int]bool, len(m.selectable))
	for _, s := range m.selectable {
		vertices[s.CatalogNumber] = true
	}

	var positions []starPos
	for _, v := range m.scene.Stars {
		x, y, ok := m.projectToScreen(v.Position, width, height)
		if !ok {
			continue
		}

		isSelected := hasSelected && v.CatalogNumber == selected.CatalogNumber
		if isSelected {
			canvas[y][x] = glyphSelected
			colors[y][x] = colorSelected
		} else {
			canvas[y][x] = m.starGlyph(v.Size)
			colors[y][x] = lipgloss.Color(v.Color.Hex())
		}

		if vertices[v.CatalogNumber] {
			positions = append(positions, starPos{x: x, y: y, name: v.Name, isSelected: isSelected})
		}
	}

	m.renderLabels(canvas, colors, width, height, positions)

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// drawSegment plots a line between two projected points. Cells already
// holding a glyph are left alone.
func (m SkyViewModel) drawSegment(canvas [][]rune, colors [][]lipgloss.Color, width, height int, seg astro.Segment) {
	x0, y0, ok0 := m.project(seg.From, width, height)
	x1, y1, ok1 := m.project(seg.To, width, height)
	if !ok0 || !ok1 {
		return
	}

	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		steps = 1
	}
	// Segments crossing far outside the canvas are not worth walking.
	if steps > 4*(width+height) {
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Floor(lerp(x0, x1, t)))
		y := int(math.Floor(lerp(y0, y1, t)))
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		if canvas[y][x] != ' ' {
			continue
		}
		canvas[y][x] = glyphLine
		colors[y][x] = colorLine
	}
}

// renderLabels draws star names to the right of their glyphs.
// The selected star's label is drawn last so it wins overlaps.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width, height int, positions []starPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	draw := func(pos starPos) {
		labelColor := lipgloss.Color(colorLabel)
		labelText := pos.name
		if pos.isSelected {
			labelColor = colorSelected
			labelText = "◄ " + pos.name
		}
		for i, r := range []rune(labelText) {
			x := pos.x + 2 + i
			if x < 0 || x >= width || pos.y < 0 || pos.y >= height {
				continue
			}
			canvas[pos.y][x] = r
			colors[pos.y][x] = labelColor
		}
	}

	if m.labelMode == LabelAll {
		for _, pos := range positions {
			if !pos.isSelected {
				draw(pos)
			}
		}
	}
	for _, pos := range positions {
		if pos.isSelected {
			draw(pos)
		}
	}
}

// starGlyph picks a glyph from the display size relative to the field's
// size bounds.
func (m SkyViewModel) starGlyph(size float64) rune {
	t := 1.0
	if m.field.SizeMax > m.field.SizeMin {
		t = star.InverseLerp(m.field.SizeMin, m.field.SizeMax, size)
	}
	switch {
	case t > 0.75:
		return glyphStarBright
	case t > 0.5:
		return glyphStarMedium
	case t > 0.25:
		return glyphStarDim
	default:
		return glyphStarVeryDim
	}
}

// cameraBasis returns the view direction and the north and east tangents
// at that direction.
func (m SkyViewModel) cameraBasis() (forward, north, east astro.Vec3) {
	ra := astro.DegToRad(m.camRA)
	dec := astro.DegToRad(m.camDec)
	forward = astro.Project(ra, dec)
	east = astro.Vec3{X: -math.Sin(ra), Z: math.Cos(ra)}
	north = astro.Vec3{
		X: -math.Cos(ra) * math.Sin(dec),
		Y: math.Cos(dec),
		Z: -math.Sin(ra) * math.Sin(dec),
	}
	return forward, north, east
}

// project maps a direction onto the screen plane with a gnomonic
// projection. Seen from inside the sphere, east is to the left.
// The result may fall outside the canvas; ok is false behind the camera.
func (m SkyViewModel) project(p astro.Vec3, width, height int) (x, y float64, ok bool) {
	p = p.Normalized()
	forward, north, east := m.cameraBasis()

	d := p.Dot(forward)
	if d <= 1e-6 {
		return 0, 0, false
	}
	u := -p.Dot(east) / d
	v := p.Dot(north) / d

	scale := float64(width) / 2 / math.Tan(astro.DegToRad(m.fov/2))
	x = float64(width)/2 + u*scale
	y = float64(height)/2 - v*scale*cellAspect
	return x, y, true
}

// projectToScreen converts a direction to a canvas cell.
func (m SkyViewModel) projectToScreen(p astro.Vec3, width, height int) (int, int, bool) {
	fx, fy, ok := m.project(p, width, height)
	if !ok {
		return 0, 0, false
	}
	x, y := int(math.Floor(fx)), int(math.Floor(fy))
	if x < 0 || x >= width || y < 0 || y >= height {
		return 0, 0, false
	}
	return x, y, true
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// wrapDegrees wraps angle to 0..360
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	diff := normalizeAngle(b - a)
	return a + diff*t
}

// lerp linear interpolation
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Init returns nil cmd
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
