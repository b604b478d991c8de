package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-rigel/internal/astro"
	"github.com/litescript/ls-rigel/internal/sky"
	"github.com/litescript/ls-rigel/internal/state"
)

const (
	// Horizontal field of view in degrees
	defaultFOV = 120.0
	minFOV     = 10.0
	maxFOV     = 300.0
	zoomFactor = 1.25

	// Terminal cells are about twice as tall as wide
	cellAspect = 0.5

	// Animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	// Fainter stars are not drawn
	starMagnitudeLimit = 5.0

	// Body glyphs
	glyphSun    = '☼'
	glyphPlanet = '●'

	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '·' // mag 3.0-4.0
	glyphStarVeryDim = '·' // mag > 4.0

	colorFocused  = "229" // bright gold
	colorLabel    = "#D0C8FF"
	colorHorizon  = "60"  // muted purple
	colorAsterism = "238" // faint gray
	colorCardinal = "252"
	colorEmpty    = "236"
)

// LabelMode controls which bodies get a name label.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the focused body
	LabelAll                      // Sun, Moon, planets and bright stars
)

// Messages the sky view sends to the root model, which owns the state.
type (
	// CenterChangedMsg requests a new projection center.
	CenterChangedMsg struct {
		Center astro.Horizontal
	}

	// TimeShiftMsg requests moving simulated time.
	TimeShiftMsg struct {
		Delta time.Duration
	}

	// TimeResetMsg requests returning to wall-clock time.
	TimeResetMsg struct{}
)

// SkyViewModel renders the stereographic sky around the camera.
type SkyViewModel struct {
	width  int
	height int

	snapshot state.Snapshot

	// Camera position (center of view) and zoom, in degrees
	camAz  float64
	camAlt float64
	fov    float64

	// Animation state
	animating    bool
	animStartAz  float64
	animStartAlt float64
	animTargAz   float64
	animTargAlt  float64
	animStart    time.Time

	// Focus among the Sun, the Moon and the planets; -1 for none
	focusIdx int

	labelMode     LabelMode
	showAsterisms bool
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		camAz:         180,
		camAlt:        15,
		fov:           defaultFOV,
		focusIdx:      -1,
		labelMode:     LabelFocused,
		showAsterisms: true,
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	m.snapshot = snapshot
	if m.focusIdx >= len(m.bodies()) {
		m.focusIdx = -1
	}
	if !m.animating {
		m.camAz = snapshot.Center.AzDeg()
		m.camAlt = snapshot.Center.AltDeg()
	}
	return m
}

// FocusBody focuses the named body and moves the camera to it.
func (m SkyViewModel) FocusBody(name string) (SkyViewModel, tea.Cmd) {
	for i, b := range m.bodies() {
		if b.Name() == name {
			m.focusIdx = i
			return m.startAnimation()
		}
	}
	return m, nil
}

// bodies returns the focusable bodies: the Sun, the Moon, then the planets.
func (m SkyViewModel) bodies() []sky.Object {
	s := m.snapshot.Sky
	if s == nil {
		return nil
	}
	out := []sky.Object{s.Sun(), s.Moon()}
	for _, p := range s.Planets() {
		out = append(out, p)
	}
	return out
}

func (m SkyViewModel) focused() sky.Object {
	bodies := m.bodies()
	if m.focusIdx < 0 || m.focusIdx >= len(bodies) {
		return nil
	}
	return bodies[m.focusIdx]
}

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
		step := m.fov / 8
		switch msg.String() {
		case "left":
			return m.pan(-step, 0)
		case "right":
			return m.pan(step, 0)
		case "up":
			return m.pan(0, step)
		case "down":
			return m.pan(0, -step)
		case "+", "=":
			m.fov = math.Max(minFOV, m.fov/zoomFactor)
		case "-":
			m.fov = math.Min(maxFOV, m.fov*zoomFactor)
		case "k":
			return m.focusPrev()
		case "j":
			return m.focusNext()
		case "esc":
			m.focusIdx = -1
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "a":
			m.showAsterisms = !m.showAsterisms
		case "]":
			return m, shiftCmd(10 * time.Minute)
		case "[":
			return m, shiftCmd(-10 * time.Minute)
		case "}":
			return m, shiftCmd(24 * time.Hour)
		case "{":
			return m, shiftCmd(-24 * time.Hour)
		case "0":
			return m, func() tea.Msg { return TimeResetMsg{} }
		}

	case animTickMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}

	return m, nil
}

func shiftCmd(d time.Duration) tea.Cmd {
	return func() tea.Msg { return TimeShiftMsg{Delta: d} }
}

func (m SkyViewModel) pan(dAz, dAlt float64) (SkyViewModel, tea.Cmd) {
	m.animating = false
	m.camAz = normalizeAzimuth(m.camAz + dAz)
	m.camAlt = math.Max(-90, math.Min(90, m.camAlt+dAlt))
	return m, m.centerCmd()
}

func (m SkyViewModel) centerCmd() tea.Cmd {
	h, err := astro.NewHorizontalDeg(m.camAz, m.camAlt)
	if err != nil {
		return nil
	}
	return func() tea.Msg { return CenterChangedMsg{Center: h} }
}

func (m SkyViewModel) focusNext() (SkyViewModel, tea.Cmd) {
	n := len(m.bodies())
	if n == 0 {
		return m, nil
	}
	m.focusIdx = (m.focusIdx + 1) % n
	return m.startAnimation()
}

func (m SkyViewModel) focusPrev() (SkyViewModel, tea.Cmd) {
	n := len(m.bodies())
	if n == 0 {
		return m, nil
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = n - 1
	}
	return m.startAnimation()
}

func (m SkyViewModel) startAnimation() (SkyViewModel, tea.Cmd) {
	body := m.focused()
	if body == nil {
		return m, nil
	}

	h := m.snapshot.Sky.Horizontal(body)
	m.animating = true
	m.animStartAz = m.camAz
	m.animStartAlt = m.camAlt
	m.animTargAz = h.AzDeg()
	m.animTargAlt = h.AltDeg()
	m.animStart = time.Now()

	return m, animTick()
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	elapsed := time.Since(m.animStart)
	t := float64(elapsed) / float64(animDuration)

	if t >= 1.0 {
		// Animation complete
		m.animating = false
		m.camAz = normalizeAzimuth(m.animTargAz)
		m.camAlt = m.animTargAlt
		return m, m.centerCmd()
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)

	m.camAz = normalizeAzimuth(lerpAngle(m.animStartAz, m.animTargAz, t))
	m.camAlt = lerp(m.animStartAlt, m.animTargAlt, t)

	return m, tea.Batch(m.centerCmd(), animTick())
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}
	if m.snapshot.Sky == nil {
		return "Computing sky..."
	}

	// Reserve lines for header and status
	canvas := m.renderSkyCanvas(m.width, m.height-4)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))               // muted purple
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))      // soft purple

	title := titleStyle.Render("Sky View")

	when := m.snapshot.When.UTC().Format("2006-01-02 15:04 UTC")
	clock := accentStyle.Render(when)
	if m.snapshot.Offset != 0 {
		clock += dimStyle.Render(fmt.Sprintf(" (%+v)", m.snapshot.Offset))
	}

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = dimStyle.Render("Labels: off")
	case LabelFocused:
		labelStr = accentStyle.Render("Labels: focus")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}

	compass := dimStyle.Render(fmt.Sprintf("Az:%.0f° Alt:%.0f° FOV:%.0f°", m.camAz, m.camAlt, m.fov))

	return fmt.Sprintf("%s | %s | %s | %s", title, clock, labelStr, compass)
}

func (m SkyViewModel) renderStatus() string {
	s := m.snapshot.Sky
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorFocused))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))

	if body := m.focused(); body != nil {
		return accentStyle.Render(">>> "+describe(s, body)) + "\n" +
			dimStyle.Render("    "+body.Equatorial().String())
	}

	radius := s.Projection().ApplyToAngle(astro.OfDeg(m.fov / 4))
	if o, ok := s.ObjectClosestTo(astro.Pt(0, 0), radius); ok {
		return dimStyle.Render("Near center: "+describe(s, o)) + "\n" +
			dimStyle.Render("    "+o.Equatorial().String())
	}
	return dimStyle.Render("Nothing near center") + "\n"
}

// describe summarises where o is in s.
func describe(s *sky.ObservedSky, o sky.Object) string {
	h := s.Horizontal(o)
	return fmt.Sprintf("%s | Az:%.1f° Alt:%.1f° (%s) | mag %.2f",
		o.Info(), h.AzDeg(), h.AltDeg(), h.AzOctantName("N", "E", "S", "W"), o.Magnitude())
}

// screen maps projection-plane points to canvas cells.
type screen struct {
	width  int
	height int
	scale  float64 // cells per plane unit, horizontally
}

func newScreen(width, height int, proj *astro.StereographicProjection, fovDeg float64) screen {
	return screen{
		width:  width,
		height: height,
		scale:  float64(width) / proj.ApplyToAngle(astro.OfDeg(fovDeg)),
	}
}

func (sc screen) at(c astro.Cartesian) (int, int, bool) {
	x := float64(sc.width)/2 + c.X*sc.scale
	y := float64(sc.height)/2 - c.Y*sc.scale*cellAspect
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	xi, yi := int(math.Floor(x)), int(math.Floor(y))
	if xi < 0 || xi >= sc.width || yi < 0 || yi >= sc.height {
		return 0, 0, false
	}
	return xi, yi, true
}

// labelPos tracks a drawn body for label rendering.
type labelPos struct {
	x, y       int
	name       string
	isFocused  bool
	labelStart int
	labelEnd   int
}

// canvas is a grid of glyphs with per-cell colors.
type canvas struct {
	runes  [][]rune
	colors [][]lipgloss.Color
}

func newCanvas(width, height int) canvas {
	c := canvas{runes: make([][]rune, height), colors: make([][]lipgloss.Color, height)}
	for y := 0; y < height; y++ {
		c.runes[y] = make([]rune, width)
		c.colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			c.runes[y][x] = ' '
			c.colors[y][x] = colorEmpty
		}
	}
	return c
}

func (c canvas) set(x, y int, r rune, color lipgloss.Color) {
	c.runes[y][x] = r
	c.colors[y][x] = color
}

func (c canvas) String() string {
	var b strings.Builder
	for y := range c.runes {
		for x, r := range c.runes[y] {
			style := lipgloss.NewStyle().Foreground(c.colors[y][x])
			b.WriteString(style.Render(string(r)))
		}
		if y < len(c.runes)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	s := m.snapshot.Sky
	cv := newCanvas(width, height)
	sc := newScreen(width, height, s.Projection(), m.fov)

	m.drawHorizon(cv, sc, s.Projection())
	if m.showAsterisms {
		m.drawAsterisms(cv, sc, s)
	}

	var positions []labelPos

	// Stars from the catalogue
	sp := s.StarPositions()
	for i, st := range s.Stars() {
		if st.Magnitude() > starMagnitudeLimit {
			continue
		}
		x, y, ok := sc.at(astro.Pt(sp[2*i], sp[2*i+1]))
		if !ok || s.Horizontal(st).Alt() < 0 {
			continue
		}
		cv.set(x, y, starGlyph(st.Magnitude()), starColor(st.ColorTemperature(), st.Magnitude()))
		if m.labelMode == LabelAll && st.Magnitude() < 1.5 {
			positions = append(positions, labelPos{x: x, y: y, name: st.Name()})
		}
	}

	// Planets, then the Moon and the Sun on top. Bodies below the horizon
	// are hidden like stars unless focused.
	focused := m.focused()
	draw := func(o sky.Object, p astro.Cartesian, glyph rune) {
		isFocused := o == focused
		if !isFocused && s.Horizontal(o).Alt() < 0 {
			return
		}
		x, y, ok := sc.at(p)
		if !ok {
			return
		}
		color := bodyColor(o.Name())
		if isFocused {
			color = colorFocused
		}
		cv.set(x, y, glyph, color)
		positions = append(positions, labelPos{x: x, y: y, name: o.Name(), isFocused: isFocused})
	}
	pp := s.PlanetPositions()
	for i, p := range s.Planets() {
		draw(p, astro.Pt(pp[2*i], pp[2*i+1]), glyphPlanet)
	}
	draw(s.Moon(), s.MoonPosition(), moonGlyph(s.Moon().Phase()))
	draw(s.Sun(), s.SunPosition(), glyphSun)

	m.renderLabels(cv, width, height, positions)

	return cv.String()
}

// drawHorizon traces the altitude-0 parallel and marks the eight compass
// directions on it.
func (m SkyViewModel) drawHorizon(cv canvas, sc screen, proj *astro.StereographicProjection) {
	horizon, _ := astro.NewHorizontal(0, 0)
	r := proj.CircleRadiusForParallel(horizon)
	c := proj.CircleCenterForParallel(horizon)

	if math.IsInf(r, 0) || math.IsNaN(r) || math.Abs(r) > 1e4 {
		// The horizon passes through the antipode of the center: a straight line.
		y := sc.height / 2
		for x := 0; x < sc.width; x++ {
			cv.set(x, y, '─', colorHorizon)
		}
	} else {
		r = math.Abs(r)
		steps := 8 * (sc.width + sc.height)
		for i := 0; i < steps; i++ {
			sin, cos := math.Sincos(astro.Tau * float64(i) / float64(steps))
			if x, y, ok := sc.at(astro.Pt(c.X+r*cos, c.Y+r*sin)); ok {
				cv.set(x, y, '·', colorHorizon)
			}
		}
	}

	for k := 0; k < 8; k++ {
		h, err := astro.NewHorizontal(float64(k)*math.Pi/4, 0)
		if err != nil {
			continue
		}
		x, y, ok := sc.at(proj.Apply(h))
		if !ok {
			continue
		}
		for i, r := range h.AzOctantName("N", "E", "S", "W") {
			if x+i < sc.width {
				cv.set(x+i, y, r, colorCardinal)
			}
		}
	}
}

// drawAsterisms joins consecutive asterism stars that are both on screen.
func (m SkyViewModel) drawAsterisms(cv canvas, sc screen, s *sky.ObservedSky) {
	sp := s.StarPositions()
	for _, a := range s.Asterisms() {
		idx, err := s.AsterismIndices(a)
		if err != nil {
			continue
		}
		for i := 1; i < len(idx); i++ {
			x0, y0, ok0 := sc.at(astro.Pt(sp[2*idx[i-1]], sp[2*idx[i-1]+1]))
			x1, y1, ok1 := sc.at(astro.Pt(sp[2*idx[i]], sp[2*idx[i]+1]))
			if ok0 && ok1 {
				drawLine(cv, x0, y0, x1, y1)
			}
		}
	}
}

// drawLine plots a faint Bresenham line on empty cells.
func drawLine(cv canvas, x0, y0, x1, y1 int) {
	dx, sx := abs(x1-x0), 1
	if x0 > x1 {
		sx = -1
	}
	dy, sy := -abs(y1-y0), 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if cv.runes[y0][x0] == ' ' {
			cv.set(x0, y0, '·', colorAsterism)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// renderLabels draws body labels on the canvas based on label mode.
// The focused body's label takes priority in overlapping regions.
func (m SkyViewModel) renderLabels(cv canvas, width, height int, positions []labelPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	// Labels start 2 cells after the glyph; focused ones carry a "◄ " prefix
	for i := range positions {
		pos := &positions[i]
		pos.labelStart = pos.x + 2
		labelLen := len([]rune(pos.name))
		if pos.isFocused {
			labelLen += 2
		}
		pos.labelEnd = pos.labelStart + labelLen
	}

	// Cells claimed by the focused label, per row
	focusedClaims := make(map[int]map[int]bool)
	for _, pos := range positions {
		if !pos.isFocused {
			continue
		}
		if focusedClaims[pos.y] == nil {
			focusedClaims[pos.y] = make(map[int]bool)
		}
		for x := pos.labelStart; x < pos.labelEnd; x++ {
			focusedClaims[pos.y][x] = true
		}
	}

	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}

		labelColor := lipgloss.Color(colorLabel)
		labelText := pos.name
		if pos.isFocused {
			labelColor = colorFocused
			labelText = "◄ " + pos.name
		}

		for i, r := range []rune(labelText) {
			x := pos.labelStart + i
			if x < 0 || x >= width || pos.y < 0 || pos.y >= height {
				continue
			}
			if !pos.isFocused && focusedClaims[pos.y][x] {
				continue
			}
			cv.set(x, pos.y, r, labelColor)
		}
	}
}

// starGlyph returns the glyph for a star of the given magnitude. Brighter
// stars (lower magnitude) get more prominent symbols.
func starGlyph(mag float64) rune {
	switch {
	case mag < 1.5:
		return glyphStarBright
	case mag < 3.0:
		return glyphStarMedium
	case mag < 4.0:
		return glyphStarDim
	default:
		return glyphStarVeryDim
	}
}

// moonGlyph picks a glyph for the illuminated fraction.
func moonGlyph(phase float64) rune {
	switch {
	case phase < 0.1:
		return '○'
	case phase < 0.4:
		return '☾'
	case phase < 0.75:
		return '◐'
	default:
		return '●'
	}
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

// normalizeAzimuth wraps angle to [0, 360).
func normalizeAzimuth(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
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

// Init returns nil cmd
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
