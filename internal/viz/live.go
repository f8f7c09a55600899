package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/vec"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 42
	historyCapacity = 120
)

// Options configure the terminal host.
type Options struct {
	// Width and Height are the canvas size in terminal cells. Zero picks a
	// default; a window resize overrides both.
	Width, Height int
	FrameRate     float64
	Theme         string
}

type TickMsg time.Time

func tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea host around one world. Mouse position is the
// pointer (2-D only), left button attracts, right button spawns.
type Model[V vec.Vector[V]] struct {
	world  *sim.World[V]
	canvas *Canvas
	camera *Camera
	theme  Theme
	styles styles

	every time.Duration
	last  time.Time

	pending sim.Input[V]
	pointer V
	attract bool
	spawn   bool
	snap    sim.Snapshot[V]

	fpsHist   []float64
	stepsHist []float64
	order     []int
	showHelp  bool
}

func NewModel[V vec.Vector[V]](w *sim.World[V], opts Options) *Model[V] {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	theme := GetTheme(opts.Theme)
	return &Model[V]{
		world:     w,
		canvas:    NewCanvas(opts.Width, opts.Height),
		camera:    NewCamera(),
		theme:     theme,
		styles:    newStyles(theme),
		every:     time.Duration(float64(time.Second) / opts.FrameRate),
		pointer:   w.Params().Extent.Mul(0.5),
		fpsHist:   make([]float64, 0, historyCapacity),
		stepsHist: make([]float64, 0, historyCapacity),
	}
}

func (m *Model[V]) Init() tea.Cmd {
	return tick(m.every)
}

func (m *Model[V]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		w, h := msg.Width-panelWidth-4, msg.Height-1
		if w >= 20 && h >= 8 {
			m.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		m.step(time.Time(msg))
		m.draw()
		return m, tick(m.every)
	}
	return m, nil
}

func (m *Model[V]) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return tea.Quit
	case " ":
		m.pending.ToggleGravity = true
	case "d":
		m.pending.CycleDisplay = true
	case "up", "k":
		m.pending.StepUp = true
	case "down", "j":
		m.pending.StepDown = true
	case "f":
		m.pending.Delete = true
	case "a":
		m.world.SetAutoSteps(!m.world.AutoSteps())
	case "t":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "left", "h":
		m.camera.Orbit(-0.1, 0)
	case "right", "l":
		m.camera.Orbit(0.1, 0)
	case "[":
		m.camera.Orbit(0, -0.1)
	case "]":
		m.camera.Orbit(0, 0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model[V]) handleMouse(msg tea.MouseMsg) {
	if p, ok := m.unproject(msg.X, msg.Y); ok {
		m.pointer = p
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.attract = true
		case tea.MouseButtonRight:
			m.spawn = true
		}
	case tea.MouseActionRelease:
		m.attract, m.spawn = false, false
	}
}

// step runs one world frame with the input gathered since the last tick.
func (m *Model[V]) step(now time.Time) {
	dt := m.every.Seconds()
	if !m.last.IsZero() {
		dt = now.Sub(m.last).Seconds()
	}
	m.last = now

	in := m.pending
	in.Pointer = m.pointer
	in.Attract = m.attract
	in.Spawn = m.spawn
	in.Dt = dt
	m.pending = sim.Input[V]{}

	m.snap = m.world.Frame(in)
	m.fpsHist = appendCapped(m.fpsHist, m.snap.FPS)
	m.stepsHist = appendCapped(m.stepsHist, float64(m.snap.SimSteps))
}

func appendCapped(xs []float64, x float64) []float64 {
	if len(xs) == historyCapacity {
		copy(xs, xs[1:])
		xs = xs[:len(xs)-1]
	}
	return append(xs, x)
}

// scale2D is dots per domain unit for a planar world.
func (m *Model[V]) scale2D() float64 {
	w, h := m.canvas.Dots()
	ext := m.world.Params().Extent
	return min(float64(w)/ext.At(0), float64(h)/ext.At(1))
}

// unproject maps a terminal cell to a domain point. Only planar worlds have
// one; 3-D worlds keep the pointer at the domain center.
func (m *Model[V]) unproject(cellX, cellY int) (V, bool) {
	var p V
	if p.Dim() != 2 {
		return p, false
	}
	// one cell of canvas padding on the left
	col := cellX - 1
	if col < 0 || col >= m.canvas.Width || cellY < 0 || cellY >= m.canvas.Height {
		return p, false
	}
	s := m.scale2D()
	p = p.With(0, (float64(col*2)+1)/s)
	p = p.With(1, (float64(cellY*4)+2)/s)
	return p, true
}

func (m *Model[V]) draw() {
	m.canvas.Clear()
	if m.snap.Extent.Dim() == 2 {
		m.draw2D()
	} else {
		m.draw3D()
	}
}

func (m *Model[V]) draw2D() {
	s := m.scale2D()
	right, bottom := int(m.snap.Extent.At(0)*s)-1, int(m.snap.Extent.At(1)*s)-1
	border := string(m.theme.Border)
	m.canvas.Line(0, 0, right, 0, border)
	m.canvas.Line(right, 0, right, bottom, border)
	m.canvas.Line(right, bottom, 0, bottom, border)
	m.canvas.Line(0, bottom, 0, 0, border)
	for _, b := range m.snap.Bodies {
		m.canvas.Disc(int(b.Position.At(0)*s), int(b.Position.At(1)*s), b.Radius*s, b.Color.Hex())
	}
}

func toVec3[V vec.Vector[V]](v V) vec.Vec3 {
	return vec.Vec3{v.At(0), v.At(1), v.At(2)}
}

func (m *Model[V]) draw3D() {
	w, h := m.canvas.Dots()
	ext := toVec3(m.snap.Extent)
	m.drawBox(ext, w, h)

	type projected struct {
		x, y   int
		depth  float64
		radius float64
	}
	proj := make([]projected, len(m.snap.Bodies))
	m.order = m.order[:0]
	for i, b := range m.snap.Bodies {
		x, y, depth, scale, ok := m.camera.Project(toVec3(b.Position), ext, w, h)
		if !ok {
			continue
		}
		proj[i] = projected{x, y, depth, b.Radius * scale}
		m.order = append(m.order, i)
	}
	sort.Slice(m.order, func(a, b int) bool {
		return proj[m.order[a]].depth > proj[m.order[b]].depth
	})
	for _, i := range m.order {
		p := proj[i]
		m.canvas.Disc(p.x, p.y, p.radius, m.snap.Bodies[i].Color.Hex())
	}
}

// drawBox draws the twelve edges of the domain.
func (m *Model[V]) drawBox(ext vec.Vec3, w, h int) {
	var corners [8][2]int
	var visible [8]bool
	for i := range corners {
		c := vec.Vec3{float64(i & 1), float64(i >> 1 & 1), float64(i >> 2 & 1)}
		c = vec.Vec3{c[0] * ext[0], c[1] * ext[1], c[2] * ext[2]}
		x, y, _, _, ok := m.camera.Project(c, ext, w, h)
		corners[i], visible[i] = [2]int{x, y}, ok
	}
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			j := i | bit
			if j == i || !visible[i] || !visible[j] {
				continue
			}
			m.canvas.Line(corners[i][0], corners[i][1], corners[j][0], corners[j][1], string(m.theme.Border))
		}
	}
}

func (m *Model[V]) View() string {
	st := m.styles
	snap := m.snap

	var s strings.Builder
	s.WriteString(st.title.Render(GradientText("BALL COLLISIONS", m.theme.Title, m.theme.Graph)) + "\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	fps := fmt.Sprintf("%.1f", snap.FPS)
	if snap.FPS > 0 && snap.FPS < m.world.Params().TargetFPS {
		fps = st.alert.Render(fps)
	}
	s.WriteString(st.label.Render("FPS") + st.value.Render(fps) + "\n")
	policy := "manual"
	if m.world.AutoSteps() {
		policy = "auto"
	}
	row("SIM STEPS", fmt.Sprintf("%d (%s)", snap.SimSteps, policy))
	s.WriteString(strings.Repeat(" ", 11) + Meter(float64(snap.SimSteps)/control.MaxSteps, 20, m.theme.Alert, m.theme.Graph) + "\n")
	row("BALLS", fmt.Sprintf("%d", snap.Stats.Bodies))
	row("MODE", snap.Mode.String())
	row("GRAVITY", onOff(snap.Gravity))
	row("PEAK SPEED", fmt.Sprintf("%.1f", snap.PeakSpeed))
	row("PEAK PRESS", fmt.Sprintf("%.3f", snap.PeakPressure))

	if len(m.fpsHist) > 1 {
		chart := asciigraph.Plot(m.fpsHist, asciigraph.Height(5), asciigraph.Width(28), asciigraph.Caption("fps"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	s.WriteString(st.label.Render("steps") + Sparkline(m.stepsHist, 24) + "\n")

	if m.showHelp {
		s.WriteString(st.help.Render(helpText))
	} else {
		s.WriteString(st.help.Render("?: help  q: quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.canvas.Render(m.canvas.Render()),
		st.panel.Render(s.String()))
}

const helpText = `space  toggle gravity
d      cycle display mode
up/dn  sim steps (manual)
a      auto/manual steps
f      delete near pointer
lmb    attract   rmb spawn
h/l [] orbit     +/- zoom
t      theme     q   quit`

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts the host full screen with mouse tracking and blocks until the
// user quits.
func Run[V vec.Vector[V]](w *sim.World[V], opts Options) error {
	p := tea.NewProgram(NewModel(w, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
