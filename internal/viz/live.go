package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/springies/internal/config"
	"github.com/san-kum/springies/internal/input"
	"github.com/san-kum/springies/internal/metrics"
	"github.com/san-kum/springies/internal/model"
	"github.com/san-kum/springies/internal/phys"
	"github.com/san-kum/springies/internal/vect"
)

const (
	canvasWidth     = 78
	canvasHeight    = 22
	historyCapacity = 600

	// Terminal rows/cols between the top-left of the program and the
	// top-left canvas cell, used to map mouse events into the world.
	canvasRowOffset = 2
	canvasColOffset = 1
)

type TickMsg time.Time

// massState is the initial kinematic state restored on reset.
type massState struct {
	pos, vel vect.Vec
}

// View is the live bubbletea frontend. Keyboard toggles go through the
// command mailbox so the model consumes them with its usual
// once-per-tick contract; the view never flips a force flag itself.
type View struct {
	md      *model.Model
	keys    *input.Commands
	pointer *input.Pointer
	cfg     *config.Config

	name          string
	canvas        *Canvas
	proj          Projection
	t             float64
	running       bool
	dragging      bool
	showHelp      bool
	initial       map[string]massState
	energyHistory []float64
}

func NewView(md *model.Model, keys *input.Commands, pointer *input.Pointer, cfg *config.Config, name string) View {
	canvas := NewCanvas(canvasWidth, canvasHeight)
	initial := make(map[string]massState, len(md.Masses()))
	for _, m := range md.Masses() {
		initial[m.ID] = massState{pos: m.Pos, vel: m.Vel}
	}
	return View{
		md:            md,
		keys:          keys,
		pointer:       pointer,
		cfg:           cfg,
		name:          name,
		canvas:        canvas,
		proj:          Projection{Bounds: md.Bounds(), Canvas: canvas},
		running:       true,
		initial:       initial,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the live view and blocks until it exits.
func Run(md *model.Model, keys *input.Commands, pointer *input.Pointer, cfg *config.Config, name string) error {
	p := tea.NewProgram(NewView(md, keys, pointer, cfg, name), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (v View) Init() tea.Cmd {
	return v.tick()
}

func (v View) tick() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)*v.cfg.Dt), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (v View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return v, tea.Quit
		case " ":
			v.running = !v.running
		case "r":
			v.reset()
		case "?":
			v.showHelp = !v.showHelp
		default:
			if cmd, ok := toggleFor(v.cfg.Keys, key); ok {
				v.keys.Post(cmd)
			}
		}

	case tea.MouseMsg:
		v.handleMouse(msg)

	case TickMsg:
		if v.running {
			v.md.Update(v.cfg.Dt)
			v.t += v.cfg.Dt
			v.energyHistory = append(v.energyHistory, metrics.Total(v.md))
			if len(v.energyHistory) > historyCapacity {
				v.energyHistory = v.energyHistory[1:]
			}
		}
		return v, v.tick()
	}
	return v, nil
}

// toggleFor resolves a pressed key against the configured bindings.
func toggleFor(keys config.KeyConfig, key string) (input.Command, bool) {
	switch key {
	case keys.Gravity:
		return input.ToggleGravity, true
	case keys.Viscosity:
		return input.ToggleViscosity, true
	case keys.CenterMass:
		return input.ToggleCenterMass, true
	case keys.WallTop:
		return input.ToggleWallTop, true
	case keys.WallRight:
		return input.ToggleWallRight, true
	case keys.WallBottom:
		return input.ToggleWallBottom, true
	case keys.WallLeft:
		return input.ToggleWallLeft, true
	}
	return input.None, false
}

func (v *View) handleMouse(msg tea.MouseMsg) {
	pos := v.proj.Unproject(msg.X-canvasColOffset, msg.Y-canvasRowOffset)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		v.pointer.Set(pos)
		v.md.StartDrag(pos)
		v.dragging = true
	case tea.MouseActionMotion:
		if v.dragging {
			v.pointer.Set(pos)
		}
	case tea.MouseActionRelease:
		// X10-style terminals report releases without a button; the
		// release must end the drag either way.
		v.md.EndDrag()
		v.pointer.Clear()
		v.dragging = false
	}
}

func (v *View) reset() {
	v.t = 0
	v.energyHistory = v.energyHistory[:0]
	v.md.EndDrag()
	for _, m := range v.md.Masses() {
		if st, ok := v.initial[m.ID]; ok {
			m.Pos = st.pos
			m.Vel = st.vel
		}
	}
}

func (v *View) draw() {
	v.canvas.Clear()

	drawLink := func(link phys.Linker) {
		a, b := link.Ends()
		x0, y0 := v.proj.Point(a.Pos)
		x1, y1 := v.proj.Point(b.Pos)
		v.canvas.DrawLine(x0, y0, x1, y1)
	}

	for _, link := range v.md.Links() {
		drawLink(link)
	}
	if drag := v.md.Drag(); drag != nil {
		drawLink(drag)
	}
	for _, m := range v.md.Masses() {
		x, y := v.proj.Point(m.Pos)
		v.canvas.DrawDot(x, y)
	}
}

func (v View) View() string {
	v.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render("SPRINGIES "+strings.ToUpper(v.name)) + "\n")

	status := "RUNNING"
	if !v.running {
		status = "PAUSED"
	}
	s.WriteString(fmt.Sprintf("%s  t=%.2fs\n", status, v.t))

	canvasView := canvasStyle.Render(v.canvas.String())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvasView, v.statsView()))

	if len(v.energyHistory) > 1 {
		graph := asciigraph.Plot(v.energyHistory,
			asciigraph.Height(5),
			asciigraph.Width(70),
			asciigraph.Caption("energy"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	if v.showHelp {
		s.WriteString(helpStyle.Render(v.helpView()))
	} else {
		s.WriteString(helpStyle.Render("space pause · r reset · drag with mouse · ? help · q quit"))
	}
	return s.String()
}

func (v View) statsView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("masses") + valueStyle.Render(fmt.Sprintf("%d", len(v.md.Masses()))) + "\n")
	b.WriteString(labelStyle.Render("springs") + valueStyle.Render(fmt.Sprintf("%d", len(v.md.Links()))) + "\n")
	b.WriteString(labelStyle.Render("energy") + valueStyle.Render(fmt.Sprintf("%.2f", metrics.Total(v.md))) + "\n\n")

	for _, f := range v.md.Env().Forces() {
		state := offStyle.Render("off")
		if f.Enabled() {
			state = onStyle.Render("on")
		}
		b.WriteString(labelStyle.Render(f.Name()) + state + "\n")
	}
	return statsStyle.Render(b.String())
}

func (v View) helpView() string {
	k := v.cfg.Keys
	return fmt.Sprintf(
		"%s gravity · %s viscosity · %s center-of-mass\n%s/%s/%s/%s walls (top/right/bottom/left)\nclick and hold to drag the nearest mass",
		k.Gravity, k.Viscosity, k.CenterMass, k.WallTop, k.WallRight, k.WallBottom, k.WallLeft)
}
