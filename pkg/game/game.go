// Package game runs a simulation.Simulation in an ebiten window.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
)

// whiteImage is the texture of every filled triangle, tinted by vertex colors.
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// maxFrameTime bounds the time a single stalled frame can feed the stepper.
const maxFrameTime = 0.25

var bindings = map[simulation.Action][]ebiten.Key{
	simulation.Forward:      {ebiten.KeyW, ebiten.KeyArrowUp},
	simulation.Back:         {ebiten.KeyS, ebiten.KeyArrowDown},
	simulation.Left:         {ebiten.KeyA, ebiten.KeyArrowLeft},
	simulation.Right:        {ebiten.KeyD, ebiten.KeyArrowRight},
	simulation.Exit:         {ebiten.KeyEscape},
	simulation.ToggleTrails: {ebiten.KeyT},
	simulation.TogglePanel:  {ebiten.KeyTab},
	simulation.Reseed:       {ebiten.KeyR},
}

// keyboard implements simulation.Input on top of ebiten's polled state.
type keyboard struct {
	last         time.Time
	frame        float64
	cx, cy       int
	dx, dy       float64
	cursorPrimed bool
}

// poll samples the clock and the cursor; call it once at the start of Update.
func (k *keyboard) poll() {
	now := time.Now()
	if k.last.IsZero() {
		k.frame = 1.0 / float64(ebiten.TPS())
	} else {
		k.frame = min(now.Sub(k.last).Seconds(), maxFrameTime)
	}
	k.last = now

	x, y := ebiten.CursorPosition()
	if k.cursorPrimed {
		k.dx, k.dy = float64(x-k.cx), float64(y-k.cy)
	}
	k.cx, k.cy, k.cursorPrimed = x, y, true
}

func (k *keyboard) Pressed(a simulation.Action) bool {
	for _, key := range bindings[a] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (k *keyboard) JustPressed(a simulation.Action) bool {
	for _, key := range bindings[a] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

func (k *keyboard) CursorDelta() (float64, float64) { return k.dx, k.dy }
func (k *keyboard) FrameTime() float64              { return k.frame }

// screenCanvas implements simulation.Canvas on an ebiten image.
type screenCanvas struct {
	dst *ebiten.Image
}

func (c screenCanvas) Clear(clr color.Color) { c.dst.Fill(clr) }

func (c screenCanvas) FillTriangle(a, b, p geometry.Vector2D, clr color.Color) {
	r, g, bl, al := clr.RGBA()
	vertex := func(v geometry.Vector2D) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(v.X), DstY: float32(v.Y),
			SrcX: 1, SrcY: 1,
			ColorR: float32(r) / 0xffff,
			ColorG: float32(g) / 0xffff,
			ColorB: float32(bl) / 0xffff,
			ColorA: float32(al) / 0xffff,
		}
	}
	vertices := []ebiten.Vertex{vertex(a), vertex(b), vertex(p)}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	c.dst.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteImage, op)
}

func (c screenCanvas) Line(a, b geometry.Vector2D, width float64, clr color.Color) {
	vector.StrokeLine(c.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), clr, true)
}

func (c screenCanvas) Size() (float64, float64) {
	bounds := c.dst.Bounds()
	return float64(bounds.Dx()), float64(bounds.Dy())
}

// Game implements ebiten.Game around a Simulation.
type Game struct {
	sim   *simulation.Simulation
	input *keyboard
	debug bool

	// 2D control panel
	panel          *ui.UIPanel
	widgetTrails   *ui.Checkbox
	widgetFixed    *ui.Checkbox
	widgetSnapshot *ui.Checkbox

	width, height int

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// New wires sim to ebiten. debug shows the timing and flock statistics overlay.
func New(sim *simulation.Simulation, debug bool) *Game {
	cfg := sim.Config()
	g := &Game{
		sim:    sim,
		input:  &keyboard{},
		debug:  debug,
		width:  cfg.WindowWidth,
		height: cfg.WindowHeight,
	}

	g.panel = ui.NewUIPanel(10, 10, 220, 190, "Controls (Tab)")
	g.panel.AddSection("Display")
	g.widgetTrails = g.panel.AddCheckbox("Trails (T)", sim.TrailsEnabled(), sim.SetTrails)
	g.panel.EndSection()

	g.panel.AddSection("Simulation")
	g.widgetFixed = g.panel.AddCheckbox("Fixed timestep", sim.Timing() == behavior.Fixed, func(on bool) {
		if on {
			sim.SetTiming(behavior.Fixed)
		} else {
			sim.SetTiming(behavior.Variable)
		}
	})
	g.widgetSnapshot = g.panel.AddCheckbox("Snapshot update order", sim.Order() == behavior.Snapshot, func(on bool) {
		if on {
			sim.SetOrder(behavior.Snapshot)
		} else {
			sim.SetOrder(behavior.Sequential)
		}
	})
	g.panel.AddButton("Reseed (R)", sim.Reseed)
	g.panel.EndSection()

	if sim.Mode() == simulation.Mode3D {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
	return g
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.input.poll()

	if g.sim.Mode() == simulation.Mode2D && g.sim.PanelVisible() {
		// The keyboard may have changed these since the last frame.
		g.widgetTrails.Value = g.sim.TrailsEnabled()
		g.widgetFixed.Value = g.sim.Timing() == behavior.Fixed
		g.widgetSnapshot.Value = g.sim.Order() == behavior.Snapshot

		_, wheel := ebiten.Wheel()
		g.panel.Update(ui.CurrentPointer(), wheel)
	}

	err := g.sim.Tick(g.input, float64(g.width), float64(g.height))
	if errors.Is(err, simulation.ErrExit) {
		return ebiten.Termination
	}
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.sim.Draw(screenCanvas{dst: screen})

	if g.sim.Mode() == simulation.Mode2D && g.sim.PanelVisible() {
		g.panel.Draw(screen)
	}
	if g.debug {
		msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nSteps/frame: %d\n\nUpdate: %.2fms\nDraw:   %.2fms\n\n%s\n%s",
			ebiten.ActualFPS(),
			ebiten.ActualTPS(),
			g.sim.LastSteps(),
			g.updateAvg,
			g.drawAvg,
			g.sim.Status(),
			g.sim.Stats())
		ebitenutil.DebugPrintAt(screen, msg, g.width-330, 10)
	}
}

// Layout follows the window so the 2D viewport matches what is visible.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
