package tui

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hqrviz/internal/export"
	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/san-kum/hqrviz/internal/metrics"
	"github.com/san-kum/hqrviz/internal/redraw"
	"github.com/san-kum/hqrviz/internal/viz"
)

type TickMsg time.Time

// Screen position of the particle panel's first cell: two header lines plus
// the panel border, and the border plus padding on the left.
const (
	panelOriginX = 2
	panelOriginY = 3
	maxGIFFrames = 600
)

type AnimationOptions struct {
	Mode       hqr.DimensionMode
	Palette    viz.Palette
	Cols, Rows int
	FPS        int
	Particles  int
	Seed       int64
	GIFPath    string
	Logger     *slog.Logger
}

// overlay is the part of the scene a Render call replaces.
type overlay struct {
	mode hqr.DimensionMode
	wave []float64
}

// Animation is the continuous strategy. It implements viz.Renderer, but a
// Render only swaps the overlay; the particle field is advanced by ticks and
// survives mode changes.
type Animation struct {
	ctrl    *redraw.Controller
	palette viz.Palette
	styles  viz.Styles
	logger  *slog.Logger

	field     viz.ParticleField
	hologram  viz.Hologram
	pointer   viz.Pointer
	paused    bool
	particles *viz.Canvas
	holoView  *viz.Canvas
	camera    *viz.Camera
	metrics   []metrics.Metric
	overlay   overlay
	fps       int

	recording bool
	frames    []*image.Paletted
	gifPath   string
	status    string
}

func NewAnimation(opts AnimationOptions) *Animation {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "hqrviz.gif"
	}
	cols, rows := max(opts.Cols/2, minCols/2), max(opts.Rows, minRows)
	a := &Animation{
		palette:   opts.Palette,
		styles:    viz.NewStyles(opts.Palette),
		logger:    opts.Logger,
		field:     viz.NewParticleField(opts.Particles, viz.FieldWidth, viz.FieldHeight, rand.New(rand.NewSource(opts.Seed))),
		hologram:  viz.NewHologram(),
		particles: viz.NewCanvas(cols, rows),
		holoView:  viz.NewCanvas(cols, rows),
		camera:    viz.NewCamera(),
		metrics:   metrics.Default(),
		fps:       opts.FPS,
		gifPath:   opts.GIFPath,
	}
	a.camera.RotateX(-0.35)
	a.ctrl = redraw.New(hqr.Standard, a, opts.Logger)
	a.ctrl.Select(opts.Mode)
	a.draw()
	return a
}

func (a *Animation) Name() string { return viz.StrategyAnimation }

func (a *Animation) Render(frame hqr.Frame) error {
	wave, _ := hqr.Column(frame.Wave, hqr.FieldRealPart)
	a.overlay = overlay{mode: frame.Mode, wave: wave}
	return nil
}

func (a *Animation) Field() viz.ParticleField  { return a.field }
func (a *Animation) Paused() bool              { return a.paused }
func (a *Animation) Pointer() viz.Pointer      { return a.pointer }
func (a *Animation) Metrics() []metrics.Metric { return a.metrics }
func (a *Animation) Controller() *redraw.Controller {
	return a.ctrl
}

func (a *Animation) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *Animation) Init() tea.Cmd { return a.tick() }

func (a *Animation) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if a.recording {
				a.saveGIF()
			}
			return a, tea.Quit
		case "d":
			a.ctrl.Select(a.ctrl.Mode().Toggle())
		case " ", "p":
			a.paused = !a.paused
		case "g":
			if a.recording {
				a.saveGIF()
				a.recording = false
				a.frames = nil
			} else {
				a.recording = true
				a.frames = make([]*image.Paletted, 0)
				a.status = "recording"
			}
		}
	case tea.MouseMsg:
		a.handleMouse(msg)
	case TickMsg:
		if !a.paused {
			a.field = viz.Step(a.field, a.pointer)
			metrics.ObserveAll(a.metrics, a.field)
			a.hologram = viz.StepHologram(a.hologram, a.pointer, viz.FieldWidth, viz.FieldHeight)
			a.draw()
			if a.recording {
				a.captureFrame()
			}
		}
		return a, a.tick()
	}
	return a, nil
}

// handleMouse maps terminal cells onto field units. The hologram panel to the
// right shares the same coordinates.
func (a *Animation) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		a.paused = !a.paused
		return
	}
	if msg.Action != tea.MouseActionMotion {
		return
	}
	cols, rows := a.particles.Width, a.particles.Height
	x := (msg.X - panelOriginX) % (cols + 4)
	y := msg.Y - panelOriginY
	if x < 0 || x >= cols || y < 0 || y >= rows {
		return
	}
	a.pointer = viz.Pointer{
		X:       (float64(x) + 0.5) / float64(cols) * viz.FieldWidth,
		Y:       (float64(y) + 0.5) / float64(rows) * viz.FieldHeight,
		Present: true,
	}
}

func (a *Animation) draw() {
	viz.DrawParticles(a.particles, a.field, a.palette)
	viz.DrawHologram(a.holoView, a.hologram, a.pointer, viz.FieldWidth, a.camera, a.palette)
}

func (a *Animation) captureFrame() {
	if len(a.frames) >= maxGIFFrames {
		return
	}
	src := export.CanvasToImage(a.particles, 2)
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	a.frames = append(a.frames, dst)
}

func (a *Animation) saveGIF() {
	if len(a.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	delay := max(1, 100/a.fps)
	for _, frame := range a.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(a.gifPath)
	if err == nil {
		err = gif.EncodeAll(f, &anim)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		a.status = "gif failed: " + err.Error()
		a.logger.Error("gif save failed", "path", a.gifPath, "error", err)
		return
	}
	a.status = fmt.Sprintf("saved %d frames to %s", len(a.frames), a.gifPath)
	a.logger.Info("gif saved", "path", a.gifPath, "frames", len(a.frames))
}

func (a *Animation) View() string {
	var b strings.Builder
	title := viz.GradientText("HIDDEN ORDER PROJECTION", a.palette.ParticleLink, a.palette.BulkSpace)
	state := lipgloss.NewStyle().Foreground(a.palette.RealPart).Render("● running")
	if a.paused {
		state = lipgloss.NewStyle().Foreground(a.palette.HiddenOrder).Render("○ paused")
	}
	b.WriteString(title + "  " + a.styles.Value.Render(a.overlay.mode.Label()) + "  " + state + "\n")
	stats := fmt.Sprintf("wave %.2f  angle %.2f  links %d", a.field.Wave, a.hologram.Angle, len(a.field.Links()))
	for _, m := range a.metrics {
		stats += fmt.Sprintf("  %s %.3f", m.Name(), m.Value())
	}
	b.WriteString(a.styles.Muted.Render(stats) + "\n")

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		a.styles.Panel.Render(a.particles.Render()),
		a.styles.Panel.Render(a.holoView.Render()),
	)
	b.WriteString(panels + "\n")
	b.WriteString(a.styles.Muted.Render("Re[Ψ] ") + viz.Sparkline(a.overlay.wave, a.particles.Width*2, a.palette.RealPart) + "\n")
	if banner := a.ctrl.Banner(); banner != "" {
		b.WriteString(a.styles.Banner.Render(banner) + "\n")
	}
	if a.status != "" {
		b.WriteString(a.styles.Muted.Render(a.status) + "\n")
	}
	b.WriteString(a.styles.KeyHint.Render("mouse steer  click/space pause  d dimension  g record gif  q quit"))
	return b.String()
}

// RunAnimation runs the animation with all mouse motion reported.
func RunAnimation(opts AnimationOptions) error {
	_, err := tea.NewProgram(NewAnimation(opts), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
