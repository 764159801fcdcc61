package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/hqrviz/internal/analysis"
	"github.com/san-kum/hqrviz/internal/export"
	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/san-kum/hqrviz/internal/redraw"
	"github.com/san-kum/hqrviz/internal/viz"
)

const (
	sidebarWidth = 38
	minCols      = 30
	minRows      = 8
)

var panelTitles = map[string]string{
	viz.TargetWave:        "Wave Function",
	viz.TargetCorrelation: "Hidden Order Correlation",
	viz.TargetHolographic: "Holographic Principle",
}

type Options struct {
	Mode        hqr.DimensionMode
	Palette     viz.Palette
	Cols, Rows  int
	SnapshotDir string
	Logger      *slog.Logger
}

// Explorer shows one panel at a time next to a stats sidebar.
type Explorer struct {
	ctrl     *redraw.Controller
	renderer *viz.CanvasRenderer
	canvases map[string]*viz.Canvas

	palettes   []viz.Palette
	paletteIdx int
	styles     viz.Styles

	tab         int
	cols, rows  int
	snapshotDir string
	status      string
	showHelp    bool
	logger      *slog.Logger
}

// NewExplorer draws the initial mode. A failed first draw shows up in the
// banner rather than as an error.
func NewExplorer(opts Options) *Explorer {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cols, rows := max(opts.Cols, minCols), max(opts.Rows, minRows)
	canvases := make(map[string]*viz.Canvas, len(viz.TargetIDs))
	for _, id := range viz.TargetIDs {
		canvases[id] = viz.NewCanvas(cols, rows)
	}

	palettes := []viz.Palette{opts.Palette}
	for _, p := range viz.Palettes {
		if p.Name != opts.Palette.Name {
			palettes = append(palettes, p)
		}
	}

	renderer := viz.NewCanvasRenderer(opts.Palette, canvases)
	e := &Explorer{
		ctrl:        redraw.New(hqr.Standard, renderer, opts.Logger),
		renderer:    renderer,
		canvases:    canvases,
		palettes:    palettes,
		styles:      viz.NewStyles(opts.Palette),
		cols:        cols,
		rows:        rows,
		snapshotDir: opts.SnapshotDir,
		logger:      opts.Logger,
	}
	e.ctrl.Select(opts.Mode)
	return e
}

func (e *Explorer) Init() tea.Cmd { return nil }

// Controller exposes the redraw controller, mainly for tests.
func (e *Explorer) Controller() *redraw.Controller { return e.ctrl }

// Target is the ID of the panel on screen.
func (e *Explorer) Target() string { return viz.TargetIDs[e.tab] }

func (e *Explorer) Palette() viz.Palette { return e.palettes[e.paletteIdx] }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg)
	case tea.WindowSizeMsg:
		e.resize(msg.Width-sidebarWidth-6, msg.Height-8)
	}
	return e, nil
}

func (e *Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cam := e.renderer.Camera()
	switch msg.String() {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "d":
		e.ctrl.Select(e.ctrl.Mode().Toggle())
	case "tab", "right", "l":
		e.tab = (e.tab + 1) % len(viz.TargetIDs)
	case "shift+tab", "left", "h":
		e.tab = (e.tab + len(viz.TargetIDs) - 1) % len(viz.TargetIDs)
	case "t":
		e.paletteIdx = (e.paletteIdx + 1) % len(e.palettes)
		e.renderer.SetPalette(e.Palette())
		e.styles = viz.NewStyles(e.Palette())
		e.ctrl.Redraw()
	case "s":
		e.snapshot()
	case "x":
		cam.RotateX(0.1)
		e.ctrl.Redraw()
	case "X":
		cam.RotateX(-0.1)
		e.ctrl.Redraw()
	case "y":
		cam.RotateY(0.1)
		e.ctrl.Redraw()
	case "Y":
		cam.RotateY(-0.1)
		e.ctrl.Redraw()
	case "+", "=":
		cam.ZoomIn()
		e.ctrl.Redraw()
	case "-", "_":
		cam.ZoomOut()
		e.ctrl.Redraw()
	case "r":
		cam.Reset()
		e.ctrl.Redraw()
	case "?":
		e.showHelp = !e.showHelp
	}
	return e, nil
}

func (e *Explorer) resize(cols, rows int) {
	cols, rows = max(cols, minCols), max(rows, minRows)
	if cols == e.cols && rows == e.rows {
		return
	}
	e.cols, e.rows = cols, rows
	for _, id := range viz.TargetIDs {
		e.canvases[id] = viz.NewCanvas(cols, rows)
	}
	e.ctrl.Redraw()
}

func (e *Explorer) snapshot() {
	id := e.Target()
	name := fmt.Sprintf("%s-%s-%s.svg", id, e.ctrl.Mode(), time.Now().Format("150405"))
	path := filepath.Join(e.snapshotDir, name)
	err := os.MkdirAll(e.snapshotDir, 0755)
	if err == nil {
		err = os.WriteFile(path, []byte(export.CanvasToSVG(e.canvases[id], 4)), 0644)
	}
	if err != nil {
		e.status = "snapshot failed: " + err.Error()
		e.logger.Error("snapshot failed", "path", path, "error", err)
		return
	}
	e.status = "saved " + path
	e.logger.Info("snapshot saved", "path", path)
}

func (e *Explorer) View() string {
	p := e.Palette()
	mode := e.ctrl.Mode()

	var header strings.Builder
	header.WriteString(viz.GradientText("HOLONOMIC QUANTUM REALITY", p.RealPart, p.ImagPart))
	header.WriteString("  " + e.styles.Muted.Render("dimension ") + e.styles.Value.Render(mode.Label()) + "\n")
	for i, id := range viz.TargetIDs {
		title := panelTitles[id]
		if i == e.tab {
			header.WriteString(e.styles.Selected.Render(title))
		} else {
			header.WriteString(e.styles.Muted.Render(title))
		}
		header.WriteString("   ")
	}

	panel := e.styles.Panel.Render(e.canvases[e.Target()].Render())
	main := lipgloss.JoinHorizontal(lipgloss.Top, panel, e.sidebar())

	var b strings.Builder
	b.WriteString(header.String() + "\n")
	if banner := e.ctrl.Banner(); banner != "" {
		b.WriteString(e.styles.Banner.Render(banner) + "\n")
	}
	b.WriteString(main + "\n")
	if e.status != "" {
		b.WriteString(e.styles.Muted.Render(e.status) + "\n")
	}
	b.WriteString(e.styles.KeyHint.Render("d dimension  tab panel  t palette  s snapshot  x/y rotate  ? help  q quit"))
	if e.showHelp {
		return explorerHelp + "\n" + b.String()
	}
	return b.String()
}

func (e *Explorer) sidebar() string {
	frame, ok := e.ctrl.Frame()
	if !ok {
		return e.styles.Panel.Width(sidebarWidth).Render(e.styles.Muted.Render("nothing drawn yet"))
	}

	pal := e.Palette()
	var s strings.Builder
	s.WriteString(e.styles.Heading.Render("Ψ = R·e^(iS/ℏ)") + "\n")
	m := analysis.WaveMoments(frame.Wave)
	row := func(label, value string) {
		s.WriteString(e.styles.Muted.Render(fmt.Sprintf("%-12s", label)) + e.styles.Value.Render(value) + "\n")
	}
	row("complexity", fmt.Sprintf("%.1f", frame.Mode.Complexity()))
	row("∫|Ψ|²dx", fmt.Sprintf("%.4f", m.Norm))
	row("⟨x⟩", fmt.Sprintf("%+.4f", m.MeanX))
	row("σx", fmt.Sprintf("%.4f", m.Spread))
	row("max |v|", fmt.Sprintf("%.1f", m.MaxSpeed))

	hidden, _ := hqr.Column(frame.Wave, hqr.FieldHiddenOrder)
	graph := asciigraph.Plot(hidden,
		asciigraph.Height(6),
		asciigraph.Width(sidebarWidth-10),
		asciigraph.Caption("hidden order"),
	)
	s.WriteString("\n" + lipgloss.NewStyle().Foreground(pal.HiddenOrder).Render(graph) + "\n")

	probability, _ := hqr.Column(frame.Wave, hqr.FieldProbability)
	s.WriteString("\n" + e.styles.Muted.Render("|Ψ|² ") + viz.Sparkline(probability, sidebarWidth-8, pal.RealPart) + "\n")

	if spectrum, err := analysis.WaveSpectrum(frame.Wave, hqr.FieldHiddenOrder); err == nil {
		freq, _ := spectrum.Peak()
		row("peak freq", fmt.Sprintf("%.3f /x", freq))
	}

	if d := frame.Diagram; d.Network != nil {
		row("tensor net", fmt.Sprintf("%d nodes %d edges", len(d.Network.Nodes), len(d.Network.Edges)))
	}
	return e.styles.Panel.Width(sidebarWidth).Render(s.String())
}

const explorerHelp = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  D        - Toggle 4D / 11D          ║
║  Tab/←→   - Switch panel             ║
║  T        - Toggle palette           ║
║  S        - Save panel as SVG        ║
║  X/Y      - Rotate manifold view     ║
║  +/-      - Zoom manifold view       ║
║  R        - Reset view               ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunExplorer runs the explorer in the alternate screen.
func RunExplorer(opts Options) error {
	_, err := tea.NewProgram(NewExplorer(opts), tea.WithAltScreen()).Run()
	return err
}
