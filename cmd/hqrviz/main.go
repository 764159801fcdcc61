package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/hqrviz/internal/analysis"
	"github.com/san-kum/hqrviz/internal/config"
	"github.com/san-kum/hqrviz/internal/export"
	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/san-kum/hqrviz/internal/redraw"
	"github.com/san-kum/hqrviz/internal/tui"
	"github.com/san-kum/hqrviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	mode       string
	paletteArg string
	logLevel   string
	logFile    string

	outDir   string
	strategy string
	format   string
	width    int
	height   int
	cols     int
	rows     int

	fps       int
	particles int
	seed      int64
	gifPath   string

	field   string
	braille bool
	table   string
	output  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hqrviz",
		Short:        "holonomic quantum reality visualizations",
		RunE:         runExplorer,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&mode, "mode", "4D", "dimension mode (4D or 11D)")
	pf.StringVar(&paletteArg, "palette", "dark", "colour palette")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to file")
	rootCmd.Flags().IntVar(&cols, "cols", config.DefaultCanvasCols, "canvas width in cells")
	rootCmd.Flags().IntVar(&rows, "rows", config.DefaultCanvasRows, "canvas height in cells")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive panel explorer",
		RunE:  runExplorer,
	}
	tuiCmd.Flags().IntVar(&cols, "cols", config.DefaultCanvasCols, "canvas width in cells")
	tuiCmd.Flags().IntVar(&rows, "rows", config.DefaultCanvasRows, "canvas height in cells")
	tuiCmd.Flags().StringVar(&outDir, "out", "", "snapshot directory")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "particle and hologram animation",
		RunE:  runAnimate,
	}
	animateCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	animateCmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	animateCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	animateCmd.Flags().StringVar(&gifPath, "gif", "hqrviz.gif", "gif recording path")
	animateCmd.Flags().IntVar(&cols, "cols", config.DefaultCanvasCols, "canvas width in cells")
	animateCmd.Flags().IntVar(&rows, "rows", config.DefaultCanvasRows, "canvas height in cells")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render all panels to files",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&outDir, "out", config.DefaultOutputDir, "output directory")
	renderCmd.Flags().StringVar(&strategy, "strategy", config.DefaultStrategyName, "render strategy (chart, canvas)")
	renderCmd.Flags().StringVar(&format, "format", config.DefaultChartFormat, "chart format (png, svg)")
	renderCmd.Flags().IntVar(&width, "width", config.DefaultChartWidth, "chart width in pixels")
	renderCmd.Flags().IntVar(&height, "height", config.DefaultChartHeight, "chart height in pixels")
	renderCmd.Flags().IntVar(&cols, "cols", config.DefaultCanvasCols, "canvas width in cells")
	renderCmd.Flags().IntVar(&rows, "rows", config.DefaultCanvasRows, "canvas height in cells")

	waveCmd := &cobra.Command{
		Use:   "wave",
		Short: "plot a wave function field",
		RunE:  plotWave,
	}
	waveCmd.Flags().StringVar(&field, "field", string(hqr.FieldRealPart), "field to plot")
	waveCmd.Flags().BoolVar(&braille, "braille", false, "draw on a braille canvas instead of an ascii graph")
	waveCmd.Flags().IntVar(&cols, "cols", config.DefaultCanvasCols, "canvas width in cells")
	waveCmd.Flags().IntVar(&rows, "rows", config.DefaultCanvasRows, "canvas height in cells")

	manifoldCmd := &cobra.Command{
		Use:   "manifold",
		Short: "print the manifold correlation scatter",
		RunE:  printPanel(viz.TargetCorrelation),
	}
	holoCmd := &cobra.Command{
		Use:   "holo",
		Short: "print the holographic diagram",
		RunE:  printPanel(viz.TargetHolographic),
	}
	for _, c := range []*cobra.Command{manifoldCmd, holoCmd} {
		c.Flags().IntVar(&cols, "cols", config.DefaultCanvasCols, "canvas width in cells")
		c.Flags().IntVar(&rows, "rows", config.DefaultCanvasRows, "canvas height in cells")
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export samples as csv",
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&table, "table", "wave", "sample table (wave, manifold)")
	exportCSVCmd.Flags().StringVar(&output, "output", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export samples as json",
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&output, "output", "", "output file (default stdout)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "power spectrum of a wave field",
		RunE:  plotSpectrum,
	}
	spectrumCmd.Flags().StringVar(&field, "field", string(hqr.FieldRealPart), "field to analyse")

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "list palettes",
		RunE:  listPalettes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(tuiCmd, animateCmd, renderCmd, waveCmd, manifoldCmd, holoCmd,
		exportCSVCmd, exportJSONCmd, spectrumCmd, palettesCmd, presetsCmd, initConfigCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("palette") {
		cfg.Palette = paletteArg
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("format") {
		cfg.Chart.Format = format
	}
	if flags.Changed("width") {
		cfg.Chart.Width = width
	}
	if flags.Changed("height") {
		cfg.Chart.Height = height
	}
	if flags.Changed("cols") {
		cfg.Canvas.Cols = cols
	}
	if flags.Changed("rows") {
		cfg.Canvas.Rows = rows
	}
	if flags.Changed("fps") {
		cfg.Animation.FPS = fps
	}
	if flags.Changed("particles") {
		cfg.Animation.Particles = particles
	}
	if flags.Changed("seed") {
		cfg.Animation.Seed = seed
	}
	if flags.Changed("out") {
		cfg.OutputDir = outDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runExplorer(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer closer.Close()

	m, _ := cfg.DimensionMode()
	pal, _ := cfg.ResolvePalette()
	return tui.RunExplorer(tui.Options{
		Mode:        m,
		Palette:     pal,
		Cols:        cfg.Canvas.Cols,
		Rows:        cfg.Canvas.Rows,
		SnapshotDir: cfg.OutputDir,
		Logger:      logger,
	})
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer closer.Close()

	m, _ := cfg.DimensionMode()
	pal, _ := cfg.ResolvePalette()
	return tui.RunAnimation(tui.AnimationOptions{
		Mode:      m,
		Palette:   pal,
		Cols:      cfg.Canvas.Cols,
		Rows:      cfg.Canvas.Rows,
		FPS:       cfg.Animation.FPS,
		Particles: cfg.Animation.Particles,
		Seed:      cfg.Animation.Seed,
		GIFPath:   gifPath,
		Logger:    logger,
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer closer.Close()

	m, _ := cfg.DimensionMode()
	pal, _ := cfg.ResolvePalette()
	run, err := export.NewRun(cfg.OutputDir, m.String(), cfg.Strategy, pal.Name)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	switch cfg.Strategy {
	case viz.StrategyChart:
		err = renderCharts(run, cfg, pal, m, logger)
	case viz.StrategyCanvas:
		err = renderCanvases(run, cfg, pal, m, logger)
	default:
		return fmt.Errorf("strategy %q only runs interactively, use `hqrviz animate`", cfg.Strategy)
	}
	if err != nil {
		return err
	}
	if err := run.Finish(); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), run.Summary())
	return nil
}

func renderCharts(run *export.Run, cfg *config.Config, pal viz.Palette, m hqr.DimensionMode, logger *slog.Logger) error {
	targets := make(map[string]io.Writer, len(viz.TargetIDs))
	files := make([]io.WriteCloser, 0, len(viz.TargetIDs))
	for _, id := range viz.TargetIDs {
		f, err := run.Create(id + "." + cfg.Chart.Format)
		if err != nil {
			closeAll(files)
			return err
		}
		targets[id] = f
		files = append(files, f)
	}
	var renderErr error
	renderer, err := viz.NewChartRenderer(pal, cfg.ChartOptions(), targets)
	if err != nil {
		renderErr = err
	} else {
		renderErr = redraw.New(hqr.Standard, renderer, logger).Select(m)
	}
	if err := closeAll(files); err != nil && renderErr == nil {
		renderErr = err
	}
	if renderErr != nil {
		return fmt.Errorf("render charts: %w", renderErr)
	}
	return nil
}

// closeAll closes every file and returns the first error.
func closeAll(files []io.WriteCloser) error {
	var first error
	for _, f := range files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func renderCanvases(run *export.Run, cfg *config.Config, pal viz.Palette, m hqr.DimensionMode, logger *slog.Logger) error {
	canvases := make(map[string]*viz.Canvas, len(viz.TargetIDs))
	for _, id := range viz.TargetIDs {
		canvases[id] = viz.NewCanvas(cfg.Canvas.Cols, cfg.Canvas.Rows)
	}
	ctrl := redraw.New(hqr.Standard, viz.NewCanvasRenderer(pal, canvases), logger)
	if err := ctrl.Select(m); err != nil {
		return fmt.Errorf("render canvases: %w", err)
	}

	for _, id := range viz.TargetIDs {
		c := canvases[id]
		writes := []struct {
			name  string
			write func(io.Writer) error
		}{
			{id + ".svg", func(w io.Writer) error {
				_, err := io.WriteString(w, export.CanvasToSVG(c, 4))
				return err
			}},
			{id + ".png", func(w io.Writer) error { return export.WriteCanvasPNG(w, c, 4) }},
			{id + ".txt", func(w io.Writer) error {
				_, err := io.WriteString(w, c.String())
				return err
			}},
		}
		for _, wr := range writes {
			if err := run.WriteFile(wr.name, wr.write); err != nil {
				return err
			}
		}
	}
	return nil
}

func frameFor(cmd *cobra.Command) (hqr.Frame, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return hqr.Frame{}, err
	}
	m, _ := cfg.DimensionMode()
	return hqr.Standard.Generate(m)
}

func plotWave(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, _ := cfg.DimensionMode()
	frame := hqr.Generate(m)
	data, ok := hqr.Column(frame.Wave, hqr.WaveField(field))
	if !ok {
		return fmt.Errorf("unknown field %q (available: %v)", field, hqr.WaveFields)
	}

	caption := fmt.Sprintf("%s over x ∈ [-10, 10] (%s)", field, frame.Mode.Label())
	if braille {
		pal, _ := cfg.ResolvePalette()
		c := viz.NewCanvas(cfg.Canvas.Cols, cfg.Canvas.Rows)
		viz.DrawSamplesCurve(c, frame.Wave, hqr.WaveField(field), pal.RealPart)
		fmt.Fprint(cmd.OutOrStdout(), c.Render())
		fmt.Fprintln(cmd.OutOrStdout(), caption)
		return nil
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func printPanel(target string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger, closer, err := newLogger(cmd.ErrOrStderr(), false)
		if err != nil {
			return err
		}
		defer closer.Close()

		m, _ := cfg.DimensionMode()
		pal, _ := cfg.ResolvePalette()
		canvases := map[string]*viz.Canvas{}
		for _, id := range viz.TargetIDs {
			canvases[id] = viz.NewCanvas(cfg.Canvas.Cols, cfg.Canvas.Rows)
		}
		ctrl := redraw.New(hqr.Standard, viz.NewCanvasRenderer(pal, canvases), logger)
		if err := ctrl.Select(m); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), canvases[target].Render())
		return nil
	}
}

func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	frame, err := frameFor(cmd)
	if err != nil {
		return err
	}
	w, closeFn, err := openOutput(cmd)
	if err != nil {
		return err
	}
	switch table {
	case "wave":
		err = export.WriteWaveCSV(w, frame.Wave)
	case "manifold":
		err = export.WriteManifoldCSV(w, frame.Manifold)
	default:
		err = fmt.Errorf("unknown table %q (available: wave, manifold)", table)
	}
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	frame, err := frameFor(cmd)
	if err != nil {
		return err
	}
	w, closeFn, err := openOutput(cmd)
	if err != nil {
		return err
	}
	err = export.WriteJSON(w, frame)
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	return err
}

func plotSpectrum(cmd *cobra.Command, args []string) error {
	frame, err := frameFor(cmd)
	if err != nil {
		return err
	}
	spectrum, err := analysis.WaveSpectrum(frame.Wave, hqr.WaveField(field))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	graph := asciigraph.Plot(spectrum.Power,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s, %s)", field, frame.Mode)),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	freq, power := spectrum.Peak()
	fmt.Fprintf(out, "dominant frequency: %.3f cycles/unit x (power %.3f)\n", freq, power)
	if freq > 0 {
		fmt.Fprintf(out, "wavelength: %.3f\n", 1.0/freq)
	}
	m := analysis.WaveMoments(frame.Wave)
	fmt.Fprintf(out, "norm %.4f  mean x %+.4f  spread %.4f\n", m.Norm, m.MeanX, m.Spread)
	return nil
}

func listPalettes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, p := range viz.Palettes {
		fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Foreground(p.Heading).Render(p.Name))
		for _, name := range p.SemanticNames() {
			c, _ := p.Lookup(name)
			swatch := lipgloss.NewStyle().Foreground(c).Render("██")
			fmt.Fprintf(out, "  %s %-18s %s\n", swatch, name, c)
		}
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tSTRATEGY\tPALETTE\tCOLOURS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		overrides := make([]string, 0, len(p.Colors))
		for k := range p.Colors {
			overrides = append(overrides, k)
		}
		sort.Strings(overrides)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, p.Mode, p.Strategy, p.Palette, strings.Join(overrides, ","))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
