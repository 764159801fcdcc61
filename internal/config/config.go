package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/san-kum/hqrviz/internal/viz"
	"gopkg.in/yaml.v3"
)

const (
	DefaultChartWidth   = 800
	DefaultChartHeight  = 400
	DefaultCanvasCols   = 72
	DefaultCanvasRows   = 18
	DefaultFPS          = 60
	DefaultParticles    = viz.DefaultParticles
	DefaultOutputDir    = "out"
	DefaultChartFormat  = viz.FormatPNG
	DefaultPaletteName  = "dark"
	DefaultStrategyName = viz.StrategyCanvas
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Mode      string            `yaml:"mode"`
	Strategy  string            `yaml:"strategy"`
	Palette   string            `yaml:"palette"`
	Colors    map[string]string `yaml:"colors,omitempty"`
	Chart     ChartConfig       `yaml:"chart"`
	Canvas    CanvasConfig      `yaml:"canvas"`
	Animation AnimationConfig   `yaml:"animation"`
	OutputDir string            `yaml:"output_dir"`
}

type ChartConfig struct {
	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// CanvasConfig sizes terminal canvases in cells.
type CanvasConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

type AnimationConfig struct {
	FPS       int   `yaml:"fps"`
	Particles int   `yaml:"particles"`
	Seed      int64 `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:     hqr.FourD.String(),
		Strategy: DefaultStrategyName,
		Palette:  DefaultPaletteName,
		Chart: ChartConfig{
			Format: DefaultChartFormat,
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
		},
		Canvas: CanvasConfig{Cols: DefaultCanvasCols, Rows: DefaultCanvasRows},
		Animation: AnimationConfig{
			FPS:       DefaultFPS,
			Particles: DefaultParticles,
			Seed:      1,
		},
		OutputDir: DefaultOutputDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every bad field at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := hqr.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := viz.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ResolvePalette(); err != nil {
		errs = append(errs, err)
	}
	if c.Chart.Format != viz.FormatPNG && c.Chart.Format != viz.FormatSVG {
		errs = append(errs, fmt.Errorf("chart format %q", c.Chart.Format))
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		errs = append(errs, fmt.Errorf("chart size %dx%d", c.Chart.Width, c.Chart.Height))
	}
	if c.Canvas.Cols < 10 || c.Canvas.Rows < 4 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d too small", c.Canvas.Cols, c.Canvas.Rows))
	}
	if c.Animation.FPS <= 0 || c.Animation.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps %d out of range", c.Animation.FPS))
	}
	if c.Animation.Particles < 0 {
		errs = append(errs, fmt.Errorf("particles %d", c.Animation.Particles))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (c *Config) DimensionMode() (hqr.DimensionMode, error) {
	return hqr.ParseMode(c.Mode)
}

// ResolvePalette returns the named palette with any colour overrides applied.
func (c *Config) ResolvePalette() (viz.Palette, error) {
	p, err := viz.PaletteByName(c.Palette)
	if err != nil {
		return p, err
	}
	return p.Override(c.Colors)
}

func (c *Config) ChartOptions() viz.ChartOptions {
	return viz.ChartOptions{Format: c.Chart.Format, Width: c.Chart.Width, Height: c.Chart.Height}
}
