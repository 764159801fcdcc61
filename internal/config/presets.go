package config

import "sort"

var Presets = map[string]*Config{
	"explainer": {
		Mode: "4D", Strategy: "canvas", Palette: "dark",
		Chart:     ChartConfig{Format: "png", Width: 800, Height: 400},
		Canvas:    CanvasConfig{Cols: 72, Rows: 18},
		Animation: AnimationConfig{FPS: 60, Particles: 50, Seed: 1},
		OutputDir: "out",
	},
	"m-theory": {
		Mode: "11D", Strategy: "canvas", Palette: "dark",
		Chart:     ChartConfig{Format: "png", Width: 800, Height: 400},
		Canvas:    CanvasConfig{Cols: 96, Rows: 24},
		Animation: AnimationConfig{FPS: 60, Particles: 50, Seed: 11},
		OutputDir: "out",
	},
	"print": {
		Mode: "11D", Strategy: "chart", Palette: "light",
		Chart:     ChartConfig{Format: "svg", Width: 1200, Height: 600},
		Canvas:    CanvasConfig{Cols: 72, Rows: 18},
		Animation: AnimationConfig{FPS: 30, Particles: 50, Seed: 1},
		OutputDir: "print",
	},
	"ambient": {
		Mode: "4D", Strategy: "animation", Palette: "dark",
		Colors:    map[string]string{"particleLink": "#a2a8d3"},
		Chart:     ChartConfig{Format: "png", Width: 800, Height: 400},
		Canvas:    CanvasConfig{Cols: 80, Rows: 20},
		Animation: AnimationConfig{FPS: 30, Particles: 120, Seed: 42},
		OutputDir: "out",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if p.Colors != nil {
		cfg.Colors = make(map[string]string, len(p.Colors))
		for k, v := range p.Colors {
			cfg.Colors[k] = v
		}
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
