package main

import (
	"bytes"
	"encoding/json"
	goformat "go/format"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/hqrviz/internal/config"
	"github.com/san-kum/hqrviz/internal/export"
	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/san-kum/hqrviz/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCanvas(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "render", "--out", dir, "--strategy", "canvas", "--mode", "11D", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "9 files")

	for _, name := range []string{"wave-function.svg", "correlation.png", "holographic.txt", export.ManifestName} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, export.ManifestName))
	require.NoError(t, err)
	var m export.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "11D", m.Mode)
	assert.Equal(t, "canvas", m.Strategy)
	assert.Len(t, m.Files, 9)
}

func TestRenderChartSVG(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "render", "--out", dir, "--strategy", "chart", "--format", "svg",
		"--width", "400", "--height", "300", "--log-level", "error")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "holographic.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRenderChartsClosesOpenedFilesOnCreateFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "correlation.png"), 0755))
	run, err := export.NewRun(dir, "4D", "chart", "dark")
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	err = renderCharts(run, cfg, viz.PaletteDark, hqr.FourD, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)

	files := run.Manifest().Files
	require.Len(t, files, 1)
	assert.Equal(t, "wave-function.png", files[0].Name)
}

func TestRenderAnimationIsInteractive(t *testing.T) {
	_, err := execute(t, "render", "--out", t.TempDir(), "--strategy", "animation", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hqrviz animate")
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hqr.yaml")
	cfg := config.DefaultConfig()
	cfg.Mode = "11D"
	cfg.Palette = "light"
	require.NoError(t, config.Save(path, cfg))

	// file overrides preset, flag overrides file
	target := filepath.Join(dir, "resolved.yaml")
	_, err := execute(t, "init-config", target, "--preset", "print", "--config", path, "--palette", "dark")
	require.NoError(t, err)

	got, err := config.Load(target)
	require.NoError(t, err)
	assert.Equal(t, "11D", got.Mode)
	assert.Equal(t, "dark", got.Palette)
	assert.Equal(t, "canvas", got.Strategy)
}

func TestUnknownPreset(t *testing.T) {
	_, err := execute(t, "presets", "--preset", "nope")
	require.NoError(t, err, "listing ignores --preset")

	_, err = execute(t, "wave", "--preset", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preset")
}

func TestInvalidMode(t *testing.T) {
	_, err := execute(t, "wave", "--mode", "7D")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestExportCSV(t *testing.T) {
	out, err := execute(t, "export-csv", "--table", "manifold")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 442)

	out, err = execute(t, "export-csv")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 102)

	_, err = execute(t, "export-csv", "--table", "bogus")
	require.Error(t, err)
}

func TestExportJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frame.json")
	_, err := execute(t, "export-json", "--output", path, "--mode", "11D")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestPlots(t *testing.T) {
	out, err := execute(t, "wave", "--field", "probability")
	require.NoError(t, err)
	assert.Contains(t, out, "probability over x")

	out, err = execute(t, "wave", "--braille", "--mode", "11D")
	require.NoError(t, err)
	assert.Contains(t, out, "real_part over x")

	_, err = execute(t, "wave", "--field", "nope")
	require.Error(t, err)

	out, err = execute(t, "spectrum")
	require.NoError(t, err)
	assert.Contains(t, out, "dominant frequency")
}

func TestListings(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range config.ListPresets() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "particleLink")

	out, err = execute(t, "palettes")
	require.NoError(t, err)
	assert.Contains(t, out, "realPart")
	assert.Contains(t, out, "light")
}

func TestPrintPanels(t *testing.T) {
	out, err := execute(t, "holo", "--mode", "11D", "--log-level", "error")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))

	out, err = execute(t, "manifold", "--log-level", "error")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestSourceIsFormatted(t *testing.T) {
	for _, name := range []string{"main.go", "logging.go"} {
		src, err := os.ReadFile(name)
		require.NoError(t, err)
		formatted, err := goformat.Source(src)
		require.NoError(t, err)
		assert.Equal(t, string(formatted), string(src), name)
	}
}
