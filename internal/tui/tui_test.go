package tui

import (
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/san-kum/hqrviz/internal/viz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newExplorer(t *testing.T) *Explorer {
	t.Helper()
	return NewExplorer(Options{
		Mode:        hqr.FourD,
		Palette:     viz.PaletteDark,
		Cols:        48,
		Rows:        12,
		SnapshotDir: t.TempDir(),
	})
}

func TestExplorerStartsDrawn(t *testing.T) {
	e := newExplorer(t)
	frame, ok := e.Controller().Frame()
	require.True(t, ok)
	assert.Equal(t, hqr.FourD, frame.Mode)
	assert.Empty(t, e.Controller().Banner())

	view := e.View()
	assert.Contains(t, view, "4D Reality")
	assert.Contains(t, view, "hidden order")
}

func TestExplorerToggleDimension(t *testing.T) {
	e := newExplorer(t)
	e.Update(key("d"))
	assert.Equal(t, hqr.ElevenD, e.Controller().Mode())
	assert.Contains(t, e.View(), "11D M-Theory")
	assert.Contains(t, e.View(), "tensor net")

	e.Update(key("d"))
	assert.Equal(t, hqr.FourD, e.Controller().Mode())
}

func TestExplorerTabsAndPalette(t *testing.T) {
	e := newExplorer(t)
	assert.Equal(t, viz.TargetWave, e.Target())
	e.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viz.TargetCorrelation, e.Target())
	e.Update(key("h"))
	e.Update(key("h"))
	assert.Equal(t, viz.TargetHolographic, e.Target())

	e.Update(key("t"))
	assert.Equal(t, "light", e.Palette().Name)
	assert.Equal(t, viz.PaletteLight.Background, e.canvases[viz.TargetWave].Background)
	e.Update(key("t"))
	assert.Equal(t, "dark", e.Palette().Name)
}

func TestExplorerResizeRedraws(t *testing.T) {
	e := newExplorer(t)
	e.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	c := e.canvases[viz.TargetWave]
	assert.Equal(t, 140-sidebarWidth-6, c.Width)
	assert.Equal(t, 32, c.Height)
	assert.Contains(t, c.String(), "Real Part")
}

func TestExplorerSnapshot(t *testing.T) {
	e := newExplorer(t)
	e.Update(key("s"))
	entries, err := os.ReadDir(e.snapshotDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), viz.TargetWave+"-4D-"))

	data, err := os.ReadFile(filepath.Join(e.snapshotDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, e.status, "saved")
}

func TestExplorerQuit(t *testing.T) {
	_, cmd := newExplorer(t).Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func newAnimation(t *testing.T) *Animation {
	t.Helper()
	return NewAnimation(AnimationOptions{
		Mode:      hqr.FourD,
		Palette:   viz.PaletteDark,
		Cols:      60,
		Rows:      10,
		FPS:       30,
		Particles: 20,
		Seed:      5,
		GIFPath:   filepath.Join(t.TempDir(), "out.gif"),
	})
}

func TestAnimationTickAdvancesField(t *testing.T) {
	a := newAnimation(t)
	before := a.Field()
	_, cmd := a.Update(TickMsg{})
	assert.NotNil(t, cmd)
	assert.InDelta(t, viz.WaveIncrement, a.Field().Wave, 1e-12)
	assert.NotEqual(t, before.Particles, a.Field().Particles)
	assert.Greater(t, a.Metrics()[0].Value(), 0.0)
	assert.Contains(t, a.View(), "confinement")
}

func TestAnimationModeChangeKeepsParticles(t *testing.T) {
	a := newAnimation(t)
	a.Update(TickMsg{})
	a.Update(TickMsg{})
	field := a.Field()

	a.Update(key("d"))
	assert.Equal(t, hqr.ElevenD, a.Controller().Mode())
	assert.Equal(t, field, a.Field())
	assert.Equal(t, hqr.ElevenD, a.overlay.mode)
	assert.Len(t, a.overlay.wave, hqr.WaveSamples)
	assert.Contains(t, a.View(), "11D M-Theory")
}

func TestAnimationClickPauses(t *testing.T) {
	a := newAnimation(t)
	a.Update(tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, a.Paused())

	field := a.Field()
	a.Update(TickMsg{})
	assert.Equal(t, field, a.Field())
	assert.Contains(t, a.View(), "paused")

	a.Update(key(" "))
	assert.False(t, a.Paused())
}

func TestAnimationPointerTracksMouse(t *testing.T) {
	a := newAnimation(t)
	assert.False(t, a.Pointer().Present)

	a.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, a.Pointer().Present)

	a.Update(tea.MouseMsg{X: panelOriginX, Y: panelOriginY, Action: tea.MouseActionMotion})
	p := a.Pointer()
	require.True(t, p.Present)
	assert.Less(t, p.X, viz.FieldWidth/2)
	assert.Less(t, p.Y, viz.FieldHeight/2)
}

func TestAnimationRecordsGIF(t *testing.T) {
	a := newAnimation(t)
	a.Update(key("g"))
	for i := 0; i < 3; i++ {
		a.Update(TickMsg{})
	}
	a.Update(key("g"))

	info, err := os.Stat(a.gifPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, a.status, "3 frames")
}

func TestAnimationSourceIsFormatted(t *testing.T) {
	src, err := os.ReadFile("animation.go")
	require.NoError(t, err)
	formatted, err := format.Source(src)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(src))
}
