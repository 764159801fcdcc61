package viz

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hqrviz/internal/hqr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPalettesAreComplete(t *testing.T) {
	for _, p := range Palettes {
		t.Run(p.Name, func(t *testing.T) {
			names := p.SemanticNames()
			require.Len(t, names, 20)
			for _, name := range names {
				c, ok := p.Lookup(name)
				require.True(t, ok)
				_, _, _, valid := RGB(c)
				assert.True(t, valid, "%s=%q", name, c)
			}
		})
	}
}

func TestPaletteByName(t *testing.T) {
	p, err := PaletteByName("light")
	require.NoError(t, err)
	assert.Equal(t, PaletteLight, p)

	_, err = PaletteByName("neon")
	assert.True(t, errors.Is(err, ErrUnknownPalette))
	assert.Equal(t, []string{"dark", "light"}, PaletteNames())
}

func TestPaletteRole(t *testing.T) {
	p := PaletteDark
	assert.Equal(t, p.Boundary, p.Role(hqr.RoleBoundary))
	assert.Equal(t, p.BulkSpace, p.Role(hqr.RoleBulk))
	assert.Equal(t, p.Network, p.Role(hqr.RoleNetwork))
	assert.Equal(t, p.BoundaryLink, p.Role(hqr.RoleBoundaryLink))
	assert.Equal(t, p.Text, p.Role("nope"))
}

func TestPaletteOverride(t *testing.T) {
	p, err := PaletteDark.Override(map[string]string{"realPart": "#123456", "boundary": "#abcdef"})
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("#123456"), p.RealPart)
	assert.Equal(t, lipgloss.Color("#abcdef"), p.Boundary)
	assert.Equal(t, PaletteDark.ImagPart, p.ImagPart)

	_, err = PaletteDark.Override(map[string]string{"sparkle": "#123456"})
	assert.ErrorIs(t, err, ErrUnknownPalette)
	_, err = PaletteDark.Override(map[string]string{"text": "blue"})
	assert.ErrorIs(t, err, ErrUnknownPalette)
}
