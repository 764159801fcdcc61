package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille pixel canvas with one colour per cell and a text layer
// on top. Pixel coordinates are sub-cell: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color
	Text          [][]rune
	TextColors    [][]lipgloss.Color
	Background    lipgloss.Color

	pen lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:      w,
		Height:     h,
		Grid:       make([][]rune, h),
		Colors:     make([][]lipgloss.Color, h),
		Text:       make([][]rune, h),
		TextColors: make([][]lipgloss.Color, h),
	}
	for i := 0; i < h; i++ {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
		c.Text[i] = make([]rune, w)
		c.TextColors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// PixelSize returns the drawable area in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// SetPen selects the colour used by subsequent pixel writes.
func (c *Canvas) SetPen(col lipgloss.Color) { c.pen = col }

// SetPenAlpha selects col blended over the background at the given opacity.
func (c *Canvas) SetPenAlpha(col lipgloss.Color, alpha float64) {
	c.pen = Blend(c.Background, col, alpha)
}

// Pen returns the current pen colour.
func (c *Canvas) Pen() lipgloss.Color { return c.pen }

// Set lights the pixel at (x, y) with the current pen. A cell takes the
// colour of the last pixel written into it.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][col] = c.pen
}

// IsSet reports whether the pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < brailleBlank {
		c.Grid[row][col] = brailleBlank
	}
}

// Clear resets pixels, colours and text.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = ""
			c.Text[i][j] = 0
			c.TextColors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.drawLine(x0, y0, x1, y1, 0, 0)
}

// DrawDashedLine draws dash pixels on, gap pixels off along the line.
func (c *Canvas) DrawDashedLine(x0, y0, x1, y1, dash, gap int) {
	c.drawLine(x0, y0, x1, y1, dash, gap)
}

func (c *Canvas) drawLine(x0, y0, x1, y1, dash, gap int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for n := 0; ; n++ {
		if dash <= 0 || n%(dash+gap) < dash {
			c.Set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolyline joins consecutive points.
func (c *Canvas) DrawPolyline(pts [][2]int, dash, gap int) {
	for i := 1; i < len(pts); i++ {
		c.drawLine(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], dash, gap)
	}
}

// DrawCircle outlines a circle with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillCircle paints a solid disc.
func (c *Canvas) FillCircle(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// FillRect paints every pixel of the rectangle.
func (c *Canvas) FillRect(x, y, w, h int) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			c.Set(i, j)
		}
	}
}

// WriteText places s on the text layer starting at cell (col, row). Text
// hides the pixels underneath it.
func (c *Canvas) WriteText(col, row int, s string, color lipgloss.Color) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= c.Width {
			return
		}
		if col >= 0 {
			c.Text[row][col] = r
			c.TextColors[row][col] = color
		}
		col++
	}
}

// Cell returns the visible rune and colour of a cell.
func (c *Canvas) Cell(col, row int) (rune, lipgloss.Color) {
	if t := c.Text[row][col]; t != 0 {
		return t, c.TextColors[row][col]
	}
	return c.Grid[row][col], c.Colors[row][col]
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the canvas with per-cell colours, grouping runs of equal
// colour into one styled span.
func (c *Canvas) Render() string {
	var b strings.Builder
	base := lipgloss.NewStyle()
	if c.Background != "" {
		base = base.Background(c.Background)
	}
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		var runColor lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := base
			if runColor != "" {
				st = st.Foreground(runColor)
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.Width; col++ {
			r, color := c.Cell(col, row)
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
