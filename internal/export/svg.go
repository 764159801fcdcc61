package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hqrviz/internal/viz"
)

// Braille dot bits by (row, column) within a cell.
var dotBits = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func svgColor(c lipgloss.Color, fallback string) string {
	if _, _, _, ok := viz.RGB(c); ok {
		return string(c)
	}
	return fallback
}

// CanvasToSVG converts a colour Braille canvas to SVG. Each lit dot becomes
// a circle in its cell's colour; the text layer is drawn on top.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgColor(canvas.Background, "#0a0a0a"))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			if canvas.Text[row][col] != 0 {
				continue
			}
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := svgColor(canvas.Colors[row][col], "#e0e0e0")

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	fontSize := scale * 3.2
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; {
			if canvas.Text[row][col] == 0 {
				col++
				continue
			}
			start, color := col, canvas.TextColors[row][col]
			var run strings.Builder
			for col < canvas.Width && canvas.Text[row][col] != 0 && canvas.TextColors[row][col] == color {
				run.WriteRune(canvas.Text[row][col])
				col++
			}
			fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" font-family=\"monospace\" font-size=\"%.1f\" fill=\"%s\">%s</text>\n",
				float64(start)*scale*2, float64(row+1)*scale*4-scale, fontSize, svgColor(color, "#e0e0e0"), html.EscapeString(run.String()))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
