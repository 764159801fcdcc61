package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hqrviz/internal/viz"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func rgba(c lipgloss.Color, fallback color.RGBA) color.RGBA {
	r, g, b, ok := viz.RGB(c)
	if !ok {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// CanvasToImage rasterizes a canvas, scale pixels per Braille dot. Text cells
// are drawn with the 7x13 bitmap face.
func CanvasToImage(canvas *viz.Canvas, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	cellW, cellH := 2*scale, 4*scale
	img := image.NewRGBA(image.Rect(0, 0, canvas.Width*cellW, canvas.Height*cellH))
	bg := rgba(canvas.Background, color.RGBA{10, 10, 10, 255})
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	fg := color.RGBA{224, 224, 224, 255}
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
			c := &image.Uniform{C: rgba(canvas.Colors[row][col], fg)}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					x0, y0 := col*cellW+dx*scale, row*cellH+dy*scale
					draw.Draw(img, image.Rect(x0, y0, x0+scale, y0+scale), c, image.Point{}, draw.Src)
				}
			}
		}
	}

	d := &font.Drawer{Dst: img, Face: basicfont.Face7x13}
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			t := canvas.Text[row][col]
			if t == 0 {
				continue
			}
			d.Src = &image.Uniform{C: rgba(canvas.TextColors[row][col], fg)}
			d.Dot = fixed.P(col*cellW, row*cellH+cellH-scale)
			d.DrawString(string(t))
		}
	}
	return img
}

// WriteCanvasPNG encodes CanvasToImage as PNG.
func WriteCanvasPNG(w io.Writer, canvas *viz.Canvas, scale int) error {
	return png.Encode(w, CanvasToImage(canvas, scale))
}
