package renderer

import (
	"image"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/draw"
)

// Preview renders a terminal thumbnail of img using half-block cells, two image rows per
// terminal line. The returned string contains ANSI color sequences.
func Preview(img image.Image, columns int) string {
	bounds := img.Bounds()
	if columns <= 0 || bounds.Empty() {
		return ""
	}

	rows := max(1, (bounds.Dy()*columns/bounds.Dx()+1)/2)
	thumb := image.NewRGBA(image.Rect(0, 0, columns, rows*2))
	draw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), img, bounds, draw.Src, nil)

	buf := uv.NewBuffer(columns, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			buf.SetCell(x, y, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: thumb.RGBAAt(x, 2*y),
					Bg: thumb.RGBAAt(x, 2*y+1),
				},
			})
		}
	}

	return buf.Render()
}
