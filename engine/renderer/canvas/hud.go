package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	overlayMargin = 4
	overlayShadow = 1
)

var (
	overlayText       = image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	overlayTextShadow = image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 255})
)

// DrawOverlay writes lines of text in the top-left corner of img, one per row.
func DrawOverlay(img *image.RGBA, lines []string) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	d := &font.Drawer{Dst: img, Face: face}
	for i, line := range lines {
		y := overlayMargin + ascent + i*lineHeight
		d.Src = overlayTextShadow
		d.Dot = fixed.P(overlayMargin+overlayShadow, y+overlayShadow)
		d.DrawString(line)
		d.Src = overlayText
		d.Dot = fixed.P(overlayMargin, y)
		d.DrawString(line)
	}
}
