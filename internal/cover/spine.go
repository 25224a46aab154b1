package cover

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/julisunkan/CoverWizard/internal/fontset"
)

// Spine text is rendered horizontally at this multiple of the target
// size, rotated, then downsampled so rotated glyph edges stay smooth at
// print resolution.
const spineSupersample = 3

// Spine font sizing: a fraction of the spine width, clamped so the label
// never becomes illegibly small or disproportionately large, then capped
// so ascent, descent, and the legibility effects stay inside the spine.
const (
	spineFontScale  = 0.6
	minSpineFontPx  = 14.0
	maxSpineFontPx  = 110.0
	spineFitScale   = 0.82
	spineFitMargin  = 4
	minSpineWidthPx = 12
)

// drawSpine renders text rotated 90 degrees counter-clockwise, centered
// in the spine region of canvas. Blank text is a no-op, as are spines too
// narrow to hold any glyphs.
func drawSpine(canvas *image.RGBA, text string, region image.Rectangle, fill color.Color, fonts *fontset.Resolver) error {
	line := strings.TrimSpace(text)
	w, h := region.Dx(), region.Dy()
	if line == "" || w < minSpineWidthPx || h <= 0 {
		return nil
	}

	size := float64(w) * spineFontScale
	if size < minSpineFontPx {
		size = minSpineFontPx
	}
	if size > maxSpineFontPx {
		size = maxSpineFontPx
	}
	if limit := spineFitScale * float64(w-spineFitMargin); size > limit {
		size = limit
	}

	face, err := fonts.BoldFace(size * spineSupersample)
	if err != nil {
		return err
	}

	// The buffer is the rotated region: width and height swapped.
	bufW := h * spineSupersample
	bufH := w * spineSupersample
	dc := gg.NewContext(bufW, bufH)
	style := textStyle{
		face:    face,
		fill:    fill,
		sizePx:  size * spineSupersample,
		spacing: spacingNormal,
	}
	drawLines(dc, []string{line}, style, float64(bufW)/2, float64(bufH)/2)

	rotated := imaging.Rotate90(dc.Image())
	label := imaging.Resize(rotated, w, h, imaging.Lanczos)
	draw.Draw(canvas, region, label, image.Point{}, draw.Over)
	return nil
}
