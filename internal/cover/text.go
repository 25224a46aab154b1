package cover

import (
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
)

// Line spacing multipliers: tight pitch for single-anchor blocks (title,
// author), looser leading for long-form back-cover copy.
const (
	spacingNormal = 1.0
	spacingLoose  = 1.3
)

// Legibility effect geometry, derived from the font pixel size.
const (
	shadowOffsetDivisor = 16
	minShadowOffsetPx   = 2.0
	outlineDivisor      = 32
	minOutlinePx        = 1
	maxOutlinePx        = 3
	shadowAlpha         = 160
)

// textStyle carries everything one text draw needs: a sized face, the
// fill color, the nominal pixel size the face was created at, and the
// line spacing multiplier.
type textStyle struct {
	face    font.Face
	fill    color.Color
	sizePx  float64
	spacing float64
}

// linePitch is the baseline-to-baseline distance in pixels.
func (s textStyle) linePitch() float64 {
	m := s.face.Metrics()
	return float64(m.Ascent+m.Descent) / 64 * s.spacing
}

// measure returns the advance width of line in pixels.
func (s textStyle) measure(line string) float64 {
	return float64(font.MeasureString(s.face, line)) / 64
}

// wrapText greedily packs words into lines whose measured width stays
// within maxWidth. A single word wider than maxWidth is placed alone on
// its own line rather than dropped.
func wrapText(text string, style textStyle, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		trial := current + " " + word
		if style.measure(trial) <= maxWidth {
			current = trial
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}

// wrapParagraphs wraps each newline-separated paragraph of text and joins
// the results with one blank line between paragraphs. Blank lines hold
// vertical space when drawn but produce no glyphs.
func wrapParagraphs(text string, style textStyle, maxWidth float64) []string {
	var all []string
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		all = append(all, wrapText(paragraph, style, maxWidth)...)
		all = append(all, "")
	}
	if n := len(all); n > 0 && all[n-1] == "" {
		all = all[:n-1]
	}
	return all
}

// measureTextBlock returns the height the wrapped block would occupy.
func measureTextBlock(text string, style textStyle, maxWidth float64) float64 {
	lines := splitBlock(text, style, maxWidth)
	return style.linePitch() * float64(len(lines))
}

// drawTextBlock wraps text to maxWidth and renders it centered on
// (cx, cy), returning the rendered block height. Whitespace-only text
// draws nothing. A maxWidth of zero or less disables wrapping.
func drawTextBlock(dc *gg.Context, text string, style textStyle, cx, cy, maxWidth float64) float64 {
	return drawLines(dc, splitBlock(text, style, maxWidth), style, cx, cy)
}

func splitBlock(text string, style textStyle, maxWidth float64) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if maxWidth > 0 {
		return wrapText(text, style, maxWidth)
	}
	return []string{strings.Join(strings.Fields(text), " ")}
}

// drawLines renders pre-wrapped lines with the block centered vertically
// on cy and every line centered independently on cx. Each line gets, back
// to front, a semi-transparent shadow offset toward +x/+y, a solid
// outline stamped in a small square kernel, and the fill on top; shadow
// and outline use the high-contrast counterpart of the fill color so the
// text stays legible over photographic backgrounds. Returns the block
// height in pixels.
func drawLines(dc *gg.Context, lines []string, style textStyle, cx, cy float64) float64 {
	if len(lines) == 0 {
		return 0
	}

	pitch := style.linePitch()
	total := pitch * float64(len(lines))
	ascent := float64(style.face.Metrics().Ascent) / 64

	contrast := contrastColor(style.fill)
	shadow := color.NRGBA{R: contrast.R, G: contrast.G, B: contrast.B, A: shadowAlpha}

	offset := style.sizePx / shadowOffsetDivisor
	if offset < minShadowOffsetPx {
		offset = minShadowOffsetPx
	}
	outline := int(style.sizePx / outlineDivisor)
	if outline < minOutlinePx {
		outline = minOutlinePx
	}
	if outline > maxOutlinePx {
		outline = maxOutlinePx
	}

	dc.SetFontFace(style.face)
	top := cy - total/2
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		x := cx - style.measure(line)/2
		y := top + float64(i)*pitch + ascent

		dc.SetColor(shadow)
		dc.DrawString(line, x+offset, y+offset)

		dc.SetColor(contrast)
		for dy := -outline; dy <= outline; dy++ {
			for dx := -outline; dx <= outline; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawString(line, x+float64(dx), y+float64(dy))
			}
		}

		dc.SetColor(style.fill)
		dc.DrawString(line, x, y)
	}
	return total
}

// contrastColor picks white or black, whichever contrasts more with fill,
// by thresholding the mean channel brightness at the midpoint.
func contrastColor(fill color.Color) color.NRGBA {
	black := color.NRGBA{A: 255}

	c, ok := colorful.MakeColor(fill)
	if !ok {
		return black
	}
	if (c.R+c.G+c.B)/3 < 0.5 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return black
}
