package cover

import (
	"image"
	"image/color"
	"testing"

	"github.com/julisunkan/CoverWizard/internal/fontset"
)

func makeWhiteRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func isWhite(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R == 255 && c.G == 255 && c.B == 255
}

func TestDrawSpine_BlankTextIsNoOp(t *testing.T) {
	fonts := fontset.NewResolver(nil, nil)
	canvas := makeWhiteRGBA(200, 400)
	region := image.Rect(80, 20, 120, 380)

	if err := drawSpine(canvas, "   ", region, color.Black, fonts); err != nil {
		t.Fatalf("drawSpine: %v", err)
	}
	for y := 0; y < 400; y++ {
		for x := 0; x < 200; x++ {
			if !isWhite(canvas, x, y) {
				t.Fatalf("pixel at (%d,%d) changed, want untouched canvas", x, y)
			}
		}
	}
}

func TestDrawSpine_NarrowSpineIsNoOp(t *testing.T) {
	fonts := fontset.NewResolver(nil, nil)
	canvas := makeWhiteRGBA(200, 400)
	region := image.Rect(94, 20, 105, 380) // 11px wide

	if err := drawSpine(canvas, "Title", region, color.Black, fonts); err != nil {
		t.Fatalf("drawSpine: %v", err)
	}
	for y := 0; y < 400; y++ {
		for x := 0; x < 200; x++ {
			if !isWhite(canvas, x, y) {
				t.Fatalf("pixel at (%d,%d) changed, want untouched canvas", x, y)
			}
		}
	}
}

func TestDrawSpine_InkStaysInsideRegion(t *testing.T) {
	fonts := fontset.NewResolver(nil, nil)
	canvas := makeWhiteRGBA(300, 600)
	region := image.Rect(140, 40, 176, 560)

	if err := drawSpine(canvas, "My Book Title", region, color.Black, fonts); err != nil {
		t.Fatalf("drawSpine: %v", err)
	}

	var inside bool
	for y := 0; y < 600; y++ {
		for x := 0; x < 300; x++ {
			p := image.Pt(x, y)
			switch {
			case p.In(region):
				if !isWhite(canvas, x, y) {
					inside = true
				}
			case !isWhite(canvas, x, y):
				t.Fatalf("pixel at (%d,%d) outside spine region changed", x, y)
			}
		}
	}
	if !inside {
		t.Fatal("no ink inside spine region")
	}
}

func TestDrawSpine_MinimumWidthStillRenders(t *testing.T) {
	fonts := fontset.NewResolver(nil, nil)
	canvas := makeWhiteRGBA(240, 600)
	region := image.Rect(100, 20, 118, 580) // 18px, the narrowest printable spine

	if err := drawSpine(canvas, "ABC", region, color.Black, fonts); err != nil {
		t.Fatalf("drawSpine: %v", err)
	}

	var dark bool
	for y := region.Min.Y; y < region.Max.Y && !dark; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			c := canvas.RGBAAt(x, y)
			if c.R < 128 && c.G < 128 && c.B < 128 {
				dark = true
				break
			}
		}
	}
	if !dark {
		t.Fatal("no glyph ink inside minimum-width spine")
	}
}

func TestDrawSpine_LabelRunsVertically(t *testing.T) {
	fonts := fontset.NewResolver(nil, nil)
	canvas := makeWhiteRGBA(300, 600)
	region := image.Rect(130, 50, 170, 550)

	if err := drawSpine(canvas, "HELLO SPINE", region, color.Black, fonts); err != nil {
		t.Fatalf("drawSpine: %v", err)
	}

	minX, minY, maxX, maxY := canvas.Bounds().Max.X, canvas.Bounds().Max.Y, -1, -1
	for y := 0; y < 600; y++ {
		for x := 0; x < 300; x++ {
			c := canvas.RGBAAt(x, y)
			if c.R < 128 && c.G < 128 && c.B < 128 {
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < 0 {
		t.Fatal("no glyph ink drawn")
	}
	if gotW, gotH := maxX-minX, maxY-minY; gotH <= gotW {
		t.Fatalf("ink box %dx%d, want taller than wide", gotW, gotH)
	}
}
