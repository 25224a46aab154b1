package cover

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
)

const (
	defaultMinFillRatio    = 0.85
	defaultBlurSigma       = 15.0
	defaultBackgroundBlend = 0.3

	maxScaledPixels = 100 * 1000 * 1000 // scaled-size limit; extreme aspect ratios fall back to letterbox
)

// PanelFitter scales user images into fixed-size cover panels without
// distorting them. Images that nearly match the panel aspect ratio are
// scaled and center-cropped; everything else is centered over a blurred,
// color-matched rendition of itself so no hard letterbox bars appear.
type PanelFitter struct {
	MinFillRatio    float64
	BlurSigma       float64
	BackgroundBlend float64

	logger *slog.Logger
}

// NewPanelFitter creates a panel fitter, filling unset options with defaults.
func NewPanelFitter(opts Options) *PanelFitter {
	ratio := opts.MinFillRatio
	if ratio <= 0 || ratio > 1 {
		ratio = defaultMinFillRatio
	}

	sigma := opts.BlurSigma
	if sigma <= 0 {
		sigma = defaultBlurSigma
	}

	blend := opts.BackgroundBlend
	if blend <= 0 || blend > 1 {
		blend = defaultBackgroundBlend
	}

	return &PanelFitter{
		MinFillRatio:    ratio,
		BlurSigma:       sigma,
		BackgroundBlend: blend,
		logger:          opts.logger(),
	}
}

// Fit returns a raster of exactly width x height pixels derived from src.
// It never fails: if the preferred fitting path cannot run, the image is
// scaled to fit and centered on white, and a trailing resize snaps any
// rounding mismatch to the exact target size.
func (f *PanelFitter) Fit(src image.Image, width, height int) *image.NRGBA {
	panel, err := f.fill(src, width, height)
	if err != nil {
		f.logger.Warn("panel fit degraded to letterbox", "error", err)
		panel = letterbox(src, width, height)
	}
	if b := panel.Bounds(); b.Dx() != width || b.Dy() != height {
		panel = imaging.Resize(panel, width, height, imaging.Lanczos)
	}
	return panel
}

// fill scales src by whichever axis leaves the other axis with at least
// MinFillRatio of the target. When the scaled image covers the target on
// both axes it is center-cropped; otherwise it is pasted over a
// synthesized background.
func (f *PanelFitter) fill(src image.Image, width, height int) (*image.NRGBA, error) {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, fmt.Errorf("source image has no pixels")
	}

	srcRatio := float64(srcW) / float64(srcH)
	targetRatio := float64(width) / float64(height)

	var scale float64
	if srcRatio > targetRatio {
		scale = float64(width) / float64(srcW)
		if float64(srcH)*scale < float64(height)*f.MinFillRatio {
			scale = float64(height) * f.MinFillRatio / float64(srcH)
		}
	} else {
		scale = float64(height) / float64(srcH)
		if float64(srcW)*scale < float64(width)*f.MinFillRatio {
			scale = float64(width) * f.MinFillRatio / float64(srcW)
		}
	}

	scaledW := int(math.Round(float64(srcW) * scale))
	scaledH := int(math.Round(float64(srcH) * scale))
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}
	if uint64(scaledW)*uint64(scaledH) > maxScaledPixels {
		return nil, fmt.Errorf("scaled image too large: %dx%d", scaledW, scaledH)
	}

	scaled := imaging.Resize(src, scaledW, scaledH, imaging.Lanczos)

	if scaledW >= width && scaledH >= height {
		return imaging.CropCenter(scaled, width, height), nil
	}

	background := f.blurredBackground(src, width, height)
	return imaging.PasteCenter(background, scaled), nil
}

// blurredBackground fills the target area with a blurred rendition of src
// blended toward its dominant edge color, giving panels that cannot cover
// the target a background that reads as part of the artwork.
func (f *PanelFitter) blurredBackground(src image.Image, width, height int) *image.NRGBA {
	background := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)
	background = imaging.Blur(background, f.BlurSigma)

	tint := imaging.New(width, height, dominantEdgeColor(src))
	return imaging.Overlay(background, tint, image.Point{}, f.BackgroundBlend)
}

// letterbox scales src to fit inside the target and centers it on white.
func letterbox(src image.Image, width, height int) *image.NRGBA {
	canvas := imaging.New(width, height, color.White)
	fitted := imaging.Fit(src, width, height, imaging.Lanczos)
	return imaging.PasteCenter(canvas, fitted)
}

// dominantEdgeColor samples a sparse grid along all four edges of img and
// returns the mean color. Images without usable pixels yield white.
func dominantEdgeColor(img image.Image) color.NRGBA {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return white
	}

	stepX := w / 20
	if stepX < 1 {
		stepX = 1
	}
	stepY := h / 20
	if stepY < 1 {
		stepY = 1
	}

	var sumR, sumG, sumB, n uint64
	sample := func(x, y int) {
		r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
		sumR += uint64(r >> 8)
		sumG += uint64(g >> 8)
		sumB += uint64(bl >> 8)
		n++
	}

	for _, y := range []int{0, h - 1} {
		for x := 0; x < w; x += stepX {
			sample(x, y)
		}
	}
	for _, x := range []int{0, w - 1} {
		for y := 0; y < h; y += stepY {
			sample(x, y)
		}
	}

	if n == 0 {
		return white
	}
	return color.NRGBA{
		R: uint8(sumR / n),
		G: uint8(sumG / n),
		B: uint8(sumB / n),
		A: 255,
	}
}
