// Package cover composites KDP wraparound print covers: it computes the
// spread geometry for a trim size and page count, fits the supplied
// artwork into the panels, overlays the cover text, and exports the
// result as a print-ready PDF.
package cover

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/julisunkan/CoverWizard/internal/fontset"
	"github.com/julisunkan/CoverWizard/internal/pdf"
)

// Error kinds returned by Generate. Match with errors.Is to separate
// caller mistakes (bad trim name, undecodable image) from processing and
// export failures.
var (
	ErrUnknownTrimSize = errors.New("unknown trim size")
	ErrImageDecode     = errors.New("image decode failed")
	ErrCompositing     = errors.New("cover compositing failed")
	ErrExport          = errors.New("cover export failed")
)

// Typography defaults applied when CoverSpec leaves the sizes zero.
// Sizes are in points; the raster conversion happens at the canvas DPI.
const (
	defaultTitleSizePt  = 48
	defaultAuthorSizePt = 24
	backTextSizeDropPt  = 4
	minBackTextSizePt   = 12
)

// CoverSpec describes one wraparound cover request. Title and Author are
// required by the time Generate runs; the remaining text fields are
// optional and skipped when blank.
type CoverSpec struct {
	TrimName  string
	PageCount int

	Title     string
	Subtitle  string
	Author    string
	SpineText string
	BackText  string

	TitleSizePt  float64     // 0 uses the default
	AuthorSizePt float64     // 0 uses the default
	TextColor    color.Color // nil uses white
}

// Options configures a Generator. The zero value is usable: every field
// falls back to a sensible default.
type Options struct {
	MinFillRatio    float64 // minimum panel coverage before background synthesis, default 0.85
	BlurSigma       float64 // gaussian sigma for synthesized backgrounds, default 15
	BackgroundBlend float64 // blend fraction toward the dominant edge color, default 0.3

	FontPaths []string // candidate TTF/OTF files tried in order before the bundled faces

	Logger *slog.Logger // nil discards progress and degradation logging
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Generator renders wraparound print covers. A Generator holds no state
// across calls beyond its configuration, but its font faces are not safe
// for concurrent use: create one Generator per concurrent caller.
type Generator struct {
	fitter *PanelFitter
	fonts  *fontset.Resolver
	logger *slog.Logger
}

// NewGenerator creates a cover generator.
func NewGenerator(opts Options) *Generator {
	logger := opts.logger()
	return &Generator{
		fitter: NewPanelFitter(opts),
		fonts:  fontset.NewResolver(opts.FontPaths, logger),
		logger: logger,
	}
}

// Generate composites the full cover spread and writes it to outputPath
// as a single-page PDF at exact physical size. back may be nil when no
// back-cover image is supplied; back-cover text is only drawn when the
// back image is present.
func (g *Generator) Generate(front io.Reader, back io.Reader, spec CoverSpec, outputPath string) error {
	geo, err := Geometry(spec.TrimName, spec.PageCount)
	if err != nil {
		return err
	}
	g.logger.Debug("spread geometry",
		"trim", spec.TrimName,
		"pages", spec.PageCount,
		"spine_in", geo.SpineWidthIn,
		"canvas_px", fmt.Sprintf("%dx%d", geo.CanvasWidthPx, geo.CanvasHeightPx))

	frontImg, err := imaging.Decode(front)
	if err != nil {
		return fmt.Errorf("%w: front image: %w", ErrImageDecode, err)
	}

	var backImg image.Image
	if back != nil {
		backImg, err = imaging.Decode(back)
		if err != nil {
			return fmt.Errorf("%w: back image: %w", ErrImageDecode, err)
		}
	}

	canvas, err := g.compose(frontImg, backImg, spec, geo)
	if err != nil {
		return err
	}

	meta := pdf.Metadata{Title: spec.Title, Author: spec.Author}
	if err := pdf.WriteFile(outputPath, canvas, geo.TotalWidthIn, geo.TotalHeightIn, meta); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	g.logger.Info("cover generated",
		"output", outputPath,
		"size_in", fmt.Sprintf("%.3fx%.3f", geo.TotalWidthIn, geo.TotalHeightIn))
	return nil
}

// compose runs the single forward compositing pass: white canvas, back
// panel, front panel, front text, back text, spine text. The canvas is
// owned here and mutated in place by every step.
func (g *Generator) compose(front, back image.Image, spec CoverSpec, geo SpreadGeometry) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, geo.CanvasWidthPx, geo.CanvasHeightPx))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if back != nil {
		panel := g.fitter.Fit(back, geo.PanelWidthPx, geo.PanelHeightPx)
		draw.Draw(canvas, geo.BackPanelRect(), panel, image.Point{}, draw.Src)
	}
	panel := g.fitter.Fit(front, geo.PanelWidthPx, geo.PanelHeightPx)
	draw.Draw(canvas, geo.FrontPanelRect(), panel, image.Point{}, draw.Src)

	dc := gg.NewContextForRGBA(canvas)

	if err := g.drawFrontText(dc, spec, geo); err != nil {
		return nil, fmt.Errorf("%w: front text: %w", ErrCompositing, err)
	}
	if back != nil && strings.TrimSpace(spec.BackText) != "" {
		if err := g.drawBackText(dc, spec, geo); err != nil {
			return nil, fmt.Errorf("%w: back text: %w", ErrCompositing, err)
		}
	}
	if strings.TrimSpace(spec.SpineText) != "" {
		if err := drawSpine(canvas, spec.SpineText, geo.SpineRect(), textColor(spec), g.fonts); err != nil {
			return nil, fmt.Errorf("%w: spine text: %w", ErrCompositing, err)
		}
	}

	return canvas, nil
}

// drawFrontText lays out title, optional subtitle, and author inside the
// front panel's safe text area: title centered in the upper quarter
// anchor, subtitle immediately below the measured title block, author
// pinned a quarter up from the bottom.
func (g *Generator) drawFrontText(dc *gg.Context, spec CoverSpec, geo SpreadGeometry) error {
	area := geo.FrontTextRect()
	fill := textColor(spec)
	maxWidth := float64(area.Dx())
	cx := float64(area.Min.X) + maxWidth/2

	titlePx := ptToPx(sizeOrDefault(spec.TitleSizePt, defaultTitleSizePt))
	titleFace, err := g.fonts.BoldFace(titlePx)
	if err != nil {
		return err
	}
	titleStyle := textStyle{face: titleFace, fill: fill, sizePx: titlePx, spacing: spacingNormal}
	titleCY := float64(area.Min.Y) + float64(area.Dy())/4
	titleH := drawTextBlock(dc, spec.Title, titleStyle, cx, titleCY, maxWidth)

	if strings.TrimSpace(spec.Subtitle) != "" {
		subPx := titlePx / 2
		subFace, err := g.fonts.Face(subPx)
		if err != nil {
			return err
		}
		subStyle := textStyle{face: subFace, fill: fill, sizePx: subPx, spacing: spacingNormal}
		subH := measureTextBlock(spec.Subtitle, subStyle, maxWidth)
		subCY := titleCY + titleH/2 + subStyle.linePitch()/2 + subH/2
		drawTextBlock(dc, spec.Subtitle, subStyle, cx, subCY, maxWidth)
	}

	authorPx := ptToPx(sizeOrDefault(spec.AuthorSizePt, defaultAuthorSizePt))
	authorFace, err := g.fonts.Face(authorPx)
	if err != nil {
		return err
	}
	authorStyle := textStyle{face: authorFace, fill: fill, sizePx: authorPx, spacing: spacingNormal}
	authorCY := float64(area.Max.Y) - float64(area.Dy())/4
	drawTextBlock(dc, spec.Author, authorStyle, cx, authorCY, maxWidth)

	return nil
}

// drawBackText lays out the back-cover copy in the upper half of the back
// panel's safe text area, paragraph-aware and with loosened leading.
func (g *Generator) drawBackText(dc *gg.Context, spec CoverSpec, geo SpreadGeometry) error {
	area := geo.BackTextRect()

	sizePt := sizeOrDefault(spec.AuthorSizePt, defaultAuthorSizePt) - backTextSizeDropPt
	if sizePt < minBackTextSizePt {
		sizePt = minBackTextSizePt
	}
	sizePx := ptToPx(sizePt)
	face, err := g.fonts.Face(sizePx)
	if err != nil {
		return err
	}

	style := textStyle{face: face, fill: textColor(spec), sizePx: sizePx, spacing: spacingLoose}
	lines := wrapParagraphs(spec.BackText, style, float64(area.Dx()))

	cx := float64(area.Min.X) + float64(area.Dx())/2
	cy := float64(area.Min.Y) + float64(area.Dy())*3/8
	drawLines(dc, lines, style, cx, cy)

	return nil
}

func sizeOrDefault(pt, fallback float64) float64 {
	if pt > 0 {
		return pt
	}
	return fallback
}

// ptToPx converts a point size to pixels at the canvas DPI.
func ptToPx(pt float64) float64 {
	return pt * DPI / 72
}

func textColor(spec CoverSpec) color.Color {
	if spec.TextColor != nil {
		return spec.TextColor
	}
	return color.White
}
