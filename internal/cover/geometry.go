package cover

import (
	"fmt"
	"image"
	"math"
	"sort"
)

// Physical constants for KDP print covers. Bleed and the safe text margin
// are KDP submission requirements; DPI is the raster resolution of the
// working canvas and the nominal resolution embedded in the exported PDF.
const (
	DPI          = 300
	BleedIn      = 0.125
	SafeMarginIn = 0.25
)

// KDP spine formula for standard white paper: one sheet (two pages) adds
// 0.0025in, floored so very short books still get a printable spine.
const (
	spineInPerSheet = 0.0025
	minSpineIn      = 0.06
)

// TrimSize is a finished page size in inches.
type TrimSize struct {
	WidthIn  float64
	HeightIn float64
}

// trimCatalog maps the KDP standard trim size names to their dimensions.
var trimCatalog = map[string]TrimSize{
	"5x8":       {5.0, 8.0},
	"5.25x8":    {5.25, 8.0},
	"5.5x8.5":   {5.5, 8.5},
	"6x9":       {6.0, 9.0},
	"6.14x9.21": {6.14, 9.21}, // A5
	"6.69x9.61": {6.69, 9.61}, // 17x24.4 cm
	"7x10":      {7.0, 10.0},
	"7.44x9.69": {7.44, 9.69}, // B5
	"7.5x9.25":  {7.5, 9.25},
	"8x10":      {8.0, 10.0},
	"8.25x6":    {8.25, 6.0},
	"8.25x8.25": {8.25, 8.25},
	"8.5x8.5":   {8.5, 8.5},
	"8.5x11":    {8.5, 11.0},
}

// LookupTrimSize returns the catalog entry for a trim size name.
func LookupTrimSize(name string) (TrimSize, bool) {
	t, ok := trimCatalog[name]
	return t, ok
}

// TrimSizeNames returns the catalog names ordered by page width, then height.
func TrimSizeNames() []string {
	names := make([]string, 0, len(trimCatalog))
	for name := range trimCatalog {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := trimCatalog[names[i]], trimCatalog[names[j]]
		if a.WidthIn != b.WidthIn {
			return a.WidthIn < b.WidthIn
		}
		return a.HeightIn < b.HeightIn
	})
	return names
}

// SpreadGeometry describes one wraparound cover spread: back panel, spine,
// front panel, and bleed on every outer edge. Inch fields are exact; pixel
// fields truncate inches times DPI. The canvas dimensions are the sum of
// the component pixel spans, so the regions tile the spread edge to edge
// with no seam regardless of rounding.
type SpreadGeometry struct {
	Trim          TrimSize
	SpineWidthIn  float64
	TotalWidthIn  float64
	TotalHeightIn float64

	PanelWidthPx  int
	PanelHeightPx int
	SpineWidthPx  int
	BleedPx       int
	SafeMarginPx  int

	CanvasWidthPx  int
	CanvasHeightPx int
}

// SpineWidth returns the spine width in inches for a page count.
func SpineWidth(pageCount int) float64 {
	return math.Max(float64(pageCount)/2*spineInPerSheet, minSpineIn)
}

// Geometry computes the spread geometry for a named trim size and page
// count. Page counts are taken as given; validating them is the caller's
// concern. Fails with ErrUnknownTrimSize for names not in the catalog.
func Geometry(trimName string, pageCount int) (SpreadGeometry, error) {
	trim, ok := trimCatalog[trimName]
	if !ok {
		return SpreadGeometry{}, fmt.Errorf("%w: %q", ErrUnknownTrimSize, trimName)
	}

	spineIn := SpineWidth(pageCount)
	g := SpreadGeometry{
		Trim:          trim,
		SpineWidthIn:  spineIn,
		TotalWidthIn:  trim.WidthIn*2 + spineIn + BleedIn*2,
		TotalHeightIn: trim.HeightIn + BleedIn*2,
		PanelWidthPx:  toPixels(trim.WidthIn),
		PanelHeightPx: toPixels(trim.HeightIn),
		SpineWidthPx:  toPixels(spineIn),
		BleedPx:       toPixels(BleedIn),
		SafeMarginPx:  toPixels(SafeMarginIn),
	}
	g.CanvasWidthPx = g.PanelWidthPx*2 + g.SpineWidthPx + g.BleedPx*2
	g.CanvasHeightPx = g.PanelHeightPx + g.BleedPx*2
	return g, nil
}

// toPixels converts inches to whole pixels, truncating the same way for
// every region so adjacent regions share exact pixel boundaries.
func toPixels(in float64) int {
	return int(in * DPI)
}

// BackPanelRect is the back cover panel, flush against the left bleed.
func (g SpreadGeometry) BackPanelRect() image.Rectangle {
	return image.Rect(g.BleedPx, g.BleedPx, g.BleedPx+g.PanelWidthPx, g.BleedPx+g.PanelHeightPx)
}

// SpineRect is the spine strip between the two panels.
func (g SpreadGeometry) SpineRect() image.Rectangle {
	x := g.BleedPx + g.PanelWidthPx
	return image.Rect(x, g.BleedPx, x+g.SpineWidthPx, g.BleedPx+g.PanelHeightPx)
}

// FrontPanelRect is the front cover panel, flush against the right bleed.
func (g SpreadGeometry) FrontPanelRect() image.Rectangle {
	x := g.BleedPx + g.PanelWidthPx + g.SpineWidthPx
	return image.Rect(x, g.BleedPx, x+g.PanelWidthPx, g.BleedPx+g.PanelHeightPx)
}

// FrontTextRect is the front panel inset by the safe text margin.
func (g SpreadGeometry) FrontTextRect() image.Rectangle {
	return g.FrontPanelRect().Inset(g.SafeMarginPx)
}

// BackTextRect is the back panel inset by the safe text margin.
func (g SpreadGeometry) BackTextRect() image.Rectangle {
	return g.BackPanelRect().Inset(g.SafeMarginPx)
}
