package cover

import (
	"errors"
	"math"
	"testing"
)

func TestGeometry_SixByNineAt200Pages(t *testing.T) {
	g, err := Geometry("6x9", 200)
	if err != nil {
		t.Fatalf("Geometry() error = %v", err)
	}

	if g.SpineWidthIn != 0.25 {
		t.Fatalf("SpineWidthIn = %v, want 0.25", g.SpineWidthIn)
	}
	if g.TotalWidthIn != 12.5 {
		t.Fatalf("TotalWidthIn = %v, want 12.5", g.TotalWidthIn)
	}
	if g.TotalHeightIn != 9.25 {
		t.Fatalf("TotalHeightIn = %v, want 9.25", g.TotalHeightIn)
	}
	if g.PanelWidthPx != 1800 || g.PanelHeightPx != 2700 {
		t.Fatalf("panel = %dx%d px, want 1800x2700", g.PanelWidthPx, g.PanelHeightPx)
	}
	if g.SpineWidthPx != 75 {
		t.Fatalf("SpineWidthPx = %d, want 75", g.SpineWidthPx)
	}
	if g.BleedPx != 37 {
		t.Fatalf("BleedPx = %d, want 37", g.BleedPx)
	}
	if g.CanvasWidthPx != 3749 || g.CanvasHeightPx != 2774 {
		t.Fatalf("canvas = %dx%d px, want 3749x2774", g.CanvasWidthPx, g.CanvasHeightPx)
	}
}

func TestGeometry_CanvasNearInchConversion(t *testing.T) {
	// The canvas is the sum of the component pixel spans, which stays
	// within one pixel of converting the inch totals directly.
	for _, name := range TrimSizeNames() {
		for _, pages := range []int{1, 100, 1000} {
			g, err := Geometry(name, pages)
			if err != nil {
				t.Fatalf("Geometry(%q, %d) error = %v", name, pages, err)
			}

			wantW := int(g.TotalWidthIn * DPI)
			if diff := wantW - g.CanvasWidthPx; diff < -1 || diff > 1 {
				t.Fatalf("%s/%d: CanvasWidthPx = %d, inch conversion = %d", name, pages, g.CanvasWidthPx, wantW)
			}
			wantH := int(g.TotalHeightIn * DPI)
			if diff := wantH - g.CanvasHeightPx; diff < -1 || diff > 1 {
				t.Fatalf("%s/%d: CanvasHeightPx = %d, inch conversion = %d", name, pages, g.CanvasHeightPx, wantH)
			}
		}
	}
}

func TestGeometry_TotalsIncludeBleed(t *testing.T) {
	for _, name := range TrimSizeNames() {
		for _, pages := range []int{1, 100, 1000} {
			g, err := Geometry(name, pages)
			if err != nil {
				t.Fatalf("Geometry(%q, %d) error = %v", name, pages, err)
			}

			wantW := g.Trim.WidthIn*2 + g.SpineWidthIn + 0.25
			if math.Abs(g.TotalWidthIn-wantW) > 1e-9 {
				t.Fatalf("%s/%d: TotalWidthIn = %v, want %v", name, pages, g.TotalWidthIn, wantW)
			}
			wantH := g.Trim.HeightIn + 0.25
			if math.Abs(g.TotalHeightIn-wantH) > 1e-9 {
				t.Fatalf("%s/%d: TotalHeightIn = %v, want %v", name, pages, g.TotalHeightIn, wantH)
			}
		}
	}
}

func TestGeometry_RegionsTileWithoutSeams(t *testing.T) {
	g, err := Geometry("8.5x11", 347)
	if err != nil {
		t.Fatalf("Geometry() error = %v", err)
	}

	back, spine, front := g.BackPanelRect(), g.SpineRect(), g.FrontPanelRect()
	if back.Min.X != g.BleedPx {
		t.Fatalf("back panel starts at %d, want %d", back.Min.X, g.BleedPx)
	}
	if back.Max.X != spine.Min.X {
		t.Fatalf("gap between back panel (ends %d) and spine (starts %d)", back.Max.X, spine.Min.X)
	}
	if spine.Max.X != front.Min.X {
		t.Fatalf("gap between spine (ends %d) and front panel (starts %d)", spine.Max.X, front.Min.X)
	}
	if front.Max.X+g.BleedPx != g.CanvasWidthPx {
		t.Fatalf("front panel ends at %d, want %d", front.Max.X, g.CanvasWidthPx-g.BleedPx)
	}
	if back.Dy() != g.PanelHeightPx || spine.Dy() != g.PanelHeightPx || front.Dy() != g.PanelHeightPx {
		t.Fatal("regions must share the panel height")
	}
}

func TestSpineWidth_MonotonicWithFloor(t *testing.T) {
	if got := SpineWidth(1); got != 0.06 {
		t.Fatalf("SpineWidth(1) = %v, want 0.06", got)
	}
	if got := SpineWidth(800); got != 1.0 {
		t.Fatalf("SpineWidth(800) = %v, want 1.0", got)
	}

	prev := 0.0
	for pages := 1; pages <= 1200; pages += 7 {
		w := SpineWidth(pages)
		if w < 0.06 {
			t.Fatalf("SpineWidth(%d) = %v, below the floor", pages, w)
		}
		if w < prev {
			t.Fatalf("SpineWidth(%d) = %v, smaller than previous %v", pages, w, prev)
		}
		prev = w
	}
}

func TestGeometry_UnknownTrimSize(t *testing.T) {
	_, err := Geometry("9x9", 100)
	if !errors.Is(err, ErrUnknownTrimSize) {
		t.Fatalf("Geometry() error = %v, want ErrUnknownTrimSize", err)
	}
}

func TestTrimSizeNames_CatalogOrder(t *testing.T) {
	names := TrimSizeNames()
	if len(names) != 14 {
		t.Fatalf("len(names) = %d, want 14", len(names))
	}
	if names[0] != "5x8" {
		t.Fatalf("names[0] = %q, want 5x8", names[0])
	}
	if names[len(names)-1] != "8.5x11" {
		t.Fatalf("last name = %q, want 8.5x11", names[len(names)-1])
	}

	for i := 1; i < len(names); i++ {
		a, _ := LookupTrimSize(names[i-1])
		b, _ := LookupTrimSize(names[i])
		if b.WidthIn < a.WidthIn {
			t.Fatalf("names not ordered by width: %q before %q", names[i-1], names[i])
		}
	}
}

func TestLookupTrimSize(t *testing.T) {
	size, ok := LookupTrimSize("6x9")
	if !ok || size.WidthIn != 6.0 || size.HeightIn != 9.0 {
		t.Fatalf("LookupTrimSize(6x9) = %+v, %v", size, ok)
	}
	if _, ok := LookupTrimSize("6x9.5"); ok {
		t.Fatal("LookupTrimSize(6x9.5) should not resolve")
	}
}
