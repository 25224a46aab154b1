// Test program for spread geometry calculations
//
// Usage:
//
//	go run ./cmd/test/spread_inspector/main.go <trim-size> <page-count>
//
// This program tests the following functionality:
// - Trim size lookup
// - Spine width calculation from the page count
// - Full spread dimensions in inches and pixels
// - Panel, spine, and text region placement on the canvas
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/julisunkan/CoverWizard/internal/cover"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: go run ./cmd/test/spread_inspector/main.go <trim-size> <page-count>")
		fmt.Println("Trim sizes:")
		for _, name := range cover.TrimSizeNames() {
			fmt.Printf("  - %s\n", name)
		}
		os.Exit(1)
	}

	trim := os.Args[1]
	pages, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatalf("Invalid page count %q: %v", os.Args[2], err)
	}

	fmt.Printf("Computing spread geometry: trim=%s pages=%d\n", trim, pages)
	geo, err := cover.Geometry(trim, pages)
	if err != nil {
		log.Fatalf("Failed to compute geometry: %v", err)
	}
	fmt.Printf("✓ Geometry computed successfully\n\n")

	fmt.Printf("Trim size:    %.2f x %.2f in\n", geo.Trim.WidthIn, geo.Trim.HeightIn)
	fmt.Printf("Spine width:  %.4f in (%d px)\n", geo.SpineWidthIn, geo.SpineWidthPx)
	fmt.Printf("Total spread: %.4f x %.4f in\n", geo.TotalWidthIn, geo.TotalHeightIn)
	fmt.Printf("Canvas:       %d x %d px\n", geo.CanvasWidthPx, geo.CanvasHeightPx)
	fmt.Printf("Panel:        %d x %d px\n", geo.PanelWidthPx, geo.PanelHeightPx)
	fmt.Printf("Bleed:        %d px, safe margin: %d px\n\n", geo.BleedPx, geo.SafeMarginPx)

	fmt.Println("Canvas regions:")
	fmt.Printf("  back panel:  %v\n", geo.BackPanelRect())
	fmt.Printf("  spine:       %v\n", geo.SpineRect())
	fmt.Printf("  front panel: %v\n", geo.FrontPanelRect())
	fmt.Printf("  front text:  %v\n", geo.FrontTextRect())
	fmt.Printf("  back text:   %v\n", geo.BackTextRect())

	back, spine, front := geo.BackPanelRect(), geo.SpineRect(), geo.FrontPanelRect()
	if back.Max.X != spine.Min.X || spine.Max.X != front.Min.X {
		log.Fatal("Regions do not tile: seam between panels and spine")
	}
	if front.Max.X+geo.BleedPx != geo.CanvasWidthPx {
		log.Fatal("Regions do not tile: front panel does not reach the right bleed edge")
	}
	fmt.Println("\n✓ Regions tile the canvas without seams")
}
