// Package pdf emits print-ready single-page documents from raster spreads.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// Metadata is stamped into the document information dictionary.
type Metadata struct {
	Title  string
	Author string
}

// WriteCover writes raster to w as a single full-bleed PDF page of
// exactly widthIn x heightIn physical inches. The raster is embedded
// losslessly and stretched to the page, so the printed size matches the
// requested physical dimensions regardless of the raster's pixel count.
func WriteCover(w io.Writer, raster image.Image, widthIn, heightIn float64, meta Metadata) error {
	if widthIn <= 0 || heightIn <= 0 {
		return fmt.Errorf("invalid page size %gx%g inches", widthIn, heightIn)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, raster); err != nil {
		return fmt.Errorf("failed to encode cover raster: %w", err)
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "in",
		Size:    fpdf.SizeType{Wd: widthIn, Ht: heightIn},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	if meta.Title != "" {
		doc.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		doc.SetAuthor(meta.Author, true)
	}
	doc.SetCreator("coverwizard", true)

	doc.AddPage()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("cover", opts, &buf)
	doc.ImageOptions("cover", 0, 0, widthIn, heightIn, false, opts, 0, "")

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// WriteFile writes the document to path through a temporary file in the
// same directory, renaming it into place only after a complete write so a
// failed export leaves no partial output behind.
func WriteFile(path string, raster image.Image, widthIn, heightIn float64, meta Metadata) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cover-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if err := WriteCover(tmp, raster, widthIn, heightIn, meta); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to publish output: %w", err)
	}
	return nil
}
