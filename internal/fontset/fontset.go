// Package fontset resolves typefaces for raster text drawing.
package fontset

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Resolver loads one typeface pair (regular and bold) and hands out sized
// faces. Candidate font files are tried in order; the first one that
// parses serves both slots, and when none do the bundled Go faces are
// used, so a face is always available.
//
// Faces carry glyph state that is not safe for concurrent use; give each
// generation call its own Resolver.
type Resolver struct {
	paths  []string
	logger *slog.Logger

	once    sync.Once
	regular *sfnt.Font
	bold    *sfnt.Font
	loadErr error
}

// NewResolver creates a resolver over an ordered list of candidate font
// files. A nil logger discards diagnostics.
func NewResolver(paths []string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{paths: paths, logger: logger}
}

// Face returns the body face at a pixel size.
func (r *Resolver) Face(sizePx float64) (font.Face, error) {
	r.once.Do(r.load)
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return newFace(r.regular, sizePx)
}

// BoldFace returns the display face at a pixel size.
func (r *Resolver) BoldFace(sizePx float64) (font.Face, error) {
	r.once.Do(r.load)
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return newFace(r.bold, sizePx)
}

func (r *Resolver) load() {
	for _, path := range r.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("skipping font candidate", "path", path, "error", err)
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			r.logger.Warn("skipping unparseable font", "path", path, "error", err)
			continue
		}
		r.logger.Debug("using font", "path", path)
		r.regular = f
		r.bold = f
		return
	}

	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		r.loadErr = fmt.Errorf("failed to parse bundled regular font: %w", err)
		return
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		r.loadErr = fmt.Errorf("failed to parse bundled bold font: %w", err)
		return
	}
	r.regular = regular
	r.bold = bold
}

// newFace sizes a parsed font. Size is in pixels: at 72 DPI one point
// maps to one pixel.
func newFace(f *sfnt.Font, sizePx float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
