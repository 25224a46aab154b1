package fontset

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func TestResolver_BundledFaces(t *testing.T) {
	r := NewResolver(nil, nil)

	regular, err := r.Face(24)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	bold, err := r.BoldFace(24)
	if err != nil {
		t.Fatalf("BoldFace: %v", err)
	}

	// The bundled pair is two distinct fonts, so the same string
	// measures differently.
	rw := font.MeasureString(regular, "measure me")
	bw := font.MeasureString(bold, "measure me")
	if rw == bw {
		t.Fatalf("regular and bold advance both %v, want distinct faces", rw)
	}
}

func TestResolver_UnusableCandidatesFallBack(t *testing.T) {
	junk := filepath.Join(t.TempDir(), "junk.ttf")
	if err := os.WriteFile(junk, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver([]string{"/does/not/exist.ttf", junk}, nil)
	face, err := r.Face(24)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if face == nil {
		t.Fatal("Face returned nil face")
	}
}

func TestResolver_CustomFontServesBothSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver([]string{path}, nil)
	regular, err := r.Face(24)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	bold, err := r.BoldFace(24)
	if err != nil {
		t.Fatalf("BoldFace: %v", err)
	}

	rw := font.MeasureString(regular, "measure me")
	bw := font.MeasureString(bold, "measure me")
	if rw != bw {
		t.Fatalf("regular advance %v != bold advance %v, want one custom font serving both", rw, bw)
	}
}

func TestResolver_SizeScalesMetrics(t *testing.T) {
	r := NewResolver(nil, nil)

	small, err := r.Face(24)
	if err != nil {
		t.Fatalf("Face(24): %v", err)
	}
	large, err := r.Face(48)
	if err != nil {
		t.Fatalf("Face(48): %v", err)
	}

	if sa, la := small.Metrics().Ascent, large.Metrics().Ascent; la <= sa {
		t.Fatalf("ascent at 48px (%v) not larger than at 24px (%v)", la, sa)
	}
}
