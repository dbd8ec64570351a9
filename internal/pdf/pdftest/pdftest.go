// Package pdftest builds small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page describes the content of one fixture page.
type Page struct {
	Lines    []string
	Images   int
	Bookmark string
}

// Text returns a page holding the given lines.
func Text(lines ...string) Page {
	return Page{Lines: lines}
}

// Image returns a page holding n images and no text, like a scan.
func Image(n int) Page {
	return Page{Images: n}
}

// Blank returns an empty page.
func Blank() Page {
	return Page{}
}

// Build renders pages into an uncompressed PDF. Output is deterministic for
// identical input.
func Build(t testing.TB, pages ...Page) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetCompression(false)
	doc.SetCreationDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.SetModificationDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	imageRegistered := false
	for _, p := range pages {
		doc.AddPage()
		if p.Bookmark != "" {
			doc.Bookmark(p.Bookmark, 0, -1)
		}
		if len(p.Lines) > 0 {
			doc.SetFont("Helvetica", "", 12)
			for i, line := range p.Lines {
				doc.Text(72, 72+float64(i)*16, line)
			}
		}
		if p.Images > 0 && !imageRegistered {
			doc.RegisterImageOptionsReader("scan", fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(jpegBytes(t)))
			imageRegistered = true
		}
		for i := 0; i < p.Images; i++ {
			doc.ImageOptions("scan", 72, 72+float64(i)*120, 100, 100, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("failed to render PDF fixture: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t testing.TB) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode fixture image: %v", err)
	}
	return buf.Bytes()
}
