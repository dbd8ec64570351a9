package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Lllllllleong/pdfextractor/internal/models"
)

func init() {
	// pdfcpu would otherwise create a config directory under the user's
	// home, which is read-only in Cloud Functions.
	api.DisableConfigDir()
}

// ErrEmptyDocument is returned for zero-length input.
var ErrEmptyDocument = errors.New("empty document")

// Document is the parsed content of a PDF.
type Document struct {
	PageCount int
	Pages     []models.Page
	TOC       []models.TOCEntry
}

// Parser turns PDF bytes into per-page text and layout metadata. pdfcpu
// validates the file and supplies the page count; ledongthuc/pdf reads text,
// page boxes, drawn images and the outline.
type Parser struct {
	conf *model.Configuration
}

// NewParser creates a parser using relaxed validation, which accepts the
// minor format violations common in real-world PDFs.
func NewParser() *Parser {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Parser{conf: conf}
}

// Parse extracts every page of data. Corrupt or non-PDF input is an error,
// never an empty document.
func (p *Parser) Parse(data []byte) (doc *Document, err error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	pageCount, err := api.PageCount(bytes.NewReader(data), p.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to validate PDF: %w", err)
	}

	// ledongthuc/pdf panics on some malformed objects.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("failed to read PDF content: %v", r)
		}
	}()

	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	doc = &Document{
		PageCount: pageCount,
		Pages:     make([]models.Page, 0, pageCount),
		TOC:       flattenOutline(reader.Outline().Child, 1, nil),
	}
	for number := 1; number <= pageCount; number++ {
		doc.Pages = append(doc.Pages, readPage(reader.Page(number), number))
	}
	return doc, nil
}

func readPage(page lpdf.Page, number int) models.Page {
	out := models.Page{Number: number}
	if page.V.IsNull() {
		slog.Warn("PDF page missing from page tree", "page", number)
		return out
	}

	out.Width, out.Height = pageSize(page)
	out.Rotation = int(inherited(page.V, "Rotate").Int64())
	out.ImageCount = countDrawnImages(page)

	text, err := page.GetPlainText(nil)
	if err != nil {
		slog.Warn("Failed to extract text from page", "page", number, "error", err)
		return out
	}
	out.Text = strings.TrimSpace(text)
	out.CharCount = countVisible(out.Text)
	return out
}

// inherited looks key up on the page and then on its ancestors in the page
// tree, following the PDF attribute inheritance rules.
func inherited(v lpdf.Value, key string) lpdf.Value {
	for depth := 0; !v.IsNull() && depth < 64; depth++ {
		if val := v.Key(key); !val.IsNull() {
			return val
		}
		v = v.Key("Parent")
	}
	return lpdf.Value{}
}

func pageSize(page lpdf.Page) (float64, float64) {
	box := inherited(page.V, "MediaBox")
	if box.Kind() != lpdf.Array || box.Len() != 4 {
		return 0, 0
	}
	width := box.Index(2).Float64() - box.Index(0).Float64()
	height := box.Index(3).Float64() - box.Index(1).Float64()
	return abs(width), abs(height)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// countDrawnImages counts the image XObjects painted by the page's content
// stream. Resource dictionaries are often shared between pages, so listing
// them would overcount.
func countDrawnImages(page lpdf.Page) (count int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Failed to scan page content for images", "error", r)
			count = 0
		}
	}()

	xobjects := page.Resources().Key("XObject")
	if xobjects.IsNull() {
		return 0
	}

	do := func(stk *lpdf.Stack, op string) {
		n := stk.Len()
		args := make([]lpdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		if op != "Do" || n != 1 {
			return
		}
		if xobjects.Key(args[0].Name()).Key("Subtype").Name() == "Image" {
			count++
		}
	}

	contents := page.V.Key("Contents")
	switch contents.Kind() {
	case lpdf.Stream:
		lpdf.Interpret(contents, do)
	case lpdf.Array:
		for i := 0; i < contents.Len(); i++ {
			lpdf.Interpret(contents.Index(i), do)
		}
	}
	return count
}

func countVisible(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func flattenOutline(entries []lpdf.Outline, level int, out []models.TOCEntry) []models.TOCEntry {
	for _, entry := range entries {
		out = append(out, models.TOCEntry{Level: level, Title: entry.Title})
		out = flattenOutline(entry.Child, level+1, out)
	}
	return out
}
