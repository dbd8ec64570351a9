package pdf

import "github.com/Lllllllleong/pdfextractor/internal/models"

// Classifier decides whether a document is text-based or image-based from
// how much text its pages yield compared to the images they draw.
type Classifier struct {
	// TextRatioThreshold is the share of text units, in [0, 1), that a
	// document must exceed to count as text-based.
	TextRatioThreshold float64
	// MinPageTextChars is the number of visible characters a page needs to
	// count as a text unit.
	MinPageTextChars int
}

// DefaultClassifier reproduces the simple majority rule: text-based when
// text pages outnumber drawn images.
func DefaultClassifier() Classifier {
	return Classifier{TextRatioThreshold: 0.5, MinPageTextChars: 1}
}

// Classify returns the document type for pages. A document with neither
// text nor images is empty.
func (c Classifier) Classify(pages []models.Page) models.DocType {
	minChars := c.MinPageTextChars
	if minChars < 1 {
		minChars = 1
	}

	var textUnits, imageUnits int
	for _, page := range pages {
		if page.CharCount >= minChars {
			textUnits++
		}
		imageUnits += page.ImageCount
	}

	total := textUnits + imageUnits
	if total == 0 {
		return models.DocTypeEmpty
	}
	if float64(textUnits)/float64(total) > c.TextRatioThreshold {
		return models.DocTypeTextBased
	}
	return models.DocTypeImageBased
}
