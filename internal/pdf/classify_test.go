package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lllllllleong/pdfextractor/internal/models"
)

func page(chars, images int) models.Page {
	return models.Page{CharCount: chars, ImageCount: images}
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name       string
		classifier Classifier
		pages      []models.Page
		want       models.DocType
	}{
		{"no pages", DefaultClassifier(), nil, models.DocTypeEmpty},
		{"blank pages", DefaultClassifier(), []models.Page{page(0, 0), page(0, 0)}, models.DocTypeEmpty},
		{"text only", DefaultClassifier(), []models.Page{page(120, 0), page(80, 0)}, models.DocTypeTextBased},
		{"scanned", DefaultClassifier(), []models.Page{page(0, 1), page(0, 1)}, models.DocTypeImageBased},
		{"tie is image based", DefaultClassifier(), []models.Page{page(50, 1)}, models.DocTypeImageBased},
		{"text with a figure", DefaultClassifier(), []models.Page{page(400, 1), page(300, 0)}, models.DocTypeTextBased},
		{
			"stricter threshold",
			Classifier{TextRatioThreshold: 0.75, MinPageTextChars: 1},
			[]models.Page{page(400, 1), page(300, 0)},
			models.DocTypeImageBased,
		},
		{
			"short text below minimum",
			Classifier{TextRatioThreshold: 0.5, MinPageTextChars: 20},
			[]models.Page{page(5, 1), page(3, 0)},
			models.DocTypeImageBased,
		},
		{
			"short text below minimum and no images",
			Classifier{TextRatioThreshold: 0.5, MinPageTextChars: 20},
			[]models.Page{page(5, 0)},
			models.DocTypeEmpty,
		},
		{
			"zero minimum treated as one",
			Classifier{TextRatioThreshold: 0.5},
			[]models.Page{page(0, 0), page(1, 0)},
			models.DocTypeTextBased,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.classifier.Classify(tt.pages))
		})
	}
}
