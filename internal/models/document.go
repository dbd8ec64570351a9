package models

import "time"

// DocType classifies a document by where its content lives.
type DocType string

const (
	DocTypeEmpty      DocType = "empty"
	DocTypeTextBased  DocType = "text_based"
	DocTypeImageBased DocType = "image_based"
)

// TOCEntry is one entry of the document outline.
type TOCEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

// Page is the extracted content of a single page.
type Page struct {
	Number     int     `json:"number"` // 1-indexed
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Rotation   int     `json:"rotation"`
	Text       string  `json:"text"`
	CharCount  int     `json:"charCount"`
	ImageCount int     `json:"imageCount"`
}

// ExtractedDocument is the artifact written to the extracted bucket.
type ExtractedDocument struct {
	Path              string     `json:"path"`
	Hash              string     `json:"hash"`
	ExtractionVersion string     `json:"extractionVersion"`
	ElapsedSeconds    float64    `json:"elapsedSeconds"`
	DocType           DocType    `json:"docType"`
	PageCount         int        `json:"pageCount"`
	TOC               []TOCEntry `json:"toc,omitempty"`
	Pages             []Page     `json:"pages"`
}

// ExtractionRecord is the ledger entry kept in Firestore for every
// successful extraction, keyed by document hash.
type ExtractionRecord struct {
	DocHash           string    `firestore:"docHash"`
	Path              string    `firestore:"path"`
	Key               string    `firestore:"key"`
	DocType           DocType   `firestore:"docType"`
	PageCount         int       `firestore:"pageCount"`
	ExtractionVersion string    `firestore:"extractionVersion"`
	CreatedAt         time.Time `firestore:"createdAt"`
}
