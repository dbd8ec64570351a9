package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Lllllllleong/pdfextractor/internal/apperrors"
	"github.com/Lllllllleong/pdfextractor/internal/config"
	"github.com/Lllllllleong/pdfextractor/internal/gcp"
	"github.com/Lllllllleong/pdfextractor/internal/models"
	"github.com/Lllllllleong/pdfextractor/internal/pdf"
	"github.com/Lllllllleong/pdfextractor/internal/storage"
)

// Ledger records completed extractions.
type Ledger interface {
	Record(ctx context.Context, rec models.ExtractionRecord) error
}

// ExtractorFunction fetches a PDF from the documents bucket, extracts its text
// and writes the result to the extracted bucket under a content-addressed key.
type ExtractorFunction struct {
	store      storage.ObjectStore
	parser     *pdf.Parser
	classifier pdf.Classifier
	ledger     Ledger
	config     *config.Config
	closers    []io.Closer
	now        func() time.Time
}

var validate = validator.New()

// NewExtractor builds the extractor and the clients selected by cfg.
func NewExtractor(ctx context.Context, cfg *config.Config) (*ExtractorFunction, error) {
	var (
		store   storage.ObjectStore
		closers []io.Closer
	)
	switch cfg.StorageBackend {
	case config.BackendLocal:
		store = storage.NewLocalStore(cfg.LocalStorageRoot)
	default:
		client, err := gcp.NewStorageClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		gcs := gcp.NewGCSStore(client)
		store = gcs
		closers = append(closers, gcs)
	}

	var ledger Ledger
	if cfg.LedgerEnabled() {
		client, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID, cfg.CredentialsFile)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		fl := gcp.NewFirestoreLedger(client, cfg.LedgerCollection)
		ledger = fl
		closers = append(closers, fl)
	}

	f := New(cfg, store, ledger)
	f.closers = closers
	slog.Info("PDF extractor initialized.",
		"storageBackend", cfg.StorageBackend,
		"docsBucket", cfg.DocsBucket,
		"extractedBucket", cfg.ExtractedBucket,
		"ledgerEnabled", ledger != nil,
	)
	return f, nil
}

// New builds an extractor over existing dependencies. ledger may be nil.
func New(cfg *config.Config, store storage.ObjectStore, ledger Ledger) *ExtractorFunction {
	return &ExtractorFunction{
		store:  store,
		parser: pdf.NewParser(),
		classifier: pdf.Classifier{
			TextRatioThreshold: cfg.TextRatioThreshold,
			MinPageTextChars:   cfg.MinPageTextChars,
		},
		ledger: ledger,
		config: cfg,
		now:    time.Now,
	}
}

// Config returns the configuration the extractor was built with.
func (f *ExtractorFunction) Config() *config.Config {
	return f.config
}

// Close releases the clients created by NewExtractor.
func (f *ExtractorFunction) Close() error {
	var errs []error
	for _, c := range f.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Process runs one extraction. req.Path is used verbatim as the object key;
// adapters that receive percent-encoded keys decode them first. It always
// returns either an *models.ExtractionResult or an *models.ErrorResponse.
func (f *ExtractorFunction) Process(ctx context.Context, req models.ExtractionRequest) models.Response {
	logCtx := slog.With("requestId", uuid.NewString(), "path", req.Path)

	result, err := f.extract(ctx, logCtx, req)
	if err != nil {
		resp := f.ErrorResponse(req.Path, err)
		logCtx.Error("Extraction failed.",
			"statusCode", resp.StatusCode,
			"message", resp.Message,
			"error", err,
		)
		return resp
	}
	return result
}

func (f *ExtractorFunction) extract(ctx context.Context, logCtx *slog.Logger, req models.ExtractionRequest) (*models.ExtractionResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Validation("document path is required", err)
	}
	if strings.TrimSpace(req.Path) == "" {
		return nil, apperrors.Validation("document path is required", nil)
	}
	key := req.Path

	start := f.now()
	logCtx.Info("Fetching source document.", "bucket", f.config.DocsBucket, "key", key)

	data, err := f.store.Fetch(ctx, f.config.DocsBucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("document %s not found in bucket %s", key, f.config.DocsBucket), err)
		}
		return nil, apperrors.Internal("failed to fetch source document", err)
	}

	hash := contentHash(data)
	logCtx = logCtx.With("docHash", hash)

	parsed, err := f.parser.Parse(data)
	if err != nil {
		return nil, apperrors.Extraction("failed to extract text from document", err)
	}
	docType := f.classifier.Classify(parsed.Pages)
	logCtx.Info("Document parsed.", "pageCount", parsed.PageCount, "docType", docType)

	doc := models.ExtractedDocument{
		Path:              key,
		Hash:              hash,
		ExtractionVersion: config.ExtractionVersion,
		ElapsedSeconds:    roundSeconds(f.now().Sub(start)),
		DocType:           docType,
		PageCount:         parsed.PageCount,
		TOC:               parsed.TOC,
		Pages:             parsed.Pages,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.Internal("failed to serialize extracted document", err)
	}

	destKey := f.config.OutputPrefix + hash + ".json"
	if err := f.store.Put(ctx, f.config.ExtractedBucket, destKey, payload, "application/json"); err != nil {
		return nil, apperrors.Internal("failed to save extracted document", err)
	}
	logCtx.Info("Extracted document saved.", "bucket", f.config.ExtractedBucket, "key", destKey)

	if f.ledger != nil {
		rec := models.ExtractionRecord{
			DocHash:           hash,
			Path:              key,
			Key:               destKey,
			DocType:           docType,
			PageCount:         parsed.PageCount,
			ExtractionVersion: config.ExtractionVersion,
			CreatedAt:         f.now().UTC(),
		}
		if err := f.ledger.Record(ctx, rec); err != nil {
			logCtx.Warn("Failed to record extraction in ledger.", "error", err)
		}
	}

	return &models.ExtractionResult{
		Success: true,
		DocHash: hash,
		Key:     destKey,
		DocType: docType,
	}, nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
