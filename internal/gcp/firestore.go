package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/Lllllllleong/pdfextractor/internal/models"
)

// NewFirestoreClient creates and returns a new Firestore client for the given project ID.
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// FirestoreLedger records extractions in a Firestore collection, one document
// per source hash.
type FirestoreLedger struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreLedger creates a ledger writing to collection.
func NewFirestoreLedger(client *firestore.Client, collection string) *FirestoreLedger {
	return &FirestoreLedger{client: client, collection: collection}
}

// Record upserts the entry for rec.DocHash. Recording the same document twice
// leaves a single entry.
func (l *FirestoreLedger) Record(ctx context.Context, rec models.ExtractionRecord) error {
	if rec.DocHash == "" {
		return fmt.Errorf("ledger record requires a document hash")
	}
	if _, err := l.client.Collection(l.collection).Doc(rec.DocHash).Set(ctx, rec); err != nil {
		return fmt.Errorf("failed to record extraction %s: %w", rec.DocHash, err)
	}
	return nil
}

// Close releases the underlying client.
func (l *FirestoreLedger) Close() error {
	return l.client.Close()
}
