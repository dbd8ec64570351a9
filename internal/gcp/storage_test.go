package gcp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	objectstore "github.com/Lllllllleong/pdfextractor/internal/storage"
)

// fakeGCS serves the two Cloud Storage calls the store makes: XML API object
// reads (GET /<bucket>/<object>) and JSON API uploads (POST).
type fakeGCS struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putStatus int
	uploads   []*http.Request
}

func (f *fakeGCS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		data, ok := f.objects[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.Error(w, "no such object", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("X-Goog-Generation", "1")
		w.Header().Set("X-Goog-Metageneration", "1")
		_, _ = w.Write(data)
	case http.MethodPost:
		_, _ = io.Copy(io.Discard, r.Body)
		f.uploads = append(f.uploads, r)
		status := f.putStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			fmt.Fprintf(w, `{"error":{"code":%d,"message":"%s"}}`, status, http.StatusText(status))
			return
		}
		fmt.Fprint(w, `{"bucket":"extracted","name":"out.json","generation":"1"}`)
	default:
		http.Error(w, "unexpected request", http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T, fake *fakeGCS) *GCSStore {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewStorageClient(context.Background(), "",
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	client.SetRetry(storage.WithPolicy(storage.RetryNever))

	store := NewGCSStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGCSStore_Fetch(t *testing.T) {
	fake := &fakeGCS{objects: map[string][]byte{"docs/manuals/pump.pdf": []byte("%PDF-1.4 pump")}}
	store := newTestStore(t, fake)

	data, err := store.Fetch(context.Background(), "docs", "manuals/pump.pdf")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 pump"), data)
}

func TestGCSStore_FetchMissing(t *testing.T) {
	store := newTestStore(t, &fakeGCS{objects: map[string][]byte{}})

	_, err := store.Fetch(context.Background(), "docs", "ghost.pdf")

	assert.ErrorIs(t, err, objectstore.ErrNotFound)
}

func TestGCSStore_Put(t *testing.T) {
	tests := []struct {
		name      string
		putStatus int
		wantErr   bool
	}{
		{"created", http.StatusOK, false},
		{"already exists", http.StatusPreconditionFailed, false},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGCS{putStatus: tt.putStatus}
			store := newTestStore(t, fake)

			err := store.Put(context.Background(), "extracted", "abc.json", []byte(`{"hash":"abc"}`), "application/json")

			if tt.wantErr {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, objectstore.ErrNotFound)
			} else {
				assert.NoError(t, err)
			}

			fake.mu.Lock()
			defer fake.mu.Unlock()
			require.Len(t, fake.uploads, 1)
			// Writes only succeed when no object exists yet.
			assert.Equal(t, "0", fake.uploads[0].URL.Query().Get("ifGenerationMatch"))
		})
	}
}
