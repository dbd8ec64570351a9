package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Lllllllleong/pdfextractor/internal/config"
	"github.com/Lllllllleong/pdfextractor/internal/function"
	"github.com/Lllllllleong/pdfextractor/internal/logging"
	"github.com/Lllllllleong/pdfextractor/internal/services"
)

var (
	adapter *function.EventAdapter
	once    sync.Once
	initErr error
)

func init() {
	// --- Set up structured logging ---
	logging.Setup(config.ParseEnvironment(os.Getenv("ENV")).LogLevel())

	// Direct invocations with {"path": "..."} and storage finalize events.
	functions.HTTP("ExtractDocument", extractDocument)
	functions.CloudEvent("ExtractOnFinalize", extractOnFinalize)
}

// main starts the Functions Framework for local runs. When deployed, the
// platform serves the registered functions itself.
func main() {
	port := config.GetEnv("PORT", "8080")
	if err := funcframework.StartHostPort("", port); err != nil {
		slog.Error("Functions Framework exited", "error", err)
		os.Exit(1)
	}
}

func initAdapter() error {
	once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extractor, err := services.NewExtractor(context.Background(), cfg)
		if err != nil {
			initErr = err
			return
		}
		adapter = function.NewEventAdapter(extractor, cfg.DocsBucket)
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
	}
	return initErr
}

func extractDocument(w http.ResponseWriter, r *http.Request) {
	if err := initAdapter(); err != nil {
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}
	adapter.ServeHTTP(w, r)
}

// extractOnFinalize never returns an error: a failed initialization is a
// configuration problem that a platform retry cannot fix.
func extractOnFinalize(ctx context.Context, e cloudevents.Event) error {
	if err := initAdapter(); err != nil {
		slog.Error("Dropping storage event", "eventId", e.ID(), "error", err)
		return nil
	}
	return adapter.HandleCloudEvent(ctx, e)
}
