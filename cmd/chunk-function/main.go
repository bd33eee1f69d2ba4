package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/Lllllllleong/pdfchunker/internal/services"
)

var (
	chunkerInstance *services.ChunkerFunction
	once            sync.Once
	initErr         error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.CloudEvent("ChunkUploadedPDF", chunkUploadedPDF)
}

// main is required by the Go Functions Framework.
func main() {}

// chunkUploadedPDF is the Cloud Function entry point for GCS finalize events.
func chunkUploadedPDF(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		chunkerInstance, initErr = services.NewChunkerFunction(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var gcsEvent services.GCSEvent
	if err := json.Unmarshal(e.Data(), &gcsEvent); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	// Process logs its own failures; returning them marks the invocation as failed.
	return chunkerInstance.Process(ctx, gcsEvent)
}
