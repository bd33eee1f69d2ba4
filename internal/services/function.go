package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/spf13/afero"

	"github.com/Lllllllleong/pdfchunker/internal/gcp"
)

// GCSEvent is the payload of a GCS object finalize event.
type GCSEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// ChunkerFunction chunks PDFs uploaded to a bucket. Every invocation runs a
// one-file batch in a scratch working root.
type ChunkerFunction struct {
	fs      afero.Fs
	storage *storage.Client
	clients *CloudClients
	config  CloudConfig
}

// NewChunkerFunction connects the cloud integrations configured in the environment.
func NewChunkerFunction(ctx context.Context) (*ChunkerFunction, error) {
	config := LoadCloudConfig()
	if config.ArtifactBucket == "" {
		return nil, fmt.Errorf("ARTIFACT_BUCKET environment variable must be set")
	}

	fsys := afero.NewOsFs()
	clients, err := ConnectCloud(ctx, fsys, config)
	if err != nil {
		return nil, err
	}
	f := &ChunkerFunction{fs: fsys, storage: clients.Storage, clients: clients, config: config}
	slog.Info("PDF Chunker logic initialized.", "artifactBucket", config.ArtifactBucket)
	return f, nil
}

// Process downloads the object named by e and runs it through the pipeline.
func (f *ChunkerFunction) Process(ctx context.Context, e GCSEvent) error {
	logCtx := slog.With("gcsBucket", e.Bucket, "gcsObject", e.Name)
	if !strings.HasSuffix(e.Name, "."+DefaultExtension) {
		logCtx.Info("Ignoring object without a PDF extension.")
		return nil
	}
	logCtx.Info("Processing new GCS object.")

	tempDir, err := afero.TempDir(f.fs, "", "pdf-chunker-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer f.fs.RemoveAll(tempDir)

	config := DefaultChunkerConfig(tempDir)
	for _, dir := range []string{config.InputDir, config.FinishedDir, config.ErrorDir, config.OutputDir} {
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create working directory %s: %w", dir, err)
		}
	}

	sourcePath := filepath.Join(config.InputDir, path.Base(e.Name))
	if err := gcp.StreamObject(ctx, f.storage, e.Bucket, e.Name, f.fs, sourcePath); err != nil {
		logCtx.Error("Failed to download source PDF", "error", err)
		return err
	}

	runner, err := NewRunner(f.fs, config, append(f.clients.Options(), WithLogger(logCtx))...)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	return functionError(report)
}

// Close releases the cloud clients.
func (f *ChunkerFunction) Close() error {
	return f.clients.Close()
}

// functionError turns failed files into an invocation error so the event is
// reported as failed. Rejected files are a clean exit.
func functionError(report *Report) error {
	var errs []error
	for _, res := range report.Failed() {
		errs = append(errs, fmt.Errorf("%s: %s: %w", filepath.Base(res.SourcePath), res.Status, res.Err))
	}
	for _, res := range report.Files {
		if res.PublishErr != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(res.SourcePath), res.PublishErr))
		}
	}
	return errors.Join(errs...)
}
