package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Lllllllleong/pdfchunker/internal/models"
)

// FirestoreRecorder stores one ChunkRecord per processed file.
type FirestoreRecorder struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreRecorder returns a recorder writing into collection.
func NewFirestoreRecorder(client *firestore.Client, collection string) *FirestoreRecorder {
	return &FirestoreRecorder{client: client, collection: collection}
}

// Record adds a document describing res.
func (r *FirestoreRecorder) Record(ctx context.Context, res FileResult) error {
	record := newChunkRecord(res, time.Now())
	if _, _, err := r.client.Collection(r.collection).Add(ctx, record); err != nil {
		return fmt.Errorf("failed to create chunk record: %w", err)
	}
	return nil
}

func newChunkRecord(res FileResult, now time.Time) models.ChunkRecord {
	record := models.ChunkRecord{
		FileHash:         res.FileHash,
		OriginalFilename: filepath.Base(res.SourcePath),
		SourcePath:       res.SourcePath,
		Status:           string(res.Status),
		PageCount:        res.PageCount,
		Artifacts:        res.ArtifactNames(),
		CreatedAt:        now,
	}
	if res.Err != nil {
		record.ErrorDetails = res.Err.Error()
	}
	if res.Relocation != nil && res.Relocation.OK() {
		record.Destination = res.Relocation.Destination
	}
	return record
}
