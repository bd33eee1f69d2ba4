package services

import (
	"context"
	"fmt"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/Lllllllleong/pdfchunker/internal/gcp"
	"github.com/Lllllllleong/pdfchunker/internal/pdf"
)

const (
	maxConcurrentUploads = 10
	uploadTimeout        = 50 * time.Second
)

// GCSPublisher uploads artifacts to a Cloud Storage bucket. Objects that
// already exist are never overwritten.
type GCSPublisher struct {
	fs     afero.Fs
	bucket *storage.BucketHandle
	name   string
	prefix string
}

// NewGCSPublisher returns a publisher writing objects under prefix in bucket.
func NewGCSPublisher(fsys afero.Fs, client *storage.Client, bucket, prefix string) *GCSPublisher {
	return &GCSPublisher{fs: fsys, bucket: client.Bucket(bucket), name: bucket, prefix: prefix}
}

// Publish uploads every artifact of res concurrently.
func (p *GCSPublisher) Publish(ctx context.Context, res FileResult) error {
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentUploads)

	for _, artifact := range res.Artifacts {
		eg.Go(func() error {
			if err := p.upload(gctx, artifact); err != nil {
				return fmt.Errorf("part %d: %w", artifact.Chunk.Ordinal, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("one or more artifacts failed to upload to gs://%s: %w", p.name, err)
	}
	return nil
}

func (p *GCSPublisher) upload(ctx context.Context, artifact pdf.Artifact) error {
	localFile, err := p.fs.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("could not open local file %s: %w", artifact.Path, err)
	}
	defer localFile.Close()

	writeCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()
	return gcp.SaveToGCSAtomically(writeCtx, p.bucket, objectName(p.prefix, artifact), localFile)
}

func objectName(prefix string, artifact pdf.Artifact) string {
	if prefix == "" {
		return artifact.Name
	}
	return path.Join(prefix, artifact.Name)
}
