package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/Lllllllleong/pdfchunker/internal/chunk"
	"github.com/Lllllllleong/pdfchunker/internal/pdf"
	"github.com/Lllllllleong/pdfchunker/internal/relocate"
)

// Publisher receives the artifacts of every file that finished.
type Publisher interface {
	Publish(ctx context.Context, res FileResult) error
}

// Recorder receives the outcome of every processed file.
type Recorder interface {
	Record(ctx context.Context, res FileResult) error
}

// Notifier is told when a batch completes.
type Notifier interface {
	Notify(ctx context.Context, report *Report) error
}

// Runner drives every discovered input file through validation, chunking,
// artifact writing and relocation. Files are processed one at a time and a
// failure only ever affects the file it happened on.
type Runner struct {
	fs        afero.Fs
	config    ChunkerConfig
	writer    *pdf.Writer
	logger    *slog.Logger
	publisher Publisher
	recorder  Recorder
	notifier  Notifier
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithPublisher uploads the artifacts of finished files.
func WithPublisher(p Publisher) Option {
	return func(r *Runner) { r.publisher = p }
}

// WithRecorder records the outcome of each file.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithNotifier announces the completed batch.
func WithNotifier(n Notifier) Option {
	return func(r *Runner) { r.notifier = n }
}

// NewRunner returns a Runner over fsys. The configured directories must
// already exist.
func NewRunner(fsys afero.Fs, config ChunkerConfig, opts ...Option) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunker config: %w", err)
	}
	r := &Runner{
		fs:     fsys,
		config: config,
		writer: pdf.NewWriter(fsys, config.OutputDir, config.Extension),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Discover returns every regular file under the input directory whose name
// ends in the configured extension, in traversal order.
func (r *Runner) Discover() ([]string, error) {
	suffix := "." + r.config.Extension
	var paths []string
	err := afero.Walk(r.fs, r.config.InputDir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if path == r.config.InputDir {
				return err
			}
			r.logger.Warn("Skipping unreadable path.", "path", path, "error", err)
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if strings.HasSuffix(info.Name(), suffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk input directory %s: %w", r.config.InputDir, err)
	}
	return paths, nil
}

// Run processes every discovered file and returns the batch report. It
// only fails when the input directory itself cannot be walked.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now()}
	r.logger.Info("Splitting documents.", "inputDir", r.config.InputDir, "pagesPerChunk", r.config.PagesPerChunk)

	paths, err := r.Discover()
	if err != nil {
		r.logger.Error("Failed to discover input files.", "error", err)
		return nil, err
	}
	r.logger.Info("Discovered documents to split.", "count", len(paths))

	for _, path := range paths {
		res := r.ProcessFile(ctx, path)
		r.observe(ctx, &res)
		report.Files = append(report.Files, res)
	}
	report.FinishedAt = time.Now()

	summary := report.Summary()
	r.logger.Info("Batch complete.",
		"total", summary.Total,
		"finished", summary.Finished,
		"rejected", summary.Rejected,
		"unprocessed", summary.Unprocessed,
		"writeFailed", summary.WriteFailed,
		"relocationFailed", summary.RelocationFailed,
		"artifacts", summary.Artifacts,
	)

	if r.notifier != nil {
		if err := r.notifier.Notify(ctx, report); err != nil {
			r.logger.Error("Failed to announce batch completion.", "error", err)
			report.NotifyErr = err
		}
	}
	return report, nil
}

// ProcessFile runs a single file through the pipeline and captures where it
// ended up.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileResult {
	logCtx := r.logger.With("sourcePath", path)
	res := FileResult{SourcePath: path, State: StateDiscovered}

	fileHash, err := calculateFileHash(r.fs, path)
	if err != nil {
		logCtx.Warn("Failed to calculate file hash", "error", err)
	}
	res.FileHash = fileHash

	doc, err := pdf.Open(r.fs, path)
	if err != nil {
		logCtx.Error("Failed to load document. Leaving it in place.", "error", err)
		res.Status = StatusUnprocessed
		res.Err = err
		return res
	}
	res.State = StateLoaded
	res.PageCount = doc.PageCount()
	logCtx = logCtx.With("pageCount", res.PageCount)

	if err := chunk.Validate(doc.PageCount(), r.config.PagesPerChunk); err != nil {
		logCtx.Warn("Document rejected.", "error", err)
		res.State = StateRejected
		res.Err = err
		return r.relocate(logCtx, res, r.config.ErrorDir, StatusRejected)
	}
	res.State = StateValidated

	parts := chunk.Chunks(doc.PageCount(), r.config.PagesPerChunk)
	res.State = StateChunked
	logCtx.Info("Document validated.", "parts", chunk.Count(doc.PageCount(), r.config.PagesPerChunk))

	for c := range parts {
		artifact, err := r.writer.Write(doc, c)
		if err != nil {
			logCtx.Error("Failed to write artifact. Leaving source in place.", "part", c.Ordinal, "error", err)
			r.discard(logCtx, res.Artifacts)
			res.Artifacts = nil
			res.Status = StatusWriteFailed
			res.Err = err
			return res
		}
		logCtx.Info("Wrote artifact.", "artifact", artifact.Name, "firstPage", c.First+1, "lastPage", c.Last+1)
		res.Artifacts = append(res.Artifacts, artifact)
	}
	res.State = StateWritten

	return r.relocate(logCtx, res, r.config.FinishedDir, StatusFinished)
}

func (r *Runner) relocate(logCtx *slog.Logger, res FileResult, dir string, status Status) FileResult {
	moved := relocate.Move(r.fs, res.SourcePath, dir)
	res.Relocation = &moved
	if !moved.OK() {
		logCtx.Error("Failed to relocate source file. Manual intervention required.",
			"destination", moved.Destination,
			"outcome", moved.Outcome.String(),
			"error", moved.Err,
		)
		res.Status = StatusRelocationFailed
		res.Err = errors.Join(res.Err, fmt.Errorf("failed to move to %s (%s): %w", dir, moved.Outcome, moved.Err))
		return res
	}
	logCtx.Info("Relocated source file.", "destination", moved.Destination)
	res.State = StateRelocated
	res.Status = status
	return res
}

// discard removes the artifacts a failed file wrote during this run.
func (r *Runner) discard(logCtx *slog.Logger, artifacts []pdf.Artifact) {
	for _, a := range artifacts {
		if err := r.writer.Remove(a); err != nil {
			logCtx.Error("CRITICAL: Failed to remove partial artifact.", "artifact", a.Path, "error", err)
		}
	}
}

func (r *Runner) observe(ctx context.Context, res *FileResult) {
	logCtx := r.logger.With("sourcePath", res.SourcePath)
	if r.publisher != nil && res.Status == StatusFinished {
		if err := r.publisher.Publish(ctx, *res); err != nil {
			logCtx.Error("Failed to publish artifacts.", "error", err)
			res.PublishErr = err
		}
	}
	if r.recorder != nil {
		if err := r.recorder.Record(ctx, *res); err != nil {
			logCtx.Error("Failed to record file outcome.", "error", err)
			res.RecordErr = err
		}
	}
}

func calculateFileHash(fsys afero.Fs, filePath string) (string, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
