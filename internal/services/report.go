package services

import (
	"time"

	"github.com/Lllllllleong/pdfchunker/internal/models"
	"github.com/Lllllllleong/pdfchunker/internal/pdf"
	"github.com/Lllllllleong/pdfchunker/internal/relocate"
)

// State is the furthest pipeline step a file reached.
type State int

const (
	StateDiscovered State = iota
	StateLoaded
	StateRejected
	StateValidated
	StateChunked
	StateWritten
	StateRelocated
)

func (s State) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateLoaded:
		return "loaded"
	case StateRejected:
		return "rejected"
	case StateValidated:
		return "validated"
	case StateChunked:
		return "chunked"
	case StateWritten:
		return "written"
	case StateRelocated:
		return "relocated"
	default:
		return "unknown"
	}
}

// Status is the terminal outcome of a file.
type Status string

const (
	// StatusFinished means all artifacts were written and the source moved to finished.
	StatusFinished Status = "FINISHED"
	// StatusRejected means the page count was invalid and the source moved to error.
	StatusRejected Status = "REJECTED"
	// StatusUnprocessed means the document could not be loaded and was left in place.
	StatusUnprocessed Status = "UNPROCESSED"
	// StatusWriteFailed means an artifact could not be written and the source was left in place.
	StatusWriteFailed Status = "WRITE_FAILED"
	// StatusRelocationFailed means the source could not be moved to its terminal directory.
	StatusRelocationFailed Status = "RELOCATION_FAILED"
)

// FileResult captures how a single file went through the pipeline.
type FileResult struct {
	SourcePath string
	FileHash   string
	State      State
	Status     Status
	PageCount  int
	Artifacts  []pdf.Artifact
	Relocation *relocate.Result
	Err        error

	// PublishErr and RecordErr never change Status.
	PublishErr error
	RecordErr  error
}

// ArtifactNames returns the filenames of the written artifacts in ordinal order.
func (r FileResult) ArtifactNames() []string {
	names := make([]string, 0, len(r.Artifacts))
	for _, a := range r.Artifacts {
		names = append(names, a.Name)
	}
	return names
}

// Report is the outcome of one batch, one FileResult per discovered file
// in processing order.
type Report struct {
	Files      []FileResult
	StartedAt  time.Time
	FinishedAt time.Time
	NotifyErr  error
}

// Count returns how many files ended with status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the files that need operator attention.
func (r *Report) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		switch f.Status {
		case StatusUnprocessed, StatusWriteFailed, StatusRelocationFailed:
			failed = append(failed, f)
		}
	}
	return failed
}

// Summary returns the per-status counts of the report.
func (r *Report) Summary() models.BatchSummary {
	s := models.BatchSummary{
		Total:            len(r.Files),
		Finished:         r.Count(StatusFinished),
		Rejected:         r.Count(StatusRejected),
		Unprocessed:      r.Count(StatusUnprocessed),
		WriteFailed:      r.Count(StatusWriteFailed),
		RelocationFailed: r.Count(StatusRelocationFailed),
		StartedAt:        r.StartedAt,
		FinishedAt:       r.FinishedAt,
	}
	for _, f := range r.Files {
		s.Artifacts += len(f.Artifacts)
	}
	return s
}
