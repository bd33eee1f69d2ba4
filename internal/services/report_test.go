package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/pdfchunker/internal/chunk"
	"github.com/Lllllllleong/pdfchunker/internal/pdf"
	"github.com/Lllllllleong/pdfchunker/internal/relocate"
)

func sampleReport() *Report {
	start := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	return &Report{
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
		Files: []FileResult{
			{
				SourcePath: "/work/input/a.pdf",
				FileHash:   "abc",
				Status:     StatusFinished,
				State:      StateRelocated,
				PageCount:  4,
				Artifacts: []pdf.Artifact{
					{Name: "a_Part_1_with_Pages_1_to_2.pdf", Chunk: chunk.Chunk{Ordinal: 1, First: 0, Last: 1}},
					{Name: "a_Part_2_with_Pages_3_to_4.pdf", Chunk: chunk.Chunk{Ordinal: 2, First: 2, Last: 3}},
				},
				Relocation: &relocate.Result{Outcome: relocate.Moved, Destination: "/work/finished/a.pdf"},
			},
			{SourcePath: "/work/input/b.pdf", Status: StatusRejected, Err: chunk.ErrNotDivisible},
			{SourcePath: "/work/input/c.pdf", Status: StatusUnprocessed, Err: pdf.ErrUnreadableDocument},
			{
				SourcePath: "/work/input/d.pdf",
				Status:     StatusRelocationFailed,
				Relocation: &relocate.Result{Outcome: relocate.FailedExists, Err: errors.New("exists")},
				Err:        errors.New("failed to move"),
			},
		},
	}
}

func TestReport_Summary(t *testing.T) {
	report := sampleReport()
	s := report.Summary()

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Finished)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, 1, s.Unprocessed)
	assert.Equal(t, 0, s.WriteFailed)
	assert.Equal(t, 1, s.RelocationFailed)
	assert.Equal(t, 2, s.Artifacts)
	assert.Equal(t, report.StartedAt, s.StartedAt)
}

func TestReport_Failed(t *testing.T) {
	failed := sampleReport().Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "/work/input/c.pdf", failed[0].SourcePath)
	assert.Equal(t, "/work/input/d.pdf", failed[1].SourcePath)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "discovered", StateDiscovered.String())
	assert.Equal(t, "rejected", StateRejected.String())
	assert.Equal(t, "relocated", StateRelocated.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestNewChunkRecord(t *testing.T) {
	report := sampleReport()
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

	finished := newChunkRecord(report.Files[0], now)
	assert.Equal(t, "abc", finished.FileHash)
	assert.Equal(t, "a.pdf", finished.OriginalFilename)
	assert.Equal(t, "FINISHED", finished.Status)
	assert.Equal(t, 4, finished.PageCount)
	assert.Equal(t, []string{"a_Part_1_with_Pages_1_to_2.pdf", "a_Part_2_with_Pages_3_to_4.pdf"}, finished.Artifacts)
	assert.Equal(t, "/work/finished/a.pdf", finished.Destination)
	assert.Empty(t, finished.ErrorDetails)
	assert.Equal(t, now, finished.CreatedAt)

	stuck := newChunkRecord(report.Files[3], now)
	assert.Equal(t, "RELOCATION_FAILED", stuck.Status)
	assert.Equal(t, "failed to move", stuck.ErrorDetails)
	assert.Empty(t, stuck.Destination)
}

func TestNewBatchCompletedArgument(t *testing.T) {
	arg := newBatchCompletedArgument(sampleReport(), "chunks")

	assert.Equal(t, "chunks", arg.ArtifactBucket)
	assert.Equal(t, 4, arg.Summary.Total)
	assert.Equal(t, []string{"/work/input/c.pdf", "/work/input/d.pdf"}, arg.Failed)
}

func TestObjectName(t *testing.T) {
	a := pdf.Artifact{Name: "r_Part_1_with_Pages_1_to_2.pdf"}
	assert.Equal(t, "r_Part_1_with_Pages_1_to_2.pdf", objectName("", a))
	assert.Equal(t, "batches/r_Part_1_with_Pages_1_to_2.pdf", objectName("batches/", a))
}

func TestFunctionError(t *testing.T) {
	require.NoError(t, functionError(&Report{Files: []FileResult{{Status: StatusRejected}}}))

	err := functionError(sampleReport())
	require.Error(t, err)
	assert.ErrorIs(t, err, pdf.ErrUnreadableDocument)
	assert.Contains(t, err.Error(), "c.pdf: UNPROCESSED")
	assert.Contains(t, err.Error(), "d.pdf: RELOCATION_FAILED")

	uploadErr := errors.New("upload failed")
	err = functionError(&Report{Files: []FileResult{{SourcePath: "/x/e.pdf", Status: StatusFinished, PublishErr: uploadErr}}})
	assert.ErrorIs(t, err, uploadErr)
}
