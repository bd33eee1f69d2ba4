package models

import "time"

// These structs define the JSON payloads exchanged with Cloud Workflows
// and the chunk function.

// BatchSummary counts the terminal outcomes of a batch.
type BatchSummary struct {
	Total            int       `json:"total"`
	Finished         int       `json:"finished"`
	Rejected         int       `json:"rejected"`
	Unprocessed      int       `json:"unprocessed"`
	WriteFailed      int       `json:"writeFailed"`
	RelocationFailed int       `json:"relocationFailed"`
	Artifacts        int       `json:"artifacts"`
	StartedAt        time.Time `json:"startedAt"`
	FinishedAt       time.Time `json:"finishedAt"`
}

// BatchCompletedArgument is the execution argument of the hand-off workflow.
type BatchCompletedArgument struct {
	Summary        BatchSummary `json:"summary"`
	ArtifactBucket string       `json:"artifactBucket,omitempty"`
	Failed         []string     `json:"failed,omitempty"`
}
