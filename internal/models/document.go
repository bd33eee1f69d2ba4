package models

import "time"

// ChunkRecord is the Firestore record of one source file processed by a batch.
type ChunkRecord struct {
	FileHash         string    `firestore:"fileHash,omitempty"`
	OriginalFilename string    `firestore:"originalFilename,omitempty"`
	SourcePath       string    `firestore:"sourcePath,omitempty"`
	Status           string    `firestore:"status,omitempty"`
	ErrorDetails     string    `firestore:"errorDetails,omitempty"`
	PageCount        int       `firestore:"pageCount,omitempty"`
	Artifacts        []string  `firestore:"artifacts,omitempty"`
	Destination      string    `firestore:"destination,omitempty"`
	CreatedAt        time.Time `firestore:"createdAt,omitempty"`
}
