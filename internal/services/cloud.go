package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	executions "cloud.google.com/go/workflows/executions/apiv1"
	"github.com/spf13/afero"

	"github.com/Lllllllleong/pdfchunker/internal/gcp"
)

// CloudConfig holds the optional cloud integrations, read from the environment.
type CloudConfig struct {
	ProjectID        string
	CollectionName   string
	ArtifactBucket   string
	ArtifactPrefix   string
	WorkflowID       string
	WorkflowLocation string
}

// LoadCloudConfig reads the cloud integration settings from the environment.
func LoadCloudConfig() CloudConfig {
	return CloudConfig{
		ProjectID:        gcp.GetEnv("PROJECT_ID", ""),
		CollectionName:   gcp.GetEnv("FIRESTORE_COLLECTION", "chunked-documents"),
		ArtifactBucket:   gcp.GetEnv("ARTIFACT_BUCKET", ""),
		ArtifactPrefix:   gcp.GetEnv("ARTIFACT_PREFIX", ""),
		WorkflowID:       gcp.GetEnv("WORKFLOW_ID", ""),
		WorkflowLocation: gcp.GetEnv("WORKFLOW_LOCATION", "us-central1"),
	}
}

// Enabled reports whether any integration is configured.
func (c CloudConfig) Enabled() bool {
	return c.ProjectID != "" || c.ArtifactBucket != "" || c.WorkflowID != ""
}

// Validate checks that dependent settings are present.
func (c CloudConfig) Validate() error {
	if c.WorkflowID != "" && c.ProjectID == "" {
		return errors.New("PROJECT_ID environment variable must be set when WORKFLOW_ID is set")
	}
	if c.ProjectID != "" && c.CollectionName == "" {
		return errors.New("FIRESTORE_COLLECTION must not be empty")
	}
	return nil
}

// CloudClients holds the clients for the configured integrations. Clients
// for disabled integrations are nil.
type CloudClients struct {
	Storage    *storage.Client
	Firestore  *firestore.Client
	Executions *executions.Client

	fs     afero.Fs
	config CloudConfig
}

// ConnectCloud creates a client for each configured integration.
func ConnectCloud(ctx context.Context, fsys afero.Fs, config CloudConfig) (*CloudClients, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c := &CloudClients{fs: fsys, config: config}

	if config.ArtifactBucket != "" {
		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create Storage client: %w", err)
		}
		c.Storage = storageClient
	}
	if config.ProjectID != "" {
		firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		c.Firestore = firestoreClient
	}
	if config.WorkflowID != "" {
		executionsClient, err := executions.NewClient(ctx)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to create Workflows Executions client: %w", err)
		}
		c.Executions = executionsClient
	}

	slog.Info("Cloud integrations initialized.",
		"artifactBucket", config.ArtifactBucket,
		"collection", c.collection(),
		"workflowId", config.WorkflowID,
	)
	return c, nil
}

// Options returns the runner options for the connected integrations.
func (c *CloudClients) Options() []Option {
	var opts []Option
	if c.Storage != nil {
		opts = append(opts, WithPublisher(NewGCSPublisher(c.fs, c.Storage, c.config.ArtifactBucket, c.config.ArtifactPrefix)))
	}
	if c.Firestore != nil {
		opts = append(opts, WithRecorder(NewFirestoreRecorder(c.Firestore, c.config.CollectionName)))
	}
	if c.Executions != nil {
		opts = append(opts, WithNotifier(NewWorkflowNotifier(c.Executions, c.config.ProjectID, c.config.WorkflowLocation, c.config.WorkflowID, c.config.ArtifactBucket)))
	}
	return opts
}

// Close closes every open client.
func (c *CloudClients) Close() error {
	var errs []error
	if c.Storage != nil {
		errs = append(errs, c.Storage.Close())
	}
	if c.Firestore != nil {
		errs = append(errs, c.Firestore.Close())
	}
	if c.Executions != nil {
		errs = append(errs, c.Executions.Close())
	}
	return errors.Join(errs...)
}

func (c *CloudClients) collection() string {
	if c.config.ProjectID == "" {
		return ""
	}
	return c.config.CollectionName
}
