package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	executions "cloud.google.com/go/workflows/executions/apiv1"
	"cloud.google.com/go/workflows/executions/apiv1/executionspb"

	"github.com/Lllllllleong/pdfchunker/internal/models"
)

// WorkflowNotifier starts a Cloud Workflows execution for every completed batch.
type WorkflowNotifier struct {
	client         *executions.Client
	parent         string
	artifactBucket string
}

// NewWorkflowNotifier targets projects/{projectID}/locations/{location}/workflows/{workflowID}.
func NewWorkflowNotifier(client *executions.Client, projectID, location, workflowID, artifactBucket string) *WorkflowNotifier {
	return &WorkflowNotifier{
		client:         client,
		parent:         fmt.Sprintf("projects/%s/locations/%s/workflows/%s", projectID, location, workflowID),
		artifactBucket: artifactBucket,
	}
}

// Notify hands the batch summary to the workflow.
func (n *WorkflowNotifier) Notify(ctx context.Context, report *Report) error {
	payloadBytes, err := json.Marshal(newBatchCompletedArgument(report, n.artifactBucket))
	if err != nil {
		return fmt.Errorf("failed to marshal workflow payload: %w", err)
	}
	req := &executionspb.CreateExecutionRequest{
		Parent: n.parent,
		Execution: &executionspb.Execution{
			Argument: string(payloadBytes),
		},
	}
	execution, err := n.client.CreateExecution(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to trigger workflow execution: %w", err)
	}
	slog.Info("Triggered workflow.", "workflow", n.parent, "execution", execution.GetName())
	return nil
}

func newBatchCompletedArgument(report *Report, artifactBucket string) models.BatchCompletedArgument {
	arg := models.BatchCompletedArgument{
		Summary:        report.Summary(),
		ArtifactBucket: artifactBucket,
	}
	for _, f := range report.Failed() {
		arg.Failed = append(arg.Failed, f.SourcePath)
	}
	return arg
}
