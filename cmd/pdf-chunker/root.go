package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Lllllllleong/pdfchunker/internal/services"
)

// newRootCmd returns the pdf-chunker command. It runs one batch over the
// directory returned by workDir.
func newRootCmd(fsys afero.Fs, workDir func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "pdf-chunker",
		Short: "Split every PDF under input/ into fixed-size parts",
		Long: `pdf-chunker walks input/ in the working directory and splits each PDF
into parts of 2 pages written to output/. Split sources move to finished/,
sources whose page count is not a multiple of 2 move to error/.

Set ARTIFACT_BUCKET, PROJECT_ID or WORKFLOW_ID to publish artifacts, record
outcomes in Firestore, or hand the batch summary to a workflow.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := workDir()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}
			ctx := cmd.Context()

			var opts []services.Option
			if cloud := services.LoadCloudConfig(); cloud.Enabled() {
				clients, err := services.ConnectCloud(ctx, fsys, cloud)
				if err != nil {
					return err
				}
				defer clients.Close()
				opts = clients.Options()
			}

			runner, err := services.NewRunner(fsys, services.DefaultChunkerConfig(root), opts...)
			if err != nil {
				return err
			}
			report, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func printReport(w io.Writer, report *services.Report) {
	s := report.Summary()
	fmt.Fprintf(w, "Processed %d files: %d finished, %d rejected, %d unprocessed, %d write failures, %d relocation failures.\n",
		s.Total, s.Finished, s.Rejected, s.Unprocessed, s.WriteFailed, s.RelocationFailed)
	fmt.Fprintf(w, "Wrote %d artifacts.\n", s.Artifacts)
	for _, f := range report.Failed() {
		fmt.Fprintf(w, "  NEEDS ATTENTION %s [%s]: %v\n", f.SourcePath, f.Status, f.Err)
	}
}
