package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"clipforge/internal/api"
	"clipforge/internal/queue"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var format, resolution string
	var wait bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "render <project-id>",
		Short: "Submit a render job for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ctx.apiClient()
			submitted, err := c.SubmitRender(cmd.Context(), args[0], api.RenderRequest{
				Format:     format,
				Resolution: resolution,
			})
			if err != nil {
				return err
			}
			if !wait {
				if jsonOut {
					return writeJSON(cmd, submitted)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Submitted render job %s (%s)\n", submitted.JobID, submitted.Status)
				fmt.Fprintf(cmd.OutOrStdout(), "Poll with: clipforge jobs show %s\n", submitted.JobID)
				return nil
			}

			job, err := c.WaitForJob(cmd.Context(), submitted.JobID, 500*time.Millisecond)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, job)
			}
			out := cmd.OutOrStdout()
			switch job.Status {
			case queue.StatusCompleted:
				fmt.Fprintf(out, "Render completed: %s\n", job.OutputPath)
			case queue.StatusFailed:
				fmt.Fprintf(out, "Render failed: %s\n", job.ErrorMessage)
			default:
				fmt.Fprintf(out, "Render %s at %d%%\n", job.Status, job.Progress)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Override the output format")
	cmd.Flags().StringVar(&resolution, "resolution", "", "Override the output resolution (WxH)")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait for the job to finish")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List render jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := ctx.apiClient().ListJobs(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, jobs)
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No render jobs")
				return nil
			}
			tbl := newTable("Job", "Project", "Format", "Resolution", "Status", "Progress", "Frames", "Started")
			tbl.alignRight(6, 7)
			for _, job := range jobs {
				tbl.addRow(
					job.ID,
					job.ProjectID,
					string(job.Format),
					job.Resolution,
					string(job.Status),
					strconv.Itoa(job.Progress)+"%",
					fmt.Sprintf("%d/%d", job.FramesRendered, job.FramesTotal),
					job.StartedAt.Local().Format("15:04:05"),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")

	cmd.AddCommand(newJobShowCommand(ctx))
	return cmd
}

func newJobShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one render job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := ctx.apiClient().GetJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, job)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Job:      %s\n", job.ID)
			fmt.Fprintf(out, "Project:  %s\n", job.ProjectID)
			fmt.Fprintf(out, "Output:   %s %s\n", job.Format, job.Resolution)
			fmt.Fprintf(out, "Status:   %s (%d%%)\n", job.Status, job.Progress)
			fmt.Fprintf(out, "Frames:   %d/%d\n", job.FramesRendered, job.FramesTotal)
			fmt.Fprintf(out, "Started:  %s\n", job.StartedAt.Local().Format(time.RFC3339))
			if job.EndedAt != nil {
				fmt.Fprintf(out, "Ended:    %s\n", job.EndedAt.Local().Format(time.RFC3339))
			}
			if job.OutputPath != "" {
				fmt.Fprintf(out, "Artifact: %s\n", job.OutputPath)
			}
			if job.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:    %s\n", job.ErrorMessage)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
