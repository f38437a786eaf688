package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/api"
	"clipforge/internal/media"
)

func newClipCommand(ctx *commandContext) *cobra.Command {
	clipCmd := &cobra.Command{
		Use:   "clip",
		Short: "Manage clips in a project",
	}

	clipCmd.AddCommand(newClipAddCommand(ctx))
	clipCmd.AddCommand(newClipUpdateCommand(ctx))

	return clipCmd
}

func newClipAddCommand(ctx *commandContext) *cobra.Command {
	var fileName string
	var startTime, endTime, duration, position float64
	var track int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a clip from the uploads directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.AddClipRequest{FileName: fileName}
			if cmd.Flags().Changed("start") {
				req.StartTime = &startTime
			}
			if cmd.Flags().Changed("end") {
				req.EndTime = &endTime
			}
			if cmd.Flags().Changed("duration") {
				req.Duration = &duration
			}
			if cmd.Flags().Changed("position") {
				req.Position = &position
			}
			if cmd.Flags().Changed("track") {
				req.Track = &track
			}

			clip, err := ctx.apiClient().AddClip(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, clip)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added clip %q (%s, %s on track %d)\n",
				media.DisplayName(clip.FileName), clip.ID, formatSeconds(clip.Duration), clip.Track)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fileName, "file", "f", "", "Source file name in the uploads directory")
	cmd.Flags().Float64Var(&startTime, "start", 0, "Trim start in seconds")
	cmd.Flags().Float64Var(&endTime, "end", 0, "Trim end in seconds")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Source duration hint in seconds")
	cmd.Flags().Float64Var(&position, "position", 0, "Timeline position in seconds")
	cmd.Flags().IntVar(&track, "track", 0, "Track number")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newClipUpdateCommand(ctx *commandContext) *cobra.Command {
	var startTime, endTime, position float64
	var track int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "update <project-id> <clip-id>",
		Short: "Update a clip's trim window or placement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req api.UpdateClipRequest
			if cmd.Flags().Changed("start") {
				req.StartTime = &startTime
			}
			if cmd.Flags().Changed("end") {
				req.EndTime = &endTime
			}
			if cmd.Flags().Changed("position") {
				req.Position = &position
			}
			if cmd.Flags().Changed("track") {
				req.Track = &track
			}

			clip, err := ctx.apiClient().UpdateClip(cmd.Context(), args[0], args[1], req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, clip)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated clip %s (%s - %s at %s on track %d)\n",
				clip.ID, formatSeconds(clip.StartTime), formatSeconds(clip.EndTime),
				formatSeconds(clip.Position), clip.Track)
			return nil
		},
	}

	cmd.Flags().Float64Var(&startTime, "start", 0, "Trim start in seconds")
	cmd.Flags().Float64Var(&endTime, "end", 0, "Trim end in seconds")
	cmd.Flags().Float64Var(&position, "position", 0, "Timeline position in seconds")
	cmd.Flags().IntVar(&track, "track", 0, "Track number")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
