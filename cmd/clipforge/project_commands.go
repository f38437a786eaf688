package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"clipforge/internal/api"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage video projects",
	}

	projectCmd.AddCommand(newProjectCreateCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectTimelineCommand(ctx))

	return projectCmd
}

func newProjectCreateCommand(ctx *commandContext) *cobra.Command {
	var req api.CreateProjectRequest
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := ctx.apiClient().CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, project)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s, %s/%s)\n",
				project.ID, project.Name, project.Settings.Format, project.Settings.Quality)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Project name")
	cmd.Flags().StringVar(&req.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&req.Format, "format", "", "Output format (mp4, avi, mov, webm)")
	cmd.Flags().StringVar(&req.Quality, "quality", "", "Quality tier (low, medium, high)")
	cmd.Flags().IntVar(&req.FPS, "fps", 0, "Timeline frame rate")
	cmd.Flags().IntVar(&req.Width, "width", 0, "Output width in pixels")
	cmd.Flags().IntVar(&req.Height, "height", 0, "Output height in pixels")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := ctx.apiClient().ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, projects)
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects")
				return nil
			}
			tbl := newTable("ID", "Name", "Format", "Quality", "Clips", "Duration", "Created")
			tbl.alignRight(5, 6)
			for _, project := range projects {
				tbl.addRow(
					project.ID,
					project.Name,
					string(project.Settings.Format),
					string(project.Settings.Quality),
					strconv.Itoa(len(project.Clips)),
					formatSeconds(project.Timeline.Duration),
					project.CreatedAt.Local().Format("2006-01-02 15:04"),
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project and its clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := ctx.apiClient().GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, project)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project:  %s\n", project.Name)
			fmt.Fprintf(out, "ID:       %s\n", project.ID)
			if project.Description != "" {
				fmt.Fprintf(out, "About:    %s\n", project.Description)
			}
			fmt.Fprintf(out, "Output:   %s / %s (%s @ %s)\n",
				project.Settings.Format, project.Settings.Quality,
				project.Settings.Codec, project.Settings.Bitrate)
			fmt.Fprintf(out, "Timeline: %s at %d fps, %dx%d\n",
				formatSeconds(project.Timeline.Duration), project.Timeline.FPS,
				project.Timeline.Resolution.Width, project.Timeline.Resolution.Height)
			if len(project.Clips) == 0 {
				fmt.Fprintln(out, "No clips")
				return nil
			}
			tbl := newTable("Clip", "File", "Track", "Position", "Duration", "Effects")
			tbl.alignRight(3, 4, 5, 6)
			for _, clip := range project.Clips {
				tbl.addRow(
					clip.ID,
					clip.FileName,
					strconv.Itoa(clip.Track),
					formatSeconds(clip.Position),
					formatSeconds(clip.Duration),
					strconv.Itoa(clip.EnabledEffects()),
				)
			}
			fmt.Fprintln(out, tbl.render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newProjectTimelineCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "timeline <project-id>",
		Short: "Show the derived timeline for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeline, err := ctx.apiClient().Timeline(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, timeline)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Duration: %s (%d frames at %d fps)\n",
				formatSeconds(timeline.Duration), timeline.Frames, timeline.FPS)
			for _, marker := range timeline.Markers {
				fmt.Fprintf(out, "Marker:   %s @ %s\n", marker.Label, formatSeconds(marker.Position))
			}
			for _, track := range timeline.Tracks {
				fmt.Fprintf(out, "Track %d:\n", track.Track)
				for _, clip := range track.Clips {
					fmt.Fprintf(out, "  %s  %s - %s  %s (%d effects)\n",
						clip.FileName,
						formatSeconds(clip.Start), formatSeconds(clip.End),
						clip.ID, clip.EnabledEffects)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func formatSeconds(value float64) string {
	d := time.Duration(value * float64(time.Second))
	return d.Truncate(10 * time.Millisecond).String()
}
