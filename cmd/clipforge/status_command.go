package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon health and queue activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ctx.apiClient()
			health, err := c.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("daemon not reachable: %w (start it with `clipforge serve`)", err)
			}
			jobs, err := c.ListJobs(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"health": health,
					"jobs":   jobs,
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			printSection(out, "ClipForge Daemon", colorize)
			uptime := (time.Duration(health.UptimeS) * time.Second).String()
			printStatus(out, "Daemon", statusOK, fmt.Sprintf("%s, up %s", health.Status, uptime), colorize)
			printStatus(out, "Version", statusInfo, health.Version, colorize)

			active := 0
			failed := 0
			for _, job := range jobs {
				switch {
				case !job.Terminal():
					active++
				case job.ErrorMessage != "":
					failed++
				}
			}
			kind := statusInfo
			if active > 0 {
				kind = statusOK
			}
			printStatus(out, "Render queue", kind,
				fmt.Sprintf("%d total, %d active, %d failed", len(jobs), active, failed), colorize)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
