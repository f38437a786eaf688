package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported formats and quality tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := ctx.apiClient().Formats(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, formats)
			}
			out := cmd.OutOrStdout()
			output := make([]string, 0, len(formats.Output))
			for _, format := range formats.Output {
				output = append(output, string(format))
			}
			input := make([]string, 0, len(formats.Input))
			for _, format := range formats.Input {
				input = append(input, string(format))
			}
			fmt.Fprintf(out, "Output formats: %s\n", strings.Join(output, ", "))
			fmt.Fprintf(out, "Input formats:  %s\n", strings.Join(input, ", "))
			tbl := newTable("Quality", "Codec", "Bitrate")
			tbl.alignRight(3)
			for _, quality := range formats.Qualities {
				tbl.addRow(string(quality.Quality), quality.Codec, quality.Bitrate)
			}
			fmt.Fprintln(out, tbl.render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
