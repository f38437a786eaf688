package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipforge/internal/api"
	"clipforge/internal/effects"
	"clipforge/internal/media"
)

func newEffectCommand(ctx *commandContext) *cobra.Command {
	effectCmd := &cobra.Command{
		Use:   "effect",
		Short: "Manage effects on clips",
	}

	effectCmd.AddCommand(newEffectAddCommand(ctx))
	effectCmd.AddCommand(newEffectUpdateCommand(ctx))

	return effectCmd
}

func newEffectAddCommand(ctx *commandContext) *cobra.Command {
	var effectType, effectName, paramsJSON string
	var disabled bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "add <project-id> <clip-id>",
		Short: "Attach an effect to a clip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.AddEffectRequest{Type: effectType, Name: effectName}
			if paramsJSON != "" {
				if err := json.Unmarshal([]byte(paramsJSON), &req.Parameters); err != nil {
					return fmt.Errorf("parse --params: %w", err)
				}
			}
			if disabled {
				enabled := false
				req.Enabled = &enabled
			}

			effect, err := ctx.apiClient().AddEffect(cmd.Context(), args[0], args[1], req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, effect)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s effect %q (%s, enabled: %s)\n",
				effect.Type, effect.Name, effect.ID, yesNo(effect.Enabled))
			return nil
		},
	}

	cmd.Flags().StringVarP(&effectType, "type", "t", "", "Effect type (filter, transition, text, audio)")
	cmd.Flags().StringVarP(&effectName, "name", "n", "", "Effect name from the catalog")
	cmd.Flags().StringVar(&paramsJSON, "params", "", "Effect parameters as a JSON object")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Attach the effect disabled")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEffectUpdateCommand(ctx *commandContext) *cobra.Command {
	var paramsJSON string
	var enable, disable bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "update <project-id> <clip-id> <effect-id>",
		Short: "Update an effect's parameters or toggle it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return fmt.Errorf("--enable and --disable are mutually exclusive")
			}
			var req api.UpdateEffectRequest
			if paramsJSON != "" {
				if err := json.Unmarshal([]byte(paramsJSON), &req.Parameters); err != nil {
					return fmt.Errorf("parse --params: %w", err)
				}
			}
			if enable || disable {
				value := enable
				req.Enabled = &value
			}

			effect, err := ctx.apiClient().UpdateEffect(cmd.Context(), args[0], args[1], args[2], req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, effect)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s effect %q (enabled: %s)\n",
				effect.Type, effect.Name, yesNo(effect.Enabled))
			return nil
		},
	}

	cmd.Flags().StringVar(&paramsJSON, "params", "", "Parameter overrides as a JSON object")
	cmd.Flags().BoolVar(&enable, "enable", false, "Enable the effect")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disable the effect")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newEffectsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "effects",
		Short:       "List the available effect catalog",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The catalog is compiled in; no daemon round trip needed.
			catalog := effects.List()
			if jsonOut {
				return writeJSON(cmd, catalog)
			}
			tbl := newTable("Type", "Name", "Description", "Parameters")
			for _, effectType := range []media.EffectType{media.EffectFilter, media.EffectTransition, media.EffectText, media.EffectAudio} {
				for _, definition := range catalog[effectType] {
					names := make([]string, 0, len(definition.Parameters))
					for _, schema := range definition.Parameters {
						names = append(names, schema.Name)
					}
					tbl.addRow(string(effectType), definition.Name, definition.Description, strings.Join(names, ", "))
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
