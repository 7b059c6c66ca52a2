package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"brochure/internal/theme"
	"brochure/internal/tui"
	viewtheme "brochure/internal/views/theme"
)

func newCSSCmd(flags *rootFlags) *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the custom properties of the active or given preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openStore(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeFn()

			root := store.Root()
			if preset != "" {
				active, _ := store.Active()
				root = theme.NewStyleRoot()
				if _, err := theme.Apply(cmd.Context(), root, active.Descriptor, preset); err != nil {
					return err
				}
			}
			_, err = io.WriteString(cmd.OutOrStdout(), root.CSS())
			return err
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "Render this preset without selecting it")
	return cmd
}

type presetEntry struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Dark   bool   `json:"dark"`
	Active bool   `json:"active"`
}

func newPresetsCmd(flags *rootFlags) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the presets of the theme descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openStore(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeFn()

			options := viewtheme.Options(store.Presets(), store.ActivePreset())
			if jsonOutput {
				entries := make([]presetEntry, 0, len(options))
				for _, option := range options {
					entries = append(entries, presetEntry{Name: option.Value, Label: option.Label, Dark: option.Dark, Active: option.Active})
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}
			for _, option := range options {
				marker := " "
				if option.Active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s\n", marker, option.Value, option.Label)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the colors of the active preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openStore(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeFn()

			active, _ := store.Active()
			out := cmd.OutOrStdout()
			if isTerminal(out) {
				_, err = io.WriteString(out, tui.Swatches(active))
			} else {
				_, err = io.WriteString(out, tui.PlainSwatches(active))
			}
			return err
		},
	}
}

func newUseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "use <preset>",
		Short: "Select and persist a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openStore(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := store.SetPreset(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "active preset: %s\n", store.ActivePreset())
			return nil
		},
	}
}

func newSystemCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "system on|off",
		Short:     "Follow or stop following the system color scheme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var enabled bool
			switch strings.ToLower(args[0]) {
			case "on", "true":
				enabled = true
			case "off", "false":
			default:
				return fmt.Errorf("system: want on or off, got %q", args[0])
			}

			store, closeFn, err := openStore(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := store.SetPreferSystem(cmd.Context(), enabled); err != nil {
				return err
			}
			state := "off"
			if store.PreferSystem() {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "follow system: %s\nactive preset: %s\n", state, store.ActivePreset())
			return nil
		},
	}
}

func newPickCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a preset interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return fmt.Errorf("pick needs an interactive terminal; use 'themectl use <preset>' instead")
			}
			store, closeFn, err := openStore(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer closeFn()
			return tui.Run(cmd.Context(), store)
		},
	}
}
