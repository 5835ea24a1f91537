package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newtron-network/wancost/pkg/cli"
	"github.com/newtron-network/wancost/pkg/settings"
)

func newSettingsCmd(g *globalOptions) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage persistent settings",
		Long: `Manage persistent settings stored in ~/.wancost/settings.yaml.

Settings provide defaults for flags:
  - controller:           Used when --controller is not specified
  - audit_log:            Used when --audit-log is not specified
  - timeout:              Used when --timeout is not specified
  - insecure_skip_verify: Skip TLS verification without --insecure

Examples:
  wancost settings show
  wancost settings set controller https://api.example.net
  wancost settings set timeout 30s
  wancost settings clear`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.settingsFile()
			s, err := settings.LoadFrom(path)
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Settings file: %s\n\n", path)

			t := cli.NewTable(out, "SETTING", "VALUE")
			for _, key := range settings.Keys() {
				value, _ := s.Get(key)
				if value == "" {
					value = "(not set)"
				}
				t.Row(key, value)
			}
			t.Flush()
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Set a setting value",
		Long: `Set a persistent setting value.

Available settings:
  controller           - Controller API base URL
  audit_log            - Audit log file path
  timeout              - Per-call API timeout (e.g., 30s, 2m)
  insecure_skip_verify - true or false

Examples:
  wancost settings set controller https://api.example.net
  wancost settings set audit_log /var/log/wancost/audit.log`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			path := g.settingsFile()

			s, err := settings.LoadFrom(path)
			if err != nil {
				s = &settings.Settings{}
			}
			if err := s.Set(key, value); err != nil {
				return err
			}
			if err := s.SaveTo(path); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s set to: %s\n", key, value)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <setting>",
		Short: "Get a setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.LoadFrom(g.settingsFile())
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			value, err := s.Get(args[0])
			if err != nil {
				return err
			}
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.settingsFile()
			s, err := settings.LoadFrom(path)
			if err != nil {
				s = &settings.Settings{}
			}
			s.Clear()
			if err := s.SaveTo(path); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All settings cleared.")
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show settings file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), g.settingsFile())
		},
	}

	settingsCmd.AddCommand(showCmd, setCmd, getCmd, clearCmd, pathCmd)
	return settingsCmd
}
