package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackvity/kreuzberg-go/internal/cfgfile"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "show the discovered configuration file and effective runtime settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cfgfile.Discover(".")
			if err != nil {
				return fmt.Errorf("discovering configuration file: %w", err)
			}

			runtimeCfg, err := cfgfile.LoadRuntimeConfig()
			if err != nil {
				return fmt.Errorf("loading runtime configuration: %w", err)
			}

			out := struct {
				ConfigFile string                `json:"config_file,omitempty"`
				Runtime    cfgfile.RuntimeConfig `json:"runtime"`
			}{ConfigFile: path, Runtime: runtimeCfg}

			payload, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
	return cmd
}
