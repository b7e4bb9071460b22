package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackvity/kreuzberg-go"
)

func newBatchCmd() *cobra.Command {
	var useCache bool

	cmd := &cobra.Command{
		Use:   "batch <path> [path...]",
		Short: "extract text and metadata from multiple documents concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := kreuzberg.DefaultExtractionConfig()
			cfg.UseCache = kreuzberg.BoolPtr(useCache)

			results, err := kreuzberg.BatchExtractFilesSync(args, cfg)
			if err != nil {
				return err
			}

			payload, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling results: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useCache, "cache", true, "serve/store results in the on-disk extraction cache")
	return cmd
}
