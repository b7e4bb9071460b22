package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackvity/kreuzberg-go"
)

func newExtractCmd() *cobra.Command {
	var (
		mimeType string
		useCache bool
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "extract <path>",
		Short: "extract text and metadata from a single document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := kreuzberg.DefaultExtractionConfig()
			cfg.UseCache = kreuzberg.BoolPtr(useCache)

			var (
				result *kreuzberg.ExtractionResult
				err    error
			)
			if mimeType != "" {
				data, readErr := os.ReadFile(args[0])
				if readErr != nil {
					return fmt.Errorf("reading %s: %w", args[0], readErr)
				}
				result, err = kreuzberg.ExtractBytesWithContext(cmd.Context(), data, mimeType, cfg)
			} else {
				result, err = kreuzberg.ExtractFileWithContext(cmd.Context(), args[0], cfg)
			}
			if err != nil {
				return err
			}
			return printResult(cmd, result, pretty)
		},
	}

	cmd.Flags().StringVar(&mimeType, "mime-type", "", "override MIME-type detection and read the file as raw bytes")
	cmd.Flags().BoolVar(&useCache, "cache", true, "serve/store the result in the on-disk extraction cache")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty-print the JSON result")

	return cmd
}

func printResult(cmd *cobra.Command, result *kreuzberg.ExtractionResult, pretty bool) error {
	var (
		payload []byte
		err     error
	)
	if pretty {
		payload, err = json.MarshalIndent(result, "", "  ")
	} else {
		payload, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return nil
}
