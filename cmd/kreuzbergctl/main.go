package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kreuzbergctl",
		Short:         "Extract normalized text and metadata from documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newExtractCmd(), newBatchCmd(), newConfigCmd())
	return cmd
}
