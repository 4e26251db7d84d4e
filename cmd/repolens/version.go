package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repolens/internal/version"
)

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == string(FormatJSON) {
				return write(cmd, version.Get(), format)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "human", "Output format (json, human)")
	return cmd
}
