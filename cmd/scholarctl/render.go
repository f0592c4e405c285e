package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scholarship-go/internal/query"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the search string built from a query and filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, filters := filtersFromFlags(cmd)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), query.Build(base, filters))
		return err
	},
}

func init() {
	addFilterFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}
