package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"scholarship-go/internal/services/scholarship"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the extraction prompt and JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("variant")
		variant, err := scholarship.ParseVariant(name)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"prompt": variant.Prompt(),
			"schema": variant.Schema(),
		})
	},
}

func init() {
	schemaCmd.Flags().String("variant", "extended", "schema variant: minimal or extended")
	rootCmd.AddCommand(schemaCmd)
}
