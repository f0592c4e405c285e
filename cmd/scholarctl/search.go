package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"scholarship-go/internal/app"
	"scholarship-go/internal/config"
	"scholarship-go/internal/logging"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search and extraction and print the JSON response",
	Long: `Search renders the query, sends it to the search provider, passes the
result URLs to the extraction provider and prints the same JSON document the
/search endpoint returns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		level, _ := cmd.Flags().GetString("log-level")
		logger, err := logging.New(level)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		application, err := app.NewBuilder(&cfg, app.WithLogger(logger)).Build()
		if err != nil {
			return err
		}

		base, filters := filtersFromFlags(cmd)
		resp, err := application.Service.Search(cmd.Context(), base, filters)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	addFilterFlags(searchCmd)
	searchCmd.Flags().String("log-level", "warn", "log level")
	rootCmd.AddCommand(searchCmd)
}
