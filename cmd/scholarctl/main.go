// Command scholarctl runs the scholarship search pipeline from the command
// line without starting the HTTP server.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"scholarship-go/internal/query"
)

var rootCmd = &cobra.Command{
	Use:   "scholarctl",
	Short: "Search the web for scholarships from the command line",
	Long: `scholarctl renders scholarship search queries, runs the search and
extraction pipeline once, and prints the extraction schema sent to the
provider. Configuration is read from the environment and .env, the same way
the server reads it.`,
	SilenceUsage: true,
}

// addFilterFlags registers the query and filter flags shared by render and search.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "scholarships", "base search query")
	cmd.Flags().String("gpa", "", "GPA")
	cmd.Flags().String("field", "", "field of study")
	cmd.Flags().String("ethnicity", "", "ethnicity")
	cmd.Flags().String("gender", "", "gender")
	cmd.Flags().Bool("disability", false, "students with disabilities")
	cmd.Flags().String("location", "", "location")
	cmd.Flags().String("grade-level", "", "grade level (e.g. undergraduate)")
	cmd.Flags().Bool("financial-need", false, "need-based only")
	cmd.Flags().String("extracurricular", "", "extracurricular activities")
}

func filtersFromFlags(cmd *cobra.Command) (string, query.Filters) {
	flags := cmd.Flags()
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	flag := func(name string) bool {
		v, _ := flags.GetBool(name)
		return v
	}

	return str("query"), query.Filters{
		GPA:             str("gpa"),
		Field:           str("field"),
		Ethnicity:       str("ethnicity"),
		Gender:          str("gender"),
		Disability:      flag("disability"),
		Location:        str("location"),
		GradeLevel:      str("grade-level"),
		FinancialNeed:   flag("financial-need"),
		Extracurricular: str("extracurricular"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
