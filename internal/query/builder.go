package query

import (
	"net/url"
	"strings"
)

// Filters holds the optional refinements of a scholarship search. The field
// order here is the order in which clauses are rendered.
type Filters struct {
	GPA             string
	Field           string
	Ethnicity       string
	Gender          string
	Disability      bool
	Location        string
	GradeLevel      string
	FinancialNeed   bool
	Extracurricular string
}

func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Build appends one clause per set filter to base. Interpolated values are
// inserted verbatim.
func Build(base string, f Filters) string {
	var b strings.Builder
	b.WriteString(base)

	if f.GPA != "" {
		b.WriteString(" GPA " + f.GPA)
	}
	if f.Field != "" {
		b.WriteString(" " + f.Field + " major")
	}
	if f.Ethnicity != "" {
		b.WriteString(" " + f.Ethnicity + " students")
	}
	if f.Gender != "" {
		b.WriteString(" " + f.Gender + " students")
	}
	if f.Disability {
		b.WriteString(" students with disabilities")
	}
	if f.Location != "" {
		b.WriteString(" in " + f.Location)
	}
	if f.GradeLevel != "" {
		b.WriteString(" for " + f.GradeLevel + " students")
	}
	if f.FinancialNeed {
		b.WriteString(" need-based")
	}
	if f.Extracurricular != "" {
		b.WriteString(" with " + f.Extracurricular + " activities")
	}

	return b.String()
}

// FiltersFromValues reads filters from URL query parameters. The camelCase
// names sent by the web frontend are accepted for grade level and financial need.
func FiltersFromValues(values url.Values) Filters {
	return Filters{
		GPA:             values.Get("gpa"),
		Field:           values.Get("field"),
		Ethnicity:       values.Get("ethnicity"),
		Gender:          values.Get("gender"),
		Disability:      parseFlag(values.Get("disability")),
		Location:        values.Get("location"),
		GradeLevel:      firstNonEmpty(values.Get("grade_level"), values.Get("gradeLevel")),
		FinancialNeed:   parseFlag(firstNonEmpty(values.Get("financial_need"), values.Get("financialNeed"))),
		Extracurricular: values.Get("extracurricular"),
	}
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
