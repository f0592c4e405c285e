package scholarship

import (
	"fmt"

	"scholarship-go/internal/schema"
)

type Variant string

const (
	VariantMinimal  Variant = "minimal"
	VariantExtended Variant = "extended"
)

func ParseVariant(value string) (Variant, error) {
	switch Variant(value) {
	case VariantMinimal, VariantExtended:
		return Variant(value), nil
	case "":
		return VariantExtended, nil
	default:
		return "", fmt.Errorf("unknown schema variant %q", value)
	}
}

const basePrompt = "Extract the name , description and application link, application deadline of the scholarships from the page."

const eligibilityPrompt = " Also extract the eligibility criteria when stated: GPA requirement, field of study, ethnicity, gender," +
	" disability status, location, grade level, financial need and extracurricular activities."

var baseFields = []schema.Field{
	{Name: "name", Type: schema.String, Description: "The name of the scholarship"},
	{Name: "description", Type: schema.String, Description: "The description of the scholarship"},
	{Name: "application_link", Type: schema.String, Description: "The link to the application for the scholarship"},
	{Name: "application_deadline", Type: schema.String, Description: "The deadline to apply for the scholarship"},
}

var eligibilityFields = []schema.Field{
	{Name: "gpa_requirement", Type: schema.String, Description: "The minimum GPA required", Optional: true},
	{Name: "field_of_study", Type: schema.String, Description: "The field of study or major the scholarship is for", Optional: true},
	{Name: "ethnicity", Type: schema.String, Description: "The ethnicity the scholarship is restricted to", Optional: true},
	{Name: "gender", Type: schema.String, Description: "The gender the scholarship is restricted to", Optional: true},
	{Name: "disability_status", Type: schema.String, Description: "Whether the scholarship is for students with disabilities", Optional: true},
	{Name: "location", Type: schema.String, Description: "The location or region the scholarship is available in", Optional: true},
	{Name: "grade_level", Type: schema.String, Description: "The grade level the scholarship is for", Optional: true},
	{Name: "financial_need", Type: schema.String, Description: "Whether the scholarship is need-based", Optional: true},
	{Name: "extracurricular", Type: schema.String, Description: "Extracurricular activities the scholarship requires", Optional: true},
}

// Prompt returns the extraction instruction for the variant.
func (v Variant) Prompt() string {
	if v == VariantMinimal {
		return basePrompt
	}
	return basePrompt + eligibilityPrompt
}

// Schema returns the JSON Schema of the extraction result for the variant.
func (v Variant) Schema() map[string]any {
	fields := append([]schema.Field{}, baseFields...)
	if v != VariantMinimal {
		fields = append(fields, eligibilityFields...)
	}
	return schema.ArrayOf("scholarships", "Array of scholarship names found on the page", schema.Object{Fields: fields})
}
