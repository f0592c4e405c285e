package model

import "encoding/json"

type Scholarship struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	ApplicationLink     string `json:"application_link"`
	ApplicationDeadline string `json:"application_deadline"`

	GPARequirement   string `json:"gpa_requirement"`
	FieldOfStudy     string `json:"field_of_study"`
	Ethnicity        string `json:"ethnicity"`
	Gender           string `json:"gender"`
	DisabilityStatus string `json:"disability_status"`
	Location         string `json:"location"`
	GradeLevel       string `json:"grade_level"`
	FinancialNeed    string `json:"financial_need"`
	Extracurricular  string `json:"extracurricular"`
}

type ExtractResult struct {
	Scholarships []Scholarship `json:"scholarships"`
}

// SearchResponse is the body of a successful /search call. Results holds the
// extraction provider's payload exactly as it was received.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results json.RawMessage `json:"results"`
}

// DecodeExtractResult reads scholarships from an extraction payload, either
// bare or wrapped in the provider's "data" envelope. It is used for reporting
// only; payloads are never rewritten from the decoded value.
func DecodeExtractResult(raw json.RawMessage) (ExtractResult, bool) {
	var wrapped struct {
		Data *ExtractResult `json:"data"`
		ExtractResult
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return ExtractResult{}, false
	}
	if wrapped.Data != nil {
		return *wrapped.Data, true
	}
	if wrapped.Scholarships != nil {
		return wrapped.ExtractResult, true
	}
	return ExtractResult{}, false
}
