package scholarship

import (
	"errors"
	"fmt"
)

var (
	ErrNoResults        = errors.New("no urls found in search results")
	ErrExtractionFailed = errors.New("extraction failed")
)

// CredentialError reports a provider credential missing from configuration.
type CredentialError struct {
	Name string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Name)
}
