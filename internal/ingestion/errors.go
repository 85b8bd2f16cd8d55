package ingestion

import "fmt"

// ExtractError represents a failure to read text out of a source document
type ExtractError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract error: %s: %s", e.Path, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
