package domain

import "fmt"

// SourceFetchError covers transport failures, timeouts and non-2xx statuses.
type SourceFetchError struct {
	Source     SourceID
	StatusCode int
	Err        error
}

func (e *SourceFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Error while getting data from '%s': status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("Error while getting data from '%s': %v", e.Source, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

// SourceParseError covers unexpected payload shapes. Symbol is empty when the
// whole payload was rejected.
type SourceParseError struct {
	Source SourceID
	Symbol string
	Err    error
}

func (e *SourceParseError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("Error while processing %s data: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("Error while processing %s data for %s: %v", e.Source, e.Symbol, e.Err)
}

func (e *SourceParseError) Unwrap() error {
	return e.Err
}
