package domain

import "time"

// SourceDescriptor is the fetch target of one source for one run.
type SourceDescriptor struct {
	ID    SourceID
	Label string
	URL   string
}

type RawResponse struct {
	Source     SourceID
	Body       []byte
	StatusCode int
	Err        error
}

// SourceAdapter turns one source's raw payload into quote fragments. Malformed
// entries are reported in the error slice and skipped; they never abort the
// rest of the payload.
type SourceAdapter interface {
	ID() SourceID
	Label() string
	Side() QuoteSideEnum
	Endpoint(now time.Time) string
	Parse(body []byte) ([]QuoteFragment, []error)
}
