package llm

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable means no credential is configured for the
// selected provider; the judge cannot run at all.
var ErrProviderUnavailable = errors.New("llm: no provider credential configured")

// ProviderError is any remote-judge failure: transport errors, timeouts,
// non-success HTTP statuses, and empty response envelopes. Status is 0
// when the request never completed. Detail carries the raw diagnostic
// (status body or transport error) for operator logs; it is never
// returned to end users.
type ProviderError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Detail)
}

// ParseError means the judge replied but its reply could not be
// interpreted as the rubric's score JSON, even after brace extraction.
// Raw keeps the full reply for diagnosis.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("llm: %s: raw reply: %s", e.Reason, e.Raw)
}
