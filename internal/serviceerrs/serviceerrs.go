package serviceerrs

import (
	"errors"
	"fmt"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// ValidationError marks a request rejected before any upstream call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// UpstreamRequestError is a non-2xx answer from an upstream provider.
type UpstreamRequestError struct {
	Provider string
	Status   int
	Body     string
}

func (e *UpstreamRequestError) Error() string {
	return fmt.Sprintf("%s API error: HTTP %d: %s", e.Provider, e.Status, e.Body)
}

// UpstreamProtocolError is a response that is not JSON at all,
// e.g. an HTML error page. Snippet holds at most SnippetLimit chars.
type UpstreamProtocolError struct {
	Provider string
	Status   int
	Snippet  string
}

const SnippetLimit = 200

func (e *UpstreamProtocolError) Error() string {
	return fmt.Sprintf("%s API returned non-JSON response (HTTP %d): %s",
		e.Provider, e.Status, e.Snippet)
}

// Snippet truncates an upstream body for inclusion in error messages.
func Snippet(body string) string {
	if len(body) > SnippetLimit {
		return body[:SnippetLimit] + "..."
	}
	return body
}

type EmailDeliveryError struct {
	Status int
	Body   string
}

func (e *EmailDeliveryError) Error() string {
	return fmt.Sprintf("email API error %d: %s", e.Status, e.Body)
}

// NotConfiguredError signals a missing credential at the point of use.
type NotConfiguredError struct {
	Key string
}

func (e *NotConfiguredError) Error() string {
	return e.Key + " not configured"
}
