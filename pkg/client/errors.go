package client

import (
	"fmt"
)

// ErrorKind categorizes an upstream provider failure.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindInvalidCredentials
	ErrKindNotFound
	ErrKindRateLimited
	ErrKindTimeout
	ErrKindParse
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindInvalidCredentials:
		return "invalid_credentials"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindRateLimited:
		return "rate_limited"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindParse:
		return "parse_failure"
	default:
		return "unknown"
	}
}

// UpstreamError is a failure from a third-party provider, mapped to a stable
// kind and a user-presentable message.
type UpstreamError struct {
	Kind     ErrorKind
	Provider string
	Status   int
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// statusError builds an UpstreamError for a non-2xx provider response,
// with the per-status messages users see.
func statusError(provider string, status int) *UpstreamError {
	kind := ErrKindUnknown
	message := "Unable to fetch data. Please try again later."

	switch status {
	case 401:
		kind = ErrKindInvalidCredentials
		message = "Invalid API key. Please check the configured credentials."
	case 404:
		kind = ErrKindNotFound
		message = "Location not found. Please try a different city name."
	case 429:
		kind = ErrKindRateLimited
		message = "API rate limit exceeded. Please try again later."
	}

	return &UpstreamError{
		Kind:     kind,
		Provider: provider,
		Status:   status,
		Message:  message,
	}
}

func timeoutError(provider string, err error) *UpstreamError {
	return &UpstreamError{
		Kind:     ErrKindTimeout,
		Provider: provider,
		Message:  "Request timeout. Please check your internet connection.",
		Err:      err,
	}
}

func parseError(provider string, err error) *UpstreamError {
	return &UpstreamError{
		Kind:     ErrKindParse,
		Provider: provider,
		Message:  "Provider returned a response that could not be parsed.",
		Err:      err,
	}
}
