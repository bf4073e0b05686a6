package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderNotFound indicates the provider is not supported
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidState indicates the OAuth state parameter is missing,
	// expired, tampered with, or already consumed
	ErrInvalidState = errors.New("invalid or expired state")

	// ErrTokenExchange indicates the provider rejected the authorization code
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrNoCredentials indicates no stored credentials exist for the session
	ErrNoCredentials = errors.New("no credentials found")

	// ErrUnauthorized indicates the provider rejected the access token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates provider rate limiting outlasted the retry budget
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream indicates an unexpected provider-side failure
	ErrUpstream = errors.New("upstream error")

	// ErrUpstreamTimeout indicates a provider call exceeded its deadline
	ErrUpstreamTimeout = errors.New("upstream timeout")
)

// UpstreamError carries the provider response that caused a failure.
// It wraps one of the sentinels above so callers can classify it with
// errors.Is while keeping the status and body excerpt for logs.
type UpstreamError struct {
	// Err is the sentinel classifying the failure.
	Err error

	// Status is the provider HTTP status code, if any.
	Status int

	// Body is an excerpt of the provider response body.
	Body string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%v: status %d: %s", e.Err, e.Status, e.Body)
	}
	return fmt.Sprintf("%v: status %d", e.Err, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
