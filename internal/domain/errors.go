package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the public API. Check with errors.Is.
var (
	// ErrEmptyBody is returned when a message has no body.
	ErrEmptyBody = errors.New("yampost: message body is required")

	// ErrClosed is returned when a closed client is used.
	ErrClosed = errors.New("yampost: client closed")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("yampost: invalid configuration")
)

// TransportError reports a network-level failure. It is never retried.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("yampost: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Auth flow stages, reported in AuthFlowError.Stage.
const (
	StageAuthorize = "authorize"
	StageLogin     = "login"
	StageConsent   = "consent"
	StageCode      = "code"
	StageExchange  = "exchange"
)

// AuthFlowError reports that an access token could not be acquired.
// Status and Body are set when the failure came from an HTTP response.
type AuthFlowError struct {
	Stage  string
	Status int
	Body   string
	Err    error
}

func (e *AuthFlowError) Error() string {
	msg := "yampost: auth flow failed at " + e.Stage
	if e.Status != 0 {
		msg += fmt.Sprintf(": server returned %d: %s", e.Status, e.Body)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthFlowError) Unwrap() error { return e.Err }

// SendFailedError reports a message post answered with a status other than 201.
type SendFailedError struct {
	Status int
	Body   string
}

func (e *SendFailedError) Error() string {
	return fmt.Sprintf("yampost: failed to post message: server returned %d: %s", e.Status, e.Body)
}

// ParseError reports a malformed token-exchange document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "yampost: parse token response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
