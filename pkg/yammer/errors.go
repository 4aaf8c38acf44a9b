package yammer

import "github.com/bft-labs/yampost/internal/domain"

// Re-exported domain types so callers need a single import.
type (
	ClientCredentials = domain.ClientCredentials
	UserCredentials   = domain.UserCredentials
	AccessToken       = domain.AccessToken
	Message           = domain.Message

	TransportError  = domain.TransportError
	AuthFlowError   = domain.AuthFlowError
	SendFailedError = domain.SendFailedError
	ParseError      = domain.ParseError
)

var (
	ErrEmptyBody     = domain.ErrEmptyBody
	ErrClosed        = domain.ErrClosed
	ErrInvalidConfig = domain.ErrInvalidConfig
)
