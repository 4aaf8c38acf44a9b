package yammer

import (
	"github.com/bft-labs/yampost/internal/ports"
	"github.com/bft-labs/yampost/pkg/log"
	"github.com/bft-labs/yampost/pkg/loginform"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// Option configures optional behavior of a Client.
type Option func(*options)

type options struct {
	httpClient HTTPClient
	logger     Logger
	forms      loginform.Client
}

// WithHTTPClient sets the client used for API, token and login form requests.
// If it has a CloseIdleConnections method, Close calls it.
// If not provided, the Client owns a private transport.
//
// The login form flow needs to see redirects. An *http.Client contributes
// only its Transport to it; any other client must return 3xx responses
// as they are.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLoginFormClient replaces the HTML client that drives the login form.
// Only used by the interactive login strategy.
func WithLoginFormClient(forms loginform.Client) Option {
	return func(o *options) {
		o.forms = forms
	}
}
