package yammer

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/bft-labs/yampost/internal/domain"
	"github.com/bft-labs/yampost/internal/ports"
	"github.com/bft-labs/yampost/pkg/log"
	"github.com/bft-labs/yampost/pkg/loginform"
	"github.com/bft-labs/yampost/pkg/sender"
	"github.com/bft-labs/yampost/pkg/token"
)

// Client posts messages with a token acquired at construction.
type Client struct {
	token  domain.AccessToken
	sender sender.Sender
	logger log.Logger

	idle      ports.IdleCloser
	closeOnce sync.Once
	closed    atomic.Bool
}

// New creates a Client and acquires its access token with strategy.
// When token acquisition fails the transport is released and no Client is
// returned.
func New(ctx context.Context, cfg Config, strategy token.Strategy, opts ...Option) (_ *Client, err error) {
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	httpClient, roundTripper, idle := newTransport(o.httpClient, cfg)
	c := &Client{
		logger: logger,
		idle:   idle,
	}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	forms := o.forms
	if forms == nil {
		forms, err = loginform.New(roundTripper, cfg.HTTPTimeout, logger,
			loginform.WithUserAgent("yampost/"+Version))
		if err != nil {
			return nil, fmt.Errorf("create login form client: %w", err)
		}
	}

	acq := token.NewAcquirer(cfg.BaseURL, cfg.credentials(), httpClient, forms, logger)
	tok, err := acq.Acquire(ctx, strategy)
	if err != nil {
		return nil, err
	}
	c.token = tok

	c.sender = sender.NewHTTPSender(httpClient, logger,
		sender.WithBaseURL(cfg.BaseURL),
		sender.WithTokenTransport(cfg.TokenTransport),
		sender.WithRateLimit(cfg.MessagesPerMinute),
	)
	return c, nil
}

// NewWithLogin creates a Client by logging in through the OAuth login form.
func NewWithLogin(ctx context.Context, cfg Config, username, password string, opts ...Option) (*Client, error) {
	return New(ctx, cfg, token.InteractiveLogin{
		Credentials: domain.UserCredentials{Username: username, Password: password},
	}, opts...)
}

// NewWithAccessCode creates a Client by exchanging an access code.
func NewWithAccessCode(ctx context.Context, cfg Config, accessCode string, opts ...Option) (*Client, error) {
	return New(ctx, cfg, token.DirectCode{Code: accessCode}, opts...)
}

// SendMessage posts message, optionally into group, tagged with topics in order.
// An empty group posts to the default feed.
func (c *Client) SendMessage(ctx context.Context, group, message string, topics ...string) error {
	return c.Send(ctx, domain.Message{Body: message, GroupID: group, Topics: topics})
}

// Send posts msg.
func (c *Client) Send(ctx context.Context, msg domain.Message) error {
	if c.closed.Load() {
		return domain.ErrClosed
	}
	return c.sender.Send(ctx, c.token, msg)
}

// Token returns the access token held by the client.
func (c *Client) Token() AccessToken {
	return c.token
}

// Close releases the client's pooled connections. Only the first call has
// an effect; later calls return nil.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.idle != nil {
			c.idle.CloseIdleConnections()
		}
		c.logger.Debug("client closed")
	})
	return nil
}

// newTransport returns the HTTP client for API calls, the round tripper the
// login form client shares, and what Close releases.
func newTransport(custom HTTPClient, cfg Config) (HTTPClient, http.RoundTripper, ports.IdleCloser) {
	if custom != nil {
		var rt http.RoundTripper = doerTransport{custom}
		if hc, ok := custom.(*http.Client); ok {
			rt = hc.Transport
		}
		idle, _ := custom.(ports.IdleCloser)
		return custom, rt, idle
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	return &http.Client{Transport: tr, Timeout: cfg.HTTPTimeout}, tr, tr
}

// doerTransport sends login form requests through a caller's HTTPClient.
// The login form client keeps its own cookie jar and redirect policy on top,
// so the caller's client should hand redirects back instead of following them.
type doerTransport struct {
	client HTTPClient
}

func (t doerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.client.Do(req)
}
