package sender

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bft-labs/yampost/internal/domain"
	"github.com/bft-labs/yampost/pkg/log"
)

const (
	// DefaultBaseURL is the Yammer service root.
	DefaultBaseURL = "https://www.yammer.com"

	messagesEndpoint = "/api/v1/messages"
	formContentType  = "application/x-www-form-urlencoded; charset=UTF-8"
	maxErrorBody     = 1 << 10
)

// HTTPSender implements Sender against the REST messages endpoint.
type HTTPSender struct {
	client    HTTPClient
	logger    log.Logger
	baseURL   string
	transport TokenTransport
	limiter   *rate.Limiter
}

// Option configures an HTTPSender.
type Option func(*HTTPSender)

// WithBaseURL overrides the service root.
func WithBaseURL(baseURL string) Option {
	return func(s *HTTPSender) {
		if baseURL != "" {
			s.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithTokenTransport selects header or query token transport.
func WithTokenTransport(t TokenTransport) Option {
	return func(s *HTTPSender) {
		if t != "" {
			s.transport = t
		}
	}
}

// WithRateLimit paces posts to at most perMinute. Zero disables pacing.
func WithRateLimit(perMinute int) Option {
	return func(s *HTTPSender) {
		if perMinute <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
}

// NewHTTPSender creates a new HTTP sender.
func NewHTTPSender(client HTTPClient, logger log.Logger, opts ...Option) *HTTPSender {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	s := &HTTPSender{
		client:    client,
		logger:    logger,
		baseURL:   DefaultBaseURL,
		transport: TokenInHeader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send posts msg to the messages endpoint.
func (s *HTTPSender) Send(ctx context.Context, token domain.AccessToken, msg domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for send slot: %w", err)
		}
	}

	// Build request
	endpoint := s.baseURL + messagesEndpoint
	target := endpoint
	if s.transport == TokenInQuery {
		target += "?" + url.Values{"access_token": {token.Value()}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(msg.Form().Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("X-Request-Id", requestID)
	if s.transport == TokenInHeader {
		req.Header.Set("Authorization", "Bearer "+token.Value())
	}

	// Send request
	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return &domain.TransportError{Op: http.MethodPost, URL: endpoint, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	// Check response
	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		s.logger.Debug("message rejected",
			log.String("request_id", requestID),
			log.Int("status", resp.StatusCode))
		return &domain.SendFailedError{Status: resp.StatusCode, Body: string(respBody)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Info("message posted",
		log.String("request_id", requestID),
		log.String("group", msg.GroupID),
		log.Int("topics", len(msg.Topics)),
		log.Duration("took", time.Since(start)))
	return nil
}

// stripURL drops the *url.Error wrapper, whose message repeats the full URL
// and with it a query-string token.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
