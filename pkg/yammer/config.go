package yammer

import (
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/yampost/internal/domain"
	"github.com/bft-labs/yampost/pkg/sender"
	"github.com/bft-labs/yampost/pkg/token"
)

// DefaultBaseURL is the Yammer service root.
const DefaultBaseURL = token.DefaultBaseURL

// DefaultHTTPTimeout bounds every request made by a client.
const DefaultHTTPTimeout = 30 * time.Second

// Config holds the settings of a Client.
type Config struct {
	// BaseURL is the service root. Defaults to DefaultBaseURL.
	BaseURL string

	// ApplicationKey and ApplicationSecret identify the registered app.
	ApplicationKey    string
	ApplicationSecret string

	// TokenTransport selects how the token travels with posts. Defaults to header.
	TokenTransport sender.TokenTransport

	// HTTPTimeout bounds each request. Defaults to DefaultHTTPTimeout.
	HTTPTimeout time.Duration

	// MessagesPerMinute paces SendMessage. Zero disables pacing.
	MessagesPerMinute int
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.TokenTransport == "" {
		c.TokenTransport = sender.TokenInHeader
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
}

// Validate checks the configuration. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.ApplicationKey == "" {
		return fmt.Errorf("%w: application key is required", domain.ErrInvalidConfig)
	}
	if c.ApplicationSecret == "" {
		return fmt.Errorf("%w: application secret is required", domain.ErrInvalidConfig)
	}
	if _, err := sender.ParseTokenTransport(string(c.TokenTransport)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if c.MessagesPerMinute < 0 {
		return fmt.Errorf("%w: messages per minute must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

func (c Config) credentials() domain.ClientCredentials {
	return domain.ClientCredentials{
		ApplicationKey:    c.ApplicationKey,
		ApplicationSecret: c.ApplicationSecret,
	}
}
