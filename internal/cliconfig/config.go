package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/yampost/pkg/sender"
	"github.com/bft-labs/yampost/pkg/token"
	"github.com/bft-labs/yampost/pkg/yammer"
)

// DefaultBaseURL is the Yammer service root.
const DefaultBaseURL = yammer.DefaultBaseURL

// Config holds CLI configuration for yampost.
type Config struct {
	BaseURL string

	ApplicationKey        string
	ApplicationSecret     string
	ApplicationSecretFile string

	// Username and Password drive the login form flow.
	Username     string
	Password     string
	PasswordFile string

	// AccessCode skips the login form. Takes precedence over Username.
	AccessCode     string
	AccessCodeFile string

	TokenTransport    string
	HTTPTimeout       time.Duration
	MessagesPerMinute int
	LogLevel          string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		TokenTransport: string(sender.TokenInHeader),
		HTTPTimeout:    yammer.DefaultHTTPTimeout,
		LogLevel:       "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.ApplicationKey == "" {
		return fmt.Errorf("application-key is required")
	}
	if c.ApplicationSecret == "" {
		return fmt.Errorf("application-secret is required")
	}

	if c.AccessCode == "" {
		if c.Username == "" || c.Password == "" {
			return fmt.Errorf("access-code or username and password are required")
		}
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}

	// Ensure no trailing slash
	if len(c.BaseURL) > 0 && c.BaseURL[len(c.BaseURL)-1] == '/' {
		c.BaseURL = c.BaseURL[:len(c.BaseURL)-1]
	}

	if _, err := sender.ParseTokenTransport(c.TokenTransport); err != nil {
		return err
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MessagesPerMinute < 0 {
		return fmt.Errorf("messages-per-minute must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}

	return nil
}

// Strategy returns the token strategy the configuration asks for.
// An access code wins over username and password.
func (c Config) Strategy() token.Strategy {
	if c.AccessCode != "" {
		return token.DirectCode{Code: c.AccessCode}
	}
	return token.InteractiveLogin{
		Credentials: yammer.UserCredentials{Username: c.Username, Password: c.Password},
	}
}

// LibraryConfig converts to the client library configuration.
func (c Config) LibraryConfig() yammer.Config {
	return yammer.Config{
		BaseURL:           c.BaseURL,
		ApplicationKey:    c.ApplicationKey,
		ApplicationSecret: c.ApplicationSecret,
		TokenTransport:    sender.TokenTransport(c.TokenTransport),
		HTTPTimeout:       c.HTTPTimeout,
		MessagesPerMinute: c.MessagesPerMinute,
	}
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	for _, s := range []*string{&c.ApplicationSecret, &c.Password, &c.AccessCode} {
		if *s != "" {
			*s = "*****"
		}
	}
	return c
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int value if present and flag not changed. Zero is a
// value, so a higher layer can switch a setting off.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setSecret applies one layer's inline value and file path of a secret as a
// unit: whichever the layer sets replaces both from lower layers, unless the
// other one was given as a flag. Inline wins when a layer sets both.
func (s *configSetter) setSecret(flag, value, path string, dst, dstFile *string) {
	fileFlag := flag + "-file"
	switch {
	case value != "" && !s.changed[flag]:
		*dst = value
		if !s.changed[fileFlag] {
			*dstFile = ""
		}
	case path != "" && !s.changed[fileFlag]:
		*dstFile = path
		if !s.changed[flag] {
			*dst = ""
		}
	}
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings. Zero is kept.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i < 0 {
		return fmt.Errorf("parse %s: must not be negative", flag)
	}
	*dst = i
	return nil
}
