// Package yampost posts messages to Yammer from Go programs.
//
// Example usage:
//
//	cfg := yampost.Config{
//	    ApplicationKey:    "key",
//	    ApplicationSecret: "secret",
//	}
//	client, err := yampost.NewWithAccessCode(ctx, cfg, code)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.SendMessage(ctx, "", "hello from Go", "golang"); err != nil {
//	    log.Fatal(err)
//	}
//
// The full API lives in github.com/bft-labs/yampost/pkg/yammer.
package yampost

import (
	"context"

	"github.com/bft-labs/yampost/pkg/yammer"
)

// Config holds the settings of a Client.
type Config = yammer.Config

// Client posts messages with a token acquired at construction.
type Client = yammer.Client

// Option configures optional behavior of a Client.
type Option = yammer.Option

// NewWithLogin creates a Client by logging in with username and password.
func NewWithLogin(ctx context.Context, cfg Config, username, password string, opts ...Option) (*Client, error) {
	return yammer.NewWithLogin(ctx, cfg, username, password, opts...)
}

// NewWithAccessCode creates a Client by exchanging an access code.
func NewWithAccessCode(ctx context.Context, cfg Config, accessCode string, opts ...Option) (*Client, error) {
	return yammer.NewWithAccessCode(ctx, cfg, accessCode, opts...)
}

// DefaultBaseURL is the Yammer service root.
const DefaultBaseURL = yammer.DefaultBaseURL
