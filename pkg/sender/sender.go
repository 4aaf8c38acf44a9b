package sender

import (
	"context"

	"github.com/bft-labs/yampost/internal/domain"
)

// Sender delivers a message authenticated with token.
type Sender interface {
	// Send posts msg. Returns nil only when the service accepted it.
	// Implementations do not retry.
	Send(ctx context.Context, token domain.AccessToken, msg domain.Message) error
}
