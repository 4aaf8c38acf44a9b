package token

import "github.com/bft-labs/yampost/internal/ports"

// HTTPClient abstracts HTTP request execution.
// The standard *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient
