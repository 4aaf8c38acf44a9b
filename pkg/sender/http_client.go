package sender

import "github.com/bft-labs/yampost/internal/ports"

// HTTPClient abstracts HTTP request execution for testing and custom transports.
// The standard *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient
