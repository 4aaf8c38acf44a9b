package token

// Version information for the token module.
const (
	Version              = "1.0.0"
	MinCompatibleVersion = "1.0.0"
)
