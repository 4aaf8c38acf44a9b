package sender

import "fmt"

// TokenTransport selects how the bearer token travels with a post.
type TokenTransport string

const (
	// TokenInHeader sends "Authorization: Bearer <token>".
	TokenInHeader TokenTransport = "header"

	// TokenInQuery appends "?access_token=<token>" to the messages URL.
	TokenInQuery TokenTransport = "query"
)

// ParseTokenTransport accepts "header" or "query". Empty means header.
func ParseTokenTransport(s string) (TokenTransport, error) {
	switch TokenTransport(s) {
	case "", TokenInHeader:
		return TokenInHeader, nil
	case TokenInQuery:
		return TokenInQuery, nil
	default:
		return "", fmt.Errorf("unknown token transport %q (want header or query)", s)
	}
}
