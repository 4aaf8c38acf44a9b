package token

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/bft-labs/yampost/internal/domain"
)

// ErrTokenMissing is returned when the exchange response has no token value.
var ErrTokenMissing = errors.New("token: no access-token/token in response")

const (
	elemAccessToken = "access-token"
	elemToken       = "token"
)

type scanPhase int

const (
	seekAccessToken scanPhase = iota
	seekToken
	readToken
	finished
)

// parseTokenResponse reads the text of the first token element inside the
// first access-token element. The whole document must be well-formed.
func parseTokenResponse(r io.Reader) (domain.AccessToken, error) {
	dec := xml.NewDecoder(r)

	var (
		phase       = seekAccessToken
		depth       int
		accessDepth int
		tokenDepth  int
		sawRoot     bool
		text        strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &domain.ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			sawRoot = true
			switch {
			case phase == seekAccessToken && t.Name.Local == elemAccessToken:
				phase, accessDepth = seekToken, depth
			case phase == seekToken && t.Name.Local == elemToken:
				phase, tokenDepth = readToken, depth
			}
		case xml.CharData:
			if phase == readToken {
				text.Write(t)
			}
		case xml.EndElement:
			switch {
			case phase == readToken && depth == tokenDepth:
				phase = finished
			case phase == seekToken && depth == accessDepth:
				// Only the first access-token element counts.
				phase = finished
			}
			depth--
		}
	}

	if !sawRoot {
		return "", &domain.ParseError{Err: errors.New("document has no root element")}
	}
	value := strings.TrimSpace(text.String())
	if value == "" {
		return "", ErrTokenMissing
	}
	return domain.AccessToken(value), nil
}
