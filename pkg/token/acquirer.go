package token

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bft-labs/yampost/internal/domain"
	"github.com/bft-labs/yampost/pkg/log"
	"github.com/bft-labs/yampost/pkg/loginform"
)

// DefaultBaseURL is the Yammer service root.
const DefaultBaseURL = "https://www.yammer.com"

const (
	authorizePath   = "/dialog/oauth"
	exchangeXMLPath = "/oauth2/access_token.xml"
	exchangePath    = "/oauth2/access_token"

	maxResponseBytes = 1 << 20
	maxErrorBody     = 1 << 10
)

// Acquirer exchanges authorization codes for access tokens.
type Acquirer struct {
	baseURL string
	creds   domain.ClientCredentials
	client  HTTPClient
	forms   loginform.Client
	logger  log.Logger
}

// NewAcquirer creates an Acquirer. forms is only needed by InteractiveLogin
// and may be nil otherwise.
func NewAcquirer(baseURL string, creds domain.ClientCredentials, client HTTPClient, forms loginform.Client, logger log.Logger) *Acquirer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Acquirer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		creds:   creds,
		client:  client,
		forms:   forms,
		logger:  logger,
	}
}

// Acquire obtains an access token using s.
func (a *Acquirer) Acquire(ctx context.Context, s Strategy) (domain.AccessToken, error) {
	if s == nil {
		return "", fmt.Errorf("%w: nil token strategy", domain.ErrInvalidConfig)
	}
	a.logger.Debug("acquiring access token", log.String("strategy", s.Name()))

	tok, err := s.acquire(ctx, a)
	if err != nil {
		return "", err
	}

	a.logger.Info("access token acquired",
		log.String("strategy", s.Name()),
		log.Any("token", tok))
	return tok, nil
}

// authorizeURL is the OAuth dialog carrying the login form.
func (a *Acquirer) authorizeURL() string {
	q := url.Values{"client_id": {a.creds.ApplicationKey}}
	return a.baseURL + authorizePath + "?" + q.Encode()
}

// exchange trades code for a token at the exchange endpoint under path.
func (a *Acquirer) exchange(ctx context.Context, path, code string) (domain.AccessToken, error) {
	q := url.Values{
		"client_id":     {a.creds.ApplicationKey},
		"client_secret": {a.creds.ApplicationSecret},
		"code":          {code},
	}
	endpoint := a.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	// The query carries the secret; errors only name the endpoint.
	resp, err := a.client.Do(req)
	if err != nil {
		return "", &domain.TransportError{Op: http.MethodGet, URL: endpoint, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &domain.TransportError{Op: "read " + http.MethodGet, URL: endpoint, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.AuthFlowError{
			Stage:  domain.StageExchange,
			Status: resp.StatusCode,
			Body:   truncate(body, maxErrorBody),
		}
	}

	tok, err := parseTokenResponse(bytes.NewReader(body))
	if err != nil {
		return "", &domain.AuthFlowError{Stage: domain.StageExchange, Err: err}
	}
	return tok, nil
}

// flowError classifies a login-form failure at stage.
func flowError(stage string, err error) error {
	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		return err
	}
	var statusErr *loginform.StatusError
	if errors.As(err, &statusErr) {
		return &domain.AuthFlowError{Stage: stage, Status: statusErr.Status, Body: statusErr.Body}
	}
	return &domain.AuthFlowError{Stage: stage, Err: err}
}

// stripURL drops the *url.Error wrapper, whose message repeats the full URL.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
