package loginform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"

	"github.com/bft-labs/yampost/internal/domain"
	"github.com/bft-labs/yampost/pkg/log"
)

const (
	// DefaultStopMarker ends a redirect chain at the OAuth callback.
	DefaultStopMarker = "code="

	maxRedirects = 10
	maxPageBytes = 4 << 20
	maxErrorBody = 1 << 10
)

// Client drives an HTML login conversation.
type Client interface {
	// Fetch loads url and parses its forms and links.
	Fetch(ctx context.Context, rawURL string) (*Page, error)

	// Submit sends form with fields overriding its default values.
	Submit(ctx context.Context, form Form, fields map[string]string) (*Page, error)

	// FollowLink loads the first link on page whose text contains label.
	FollowLink(ctx context.Context, page *Page, label string) (*Page, error)
}

// HTMLClient implements Client with net/http and golang.org/x/net/html.
type HTMLClient struct {
	client     *http.Client
	logger     log.Logger
	stopMarker string
	userAgent  string
}

// Option configures an HTMLClient.
type Option func(*HTMLClient)

// WithStopMarker changes the redirect stop marker. Empty follows every redirect.
func WithStopMarker(marker string) Option {
	return func(c *HTMLClient) {
		c.stopMarker = marker
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *HTMLClient) {
		c.userAgent = ua
	}
}

// New creates an HTMLClient on transport with its own cookie jar.
// A nil transport uses http.DefaultTransport.
func New(transport http.RoundTripper, timeout time.Duration, logger log.Logger, opts ...Option) (*HTMLClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	c := &HTMLClient{
		logger:     logger,
		stopMarker: DefaultStopMarker,
		userAgent:  "yampost-loginform/" + Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{
		Transport:     transport,
		Timeout:       timeout,
		Jar:           jar,
		CheckRedirect: c.checkRedirect,
	}
	return c, nil
}

// Fetch loads url and parses its forms and links.
func (c *HTMLClient) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// Submit sends form with fields overriding its default values.
func (c *HTMLClient) Submit(ctx context.Context, form Form, fields map[string]string) (*Page, error) {
	if form.Action == nil {
		return nil, fmt.Errorf("loginform: form %q has no action", form.ID)
	}

	values := url.Values{}
	for k, v := range form.Fields {
		values[k] = append([]string(nil), v...)
	}
	for k, v := range fields {
		values.Set(k, v)
	}

	var req *http.Request
	var err error
	if form.Method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, form.Action.String(), strings.NewReader(values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		target := *form.Action
		target.RawQuery = values.Encode()
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug("submitting form",
		log.String("form", form.ID),
		log.String("method", req.Method),
		log.String("action", form.Action.Redacted()))
	return c.do(req)
}

// FollowLink loads the first link on page whose text contains label.
func (c *HTMLClient) FollowLink(ctx context.Context, page *Page, label string) (*Page, error) {
	link, ok := page.FindLink(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrLinkNotFound, label, page.URL.Redacted())
	}
	return c.Fetch(ctx, link.Href.String())
}

// checkRedirect stops before fetching a URL that carries the stop marker.
func (c *HTMLClient) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if c.stopMarker != "" && strings.Contains(req.URL.String(), c.stopMarker) {
		return http.ErrUseLastResponse
	}
	return nil
}

func (c *HTMLClient) do(req *http.Request) (*Page, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: req.Method, URL: req.URL.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	page := &Page{URL: resp.Request.URL, Status: resp.StatusCode}

	// Stopped redirect: the target is the location, nothing to parse.
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		if loc, err := resp.Location(); err == nil {
			page.URL = loc
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageBytes))
			return page, nil
		}
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{URL: page.URL.Redacted(), Status: resp.StatusCode, Body: string(body)}
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &domain.TransportError{Op: "read " + req.Method, URL: req.URL.Redacted(), Err: err}
	}
	page.Forms, page.Links = parsePage(doc, page.URL)

	c.logger.Debug("loaded page",
		log.String("url", page.URL.Redacted()),
		log.Int("status", page.Status),
		log.Int("forms", len(page.Forms)),
		log.Int("links", len(page.Links)))
	return page, nil
}
