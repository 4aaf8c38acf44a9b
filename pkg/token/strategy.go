package token

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bft-labs/yampost/internal/domain"
	"github.com/bft-labs/yampost/pkg/log"
	"github.com/bft-labs/yampost/pkg/loginform"
)

// Defaults for the Yammer login dialog.
const (
	DefaultLoginFormID   = "login-form"
	DefaultUsernameField = "login"
	DefaultPasswordField = "password"
	DefaultConsentLabel  = "Allow"

	codeMarker = "code="
)

// Strategy obtains an authorization code and exchanges it for a token.
// The implementations are InteractiveLogin and DirectCode.
type Strategy interface {
	Name() string
	acquire(ctx context.Context, a *Acquirer) (domain.AccessToken, error)
}

// InteractiveLogin logs in through the OAuth dialog's HTML form.
// Zero-valued form settings fall back to the Default* constants.
type InteractiveLogin struct {
	Credentials domain.UserCredentials

	FormID        string
	UsernameField string
	PasswordField string
	ConsentLabel  string
}

// Name identifies the strategy in logs.
func (InteractiveLogin) Name() string { return "interactive-login" }

func (s InteractiveLogin) acquire(ctx context.Context, a *Acquirer) (domain.AccessToken, error) {
	if a.forms == nil {
		return "", &domain.AuthFlowError{Stage: domain.StageAuthorize, Err: errors.New("no login form client configured")}
	}

	page, err := a.forms.Fetch(ctx, a.authorizeURL())
	if err == nil {
		err = checkPage(page)
	}
	if err != nil {
		return "", flowError(domain.StageAuthorize, err)
	}

	formID := orDefault(s.FormID, DefaultLoginFormID)
	form, ok := page.FindForm(formID)
	if !ok {
		return "", &domain.AuthFlowError{
			Stage: domain.StageAuthorize,
			Err:   fmt.Errorf("no form %q on %s%s", formID, page.URL.Host, page.URL.Path),
		}
	}

	page, err = a.forms.Submit(ctx, form, map[string]string{
		orDefault(s.UsernameField, DefaultUsernameField): s.Credentials.Username,
		orDefault(s.PasswordField, DefaultPasswordField): s.Credentials.Password,
	})
	if err == nil {
		err = checkPage(page)
	}
	if err != nil {
		return "", flowError(domain.StageLogin, err)
	}

	// Without a code the service is asking the user to authorize the app.
	if !strings.Contains(page.URL.String(), codeMarker) {
		label := orDefault(s.ConsentLabel, DefaultConsentLabel)
		a.logger.Debug("accepting consent page", log.String("label", label))
		page, err = a.forms.FollowLink(ctx, page, label)
		if err == nil {
			err = checkPage(page)
		}
		if err != nil {
			return "", flowError(domain.StageConsent, err)
		}
	}

	code, err := extractCode(page.URL.String())
	if err != nil {
		return "", &domain.AuthFlowError{Stage: domain.StageCode, Err: err}
	}

	return a.exchange(ctx, exchangeXMLPath, code)
}

// DirectCode exchanges an access code obtained out of band.
type DirectCode struct {
	Code string
}

// Name identifies the strategy in logs.
func (DirectCode) Name() string { return "direct-code" }

func (s DirectCode) acquire(ctx context.Context, a *Acquirer) (domain.AccessToken, error) {
	if s.Code == "" {
		return "", &domain.AuthFlowError{Stage: domain.StageExchange, Err: errors.New("access code is required")}
	}
	a.logger.Debug("exchanging access code",
		log.String("endpoint", a.baseURL+exchangePath),
		log.Redacted("code", s.Code))
	return a.exchange(ctx, exchangePath, s.Code)
}

// extractCode returns the authorization code that follows the code marker
// in location, up to the next query or fragment separator.
func extractCode(location string) (string, error) {
	_, raw, ok := strings.Cut(location, codeMarker)
	if !ok {
		return "", errors.New("no authorization code in redirect location")
	}
	if i := strings.IndexAny(raw, "&#"); i >= 0 {
		raw = raw[:i]
	}
	code, err := url.QueryUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("decode authorization code: %w", err)
	}
	if code == "" {
		return "", errors.New("empty authorization code in redirect location")
	}
	return code, nil
}

// checkPage rejects pages a custom login form client returned without a location.
func checkPage(page *loginform.Page) error {
	if page == nil || page.URL == nil {
		return errors.New("login form client returned no page location")
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
