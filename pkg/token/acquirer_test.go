package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bft-labs/yampost/internal/domain"
	"github.com/bft-labs/yampost/pkg/loginform"
)

var testCreds = domain.ClientCredentials{ApplicationKey: "app-key", ApplicationSecret: "app-secret"}

const tokenXML = `<response><access-token><token>ABC123</token></access-token></response>`

// fakeYammer is an httptest server imitating the OAuth dialog and the
// token-exchange endpoints.
type fakeYammer struct {
	srv *httptest.Server

	consent       bool
	exchangeCode  int
	exchangeBody  string
	submits       atomic.Int32
	exchangePaths chan url.URL
}

func newFakeYammer(t *testing.T) *fakeYammer {
	t.Helper()
	f := &fakeYammer{
		exchangeCode:  http.StatusOK,
		exchangeBody:  tokenXML,
		exchangePaths: make(chan url.URL, 4),
	}

	exchange := func(w http.ResponseWriter, r *http.Request) {
		f.exchangePaths <- *r.URL
		w.WriteHeader(f.exchangeCode)
		fmt.Fprint(w, f.exchangeBody)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/dialog/oauth", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("client_id") != testCreds.ApplicationKey {
			http.Error(w, "unknown client", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `<form id="login-form" action="/session" method="post">
			<input type="hidden" name="utf8" value="✓">
			<input name="login"><input type="password" name="password"></form>`)
	})
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		f.submits.Add(1)
		_ = r.ParseForm()
		if r.PostForm.Get("login") != "alice" || r.PostForm.Get("password") != "pw" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		if f.consent {
			http.Redirect(w, r, "/oauth/authorize", http.StatusFound)
			return
		}
		http.Redirect(w, r, "https://app.invalid/cb?code=auth-1&state=s", http.StatusFound)
	})
	mux.HandleFunc("/oauth/authorize", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="/deny">Deny</a><a href="/allow">Allow</a>`)
	})
	mux.HandleFunc("/allow", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://app.invalid/cb?code=auth-2", http.StatusFound)
	})
	mux.HandleFunc("/oauth2/access_token.xml", exchange)
	mux.HandleFunc("/oauth2/access_token", exchange)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeYammer) acquirer(t *testing.T) *Acquirer {
	t.Helper()
	forms, err := loginform.New(f.srv.Client().Transport, 5*time.Second, nil)
	require.NoError(t, err)
	return NewAcquirer(f.srv.URL+"/", testCreds, f.srv.Client(), forms, nil)
}

func TestAcquire_DirectCode(t *testing.T) {
	f := newFakeYammer(t)

	tok, err := f.acquirer(t).Acquire(context.Background(), DirectCode{Code: "code 1"})
	require.NoError(t, err)
	require.Equal(t, domain.AccessToken("ABC123"), tok)

	got := <-f.exchangePaths
	require.Equal(t, "/oauth2/access_token", got.Path)
	require.Equal(t, "app-key", got.Query().Get("client_id"))
	require.Equal(t, "app-secret", got.Query().Get("client_secret"))
	require.Equal(t, "code 1", got.Query().Get("code"))
}

func TestAcquire_DirectCodeEmpty(t *testing.T) {
	f := newFakeYammer(t)

	_, err := f.acquirer(t).Acquire(context.Background(), DirectCode{})
	var flowErr *domain.AuthFlowError
	require.True(t, errors.As(err, &flowErr))
	require.Empty(t, f.exchangePaths)
}

func TestAcquire_InteractiveLogin(t *testing.T) {
	tests := []struct {
		name     string
		consent  bool
		wantCode string
	}{
		{name: "already authorized", consent: false, wantCode: "auth-1"},
		{name: "consent page", consent: true, wantCode: "auth-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeYammer(t)
			f.consent = tt.consent

			tok, err := f.acquirer(t).Acquire(context.Background(), InteractiveLogin{
				Credentials: domain.UserCredentials{Username: "alice", Password: "pw"},
			})
			require.NoError(t, err)
			require.Equal(t, domain.AccessToken("ABC123"), tok)

			got := <-f.exchangePaths
			require.Equal(t, "/oauth2/access_token.xml", got.Path)
			require.Equal(t, tt.wantCode, got.Query().Get("code"))
		})
	}
}

func TestAcquire_InteractiveLoginBadCredentials(t *testing.T) {
	f := newFakeYammer(t)

	_, err := f.acquirer(t).Acquire(context.Background(), InteractiveLogin{
		Credentials: domain.UserCredentials{Username: "alice", Password: "nope"},
	})
	var flowErr *domain.AuthFlowError
	require.True(t, errors.As(err, &flowErr))
	require.Equal(t, domain.StageLogin, flowErr.Stage)
	require.Equal(t, http.StatusUnauthorized, flowErr.Status)
}

func TestAcquire_InteractiveLoginConsentLinkMissing(t *testing.T) {
	f := newFakeYammer(t)
	f.consent = true

	_, err := f.acquirer(t).Acquire(context.Background(), InteractiveLogin{
		Credentials:  domain.UserCredentials{Username: "alice", Password: "pw"},
		ConsentLabel: "Authorize",
	})
	var flowErr *domain.AuthFlowError
	require.True(t, errors.As(err, &flowErr))
	require.Equal(t, domain.StageConsent, flowErr.Stage)
	require.ErrorIs(t, err, loginform.ErrLinkNotFound)
}

// stubForms serves a fixed authorize page and records submissions.
type stubForms struct {
	page    *loginform.Page
	submits int
}

func (s *stubForms) Fetch(ctx context.Context, rawURL string) (*loginform.Page, error) {
	return s.page, nil
}

func (s *stubForms) Submit(ctx context.Context, form loginform.Form, fields map[string]string) (*loginform.Page, error) {
	s.submits++
	return nil, errors.New("unexpected submit")
}

func (s *stubForms) FollowLink(ctx context.Context, page *loginform.Page, label string) (*loginform.Page, error) {
	return nil, errors.New("unexpected follow")
}

func TestAcquire_InteractiveLoginNoLoginForm(t *testing.T) {
	u, _ := url.Parse("https://www.yammer.com/dialog/oauth?client_id=app-key")
	forms := &stubForms{page: &loginform.Page{
		URL:   u,
		Forms: []loginform.Form{{ID: "search"}, {ID: "signup-form"}},
	}}
	acq := NewAcquirer("", testCreds, http.DefaultClient, forms, nil)

	_, err := acq.Acquire(context.Background(), InteractiveLogin{
		Credentials: domain.UserCredentials{Username: "alice", Password: "pw"},
	})
	var flowErr *domain.AuthFlowError
	require.True(t, errors.As(err, &flowErr))
	require.Equal(t, domain.StageAuthorize, flowErr.Stage)
	require.Zero(t, forms.submits)
}

func TestAcquire_InteractiveLoginWithoutForms(t *testing.T) {
	acq := NewAcquirer("", testCreds, http.DefaultClient, nil, nil)
	_, err := acq.Acquire(context.Background(), InteractiveLogin{})
	var flowErr *domain.AuthFlowError
	require.True(t, errors.As(err, &flowErr))
}

func TestAcquire_ExchangeFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantParse  bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: "invalid code", wantStatus: http.StatusUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, body: "oops", wantStatus: http.StatusInternalServerError},
		{name: "created is not ok", status: http.StatusCreated, body: tokenXML, wantStatus: http.StatusCreated},
		{name: "unparseable xml", status: http.StatusOK, body: "<response><access-token>", wantParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeYammer(t)
			f.exchangeCode = tt.status
			f.exchangeBody = tt.body

			_, err := f.acquirer(t).Acquire(context.Background(), DirectCode{Code: "c"})
			var flowErr *domain.AuthFlowError
			require.True(t, errors.As(err, &flowErr), "got %v", err)
			require.Equal(t, domain.StageExchange, flowErr.Stage)

			if tt.wantParse {
				var parseErr *domain.ParseError
				require.True(t, errors.As(err, &parseErr))
				return
			}
			require.Equal(t, tt.wantStatus, flowErr.Status)
			require.Equal(t, tt.body, flowErr.Body)
		})
	}
}

func TestAcquire_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	acq := NewAcquirer(base, testCreds, &http.Client{Timeout: time.Second}, nil, nil)
	_, err := acq.Acquire(context.Background(), DirectCode{Code: "c"})

	var transportErr *domain.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.NotContains(t, err.Error(), "app-secret")
}

func TestAcquire_NilStrategy(t *testing.T) {
	acq := NewAcquirer("", testCreds, http.DefaultClient, nil, nil)
	_, err := acq.Acquire(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

// pageForms returns fixed pages, which may be nil, without touching the network.
type pageForms struct {
	fetched   *loginform.Page
	submitted *loginform.Page
}

func (p pageForms) Fetch(ctx context.Context, rawURL string) (*loginform.Page, error) {
	return p.fetched, nil
}

func (p pageForms) Submit(ctx context.Context, form loginform.Form, fields map[string]string) (*loginform.Page, error) {
	return p.submitted, nil
}

func (p pageForms) FollowLink(ctx context.Context, page *loginform.Page, label string) (*loginform.Page, error) {
	return nil, nil
}

func TestAcquire_InteractiveLoginMissingPage(t *testing.T) {
	u, _ := url.Parse("https://www.yammer.com/dialog/oauth?client_id=app-key")
	loginPage := &loginform.Page{URL: u, Forms: []loginform.Form{{ID: "login-form", Action: u}}}
	consentPage := &loginform.Page{URL: u}

	tests := []struct {
		name      string
		forms     pageForms
		wantStage string
	}{
		{name: "nil authorize page", forms: pageForms{}, wantStage: domain.StageAuthorize},
		{name: "authorize page without url", forms: pageForms{fetched: &loginform.Page{}}, wantStage: domain.StageAuthorize},
		{name: "nil page after login", forms: pageForms{fetched: loginPage}, wantStage: domain.StageLogin},
		{name: "nil page after consent", forms: pageForms{fetched: loginPage, submitted: consentPage}, wantStage: domain.StageConsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acq := NewAcquirer("", testCreds, http.DefaultClient, tt.forms, nil)
			_, err := acq.Acquire(context.Background(), InteractiveLogin{
				Credentials: domain.UserCredentials{Username: "alice", Password: "pw"},
			})
			var flowErr *domain.AuthFlowError
			require.True(t, errors.As(err, &flowErr), "got %v", err)
			require.Equal(t, tt.wantStage, flowErr.Stage)
		})
	}
}
