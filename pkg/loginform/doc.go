// Package loginform drives HTML login forms without a browser.
//
// It is the piece of the interactive OAuth flow that needs an HTML-aware
// client: fetch a page, pick a form by id, fill and submit it, and follow a
// link by its label. Everything else in yampost speaks plain HTTP.
//
// # Usage
//
//	forms, err := loginform.New(http.DefaultTransport, 30*time.Second, logger)
//	page, err := forms.Fetch(ctx, authorizeURL)
//	form, ok := page.FindForm("login-form")
//	page, err = forms.Submit(ctx, form, map[string]string{"login": user, "password": pass})
//
// Cookies set during the conversation are kept in a per-client jar.
//
// Redirect chains stop at the first hop whose URL contains the configured
// stop marker (default "code="). That hop becomes [Page.URL] without being
// fetched, so an OAuth callback pointing at an unreachable application URL
// does not break the flow.
//
// # Custom Clients
//
// Implement [Client] to drive the flow with another HTML library or a
// headless browser.
package loginform
