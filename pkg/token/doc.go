// Package token acquires Yammer OAuth access tokens.
//
// An [Acquirer] holds the application credentials and the transports; a
// [Strategy] decides how the authorization code is obtained:
//
//   - [InteractiveLogin] drives the OAuth login form with a username and
//     password, accepting the consent page when it shows up.
//   - [DirectCode] exchanges an access code the caller already has.
//
// Both end at the token-exchange endpoint, whose XML response carries the
// bearer token in response/access-token/token.
//
//	acq := token.NewAcquirer(token.DefaultBaseURL, creds, httpClient, forms, logger)
//	tok, err := acq.Acquire(ctx, token.DirectCode{Code: code})
//
// Failures are [domain.AuthFlowError] except network failures, which surface
// as [domain.TransportError].
package token
