// Package ports defines the interfaces that connect the yampost components
// to their infrastructure.
//
// # Port Interfaces
//
//   - [HTTPClient]: HTTP request execution, satisfied by *http.Client
//   - [IdleCloser]: connection pool release, satisfied by *http.Client and *http.Transport
//
// The token acquirer and message sender depend only on these interfaces so
// tests can substitute fakes and callers can inject their own transport.
package ports
