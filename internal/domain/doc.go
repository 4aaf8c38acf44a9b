// Package domain contains the core types shared by the yampost components.
//
// This package has no dependencies on infrastructure concerns (HTTP, HTML,
// logging). It holds the credentials and message value types and the error
// taxonomy returned by the public API.
//
// # Types
//
//   - [ClientCredentials]: application key and secret registered with Yammer
//   - [UserCredentials]: username and password used by the login-form flow
//   - [AccessToken]: the bearer token a client holds for its lifetime
//   - [Message]: a message body with optional group and ordered topics
//
// # Errors
//
//   - [TransportError]: network failure talking to the service
//   - [AuthFlowError]: token acquisition failed, construction aborted
//   - [SendFailedError]: message post answered with anything but 201
//   - [ParseError]: malformed token XML, always wrapped in [AuthFlowError]
package domain
