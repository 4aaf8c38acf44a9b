// Package yammer is a client for posting messages to Yammer.
//
// A [Client] acquires an OAuth access token once, while it is constructed,
// and reuses it for every post until it is closed. There is no refresh: when
// the token stops working, build a new client.
//
// # Basic Usage
//
// With an access code obtained out of band:
//
//	cfg := yammer.Config{
//	    ApplicationKey:    "key",
//	    ApplicationSecret: "secret",
//	}
//
//	client, err := yammer.NewWithAccessCode(ctx, cfg, code)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.SendMessage(ctx, "12345", "Build 42 is out", "release", "ci"); err != nil {
//	    log.Fatal(err)
//	}
//
// With a username and password, the client fills in the OAuth login form
// itself and accepts the consent page when the service shows one:
//
//	client, err := yammer.NewWithLogin(ctx, cfg, "alice@example.com", password)
//
// # Errors
//
// Construction fails with [AuthFlowError] when no token could be obtained,
// and with [TransportError] when the service could not be reached. Posts fail
// with [SendFailedError] for any status other than 201 Created. Nothing is
// retried.
//
// # Concurrency
//
// A Client holds no locks around the token or the sender. Calling
// SendMessage from several goroutines works as far as net/http does, but the
// order in which pooled connections are reused is undefined.
//
// # Dependency Injection
//
//	client, err := yammer.New(ctx, cfg, token.DirectCode{Code: code},
//	    yammer.WithHTTPClient(mockClient),
//	    yammer.WithLogger(customLogger),
//	)
package yammer
