// Package sender posts messages to the Yammer messages API.
//
// A message is sent as an URL-encoded form (body, optional group_id and
// topic1..topicN in order) authenticated with a bearer token. Only
// 201 Created counts as success; anything else is a
// [domain.SendFailedError] carrying the status and body. Nothing is retried.
//
// # Usage
//
//	s := sender.NewHTTPSender(httpClient, logger,
//	    sender.WithTokenTransport(sender.TokenInQuery),
//	    sender.WithRateLimit(30),
//	)
//
//	msg := domain.Message{Body: "deployed", GroupID: "123", Topics: []string{"release"}}
//	if err := s.Send(ctx, token, msg); err != nil {
//	    return err
//	}
//
// # Token Transport
//
// The token travels in the Authorization header by default. Some API
// gateways only accept it as the access_token query parameter; select that
// with [WithTokenTransport].
//
// # Custom Senders
//
// Implement the [Sender] interface to deliver messages elsewhere (tests,
// dry runs, another network).
package sender
