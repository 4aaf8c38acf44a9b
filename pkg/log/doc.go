// Package log provides the logging abstraction used by yampost components.
//
// The library never writes logs on its own: every component takes a [Logger]
// and defaults to [NoopLogger]. The CLI wires the zerolog adapter.
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	client, err := yammer.NewWithAccessCode(ctx, cfg, code, yammer.WithLogger(logger))
//
// Secrets must go through [Redacted] so they never reach the output.
package log
