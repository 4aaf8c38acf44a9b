package domain

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestAuthFlowError_Unwrap(t *testing.T) {
	parseErr := &ParseError{Err: io.ErrUnexpectedEOF}
	err := error(&AuthFlowError{Stage: StageExchange, Err: parseErr})

	var got *ParseError
	if !errors.As(err, &got) {
		t.Fatalf("errors.As(%v, *ParseError) = false", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("errors.Is(%v, io.ErrUnexpectedEOF) = false", err)
	}
}

func TestAuthFlowError_Message(t *testing.T) {
	err := &AuthFlowError{Stage: StageExchange, Status: 401, Body: "denied"}
	msg := err.Error()
	for _, want := range []string{"exchange", "401", "denied"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	err := error(&TransportError{Op: "POST", URL: "https://www.yammer.com/api/v1/messages", Err: io.EOF})
	if !errors.Is(err, io.EOF) {
		t.Errorf("errors.Is(%v, io.EOF) = false", err)
	}
}
