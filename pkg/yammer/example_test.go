package yammer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/bft-labs/yampost/pkg/yammer"
)

// ExampleNewWithAccessCode posts one message against a stand-in service.
func ExampleNewWithAccessCode() {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/access_token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<response><access-token><token>example-token</token></access-token></response>`)
	})
	mux.HandleFunc("/api/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := yammer.Config{
		BaseURL:           srv.URL,
		ApplicationKey:    "key",
		ApplicationSecret: "secret",
	}

	ctx := context.Background()
	client, err := yammer.NewWithAccessCode(ctx, cfg, "access-code")
	if err != nil {
		fmt.Printf("failed to create client: %v\n", err)
		return
	}
	defer client.Close()

	err = client.SendMessage(ctx, "", "Build 42 is out", "release")
	fmt.Println("sent:", err == nil)

	// Output: sent: true
}

// Example_sendFailed shows how to inspect a rejected post.
func Example_sendFailed() {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/access_token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<response><access-token><token>example-token</token></access-token></response>`)
	})
	mux.HandleFunc("/api/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "group not found", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := yammer.Config{BaseURL: srv.URL, ApplicationKey: "key", ApplicationSecret: "secret"}
	client, err := yammer.NewWithAccessCode(context.Background(), cfg, "access-code")
	if err != nil {
		fmt.Printf("failed to create client: %v\n", err)
		return
	}
	defer client.Close()

	err = client.SendMessage(context.Background(), "404", "hello")
	var sendErr *yammer.SendFailedError
	if errors.As(err, &sendErr) {
		fmt.Println("status:", sendErr.Status)
	}

	// Output: status: 404
}
