// Package hotest provides transport stubs for testing compiled
// operations without a network.
package hotest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/i2mint/ho"
)

// Transport is a ho.Transport that records every request and answers
// from a configurable handler. Safe for concurrent use.
type Transport struct {
	Handler func(req *ho.Request) (*ho.RawResponse, error)

	mu       sync.Mutex
	requests []*ho.Request
}

// Send records the request and dispatches to the handler.
func (t *Transport) Send(_ context.Context, req *ho.Request) (*ho.RawResponse, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.mu.Unlock()
	return t.Handler(req)
}

// Requests returns a snapshot of all recorded requests.
func (t *Transport) Requests() []*ho.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*ho.Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// Last returns the most recent request, failing the test if none was
// sent.
func (t *Transport) Last(tb testing.TB) *ho.Request {
	tb.Helper()
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		tb.Fatal("hotest: no requests recorded")
	}
	return t.requests[len(t.requests)-1]
}

// Count returns the number of requests sent.
func (t *Transport) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// JSON returns a transport answering every request with status 200 and
// the JSON encoding of v.
func JSON(tb testing.TB, v any) *Transport {
	tb.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		tb.Fatalf("hotest: marshal response body: %v", err)
	}
	return Status(http.StatusOK, "application/json", body)
}

// Text returns a transport answering every request with status 200 and a
// plain text body.
func Text(s string) *Transport {
	return Status(http.StatusOK, "text/plain", []byte(s))
}

// Status returns a transport answering every request with a fixed status,
// content type, and body.
func Status(code int, contentType string, body []byte) *Transport {
	return &Transport{
		Handler: func(*ho.Request) (*ho.RawResponse, error) {
			header := make(http.Header)
			if contentType != "" {
				header.Set("Content-Type", contentType)
			}
			return &ho.RawResponse{StatusCode: code, Header: header, Body: body}, nil
		},
	}
}

// Fail returns a transport whose every send fails with err, simulating a
// transport-level failure.
func Fail(err error) *Transport {
	return &Transport{
		Handler: func(*ho.Request) (*ho.RawResponse, error) {
			return nil, err
		},
	}
}
