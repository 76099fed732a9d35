package ho

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Request is the assembled outgoing request handed to a Transport.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// RawResponse is a transport's view of an HTTP response: status, headers,
// and the fully-read body.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the response's Content-Type header value.
func (r *RawResponse) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// Text returns the body as a string.
func (r *RawResponse) Text() string { return string(r.Body) }

// Transport sends an assembled request and returns the raw response.
// Implementations must be safe for concurrent use; compiled functions
// share their transport across calls. Timeouts and retries, if any, are
// the transport's responsibility.
type Transport interface {
	Send(ctx context.Context, req *Request) (*RawResponse, error)
}

// DefaultTransport is used by compiled functions when no transport is
// injected with WithTransport.
var DefaultTransport Transport = &HTTPTransport{}

// HTTPTransport is a Transport backed by an *http.Client. A nil Client
// falls back to http.DefaultClient.
type HTTPTransport struct {
	Client *http.Client
}

// Send performs one HTTP round trip and reads the full response body.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*RawResponse, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(hr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // read side

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// LoggedTransport wraps next so that every send is logged to logger with
// method, URL, status, and latency. The engine itself never logs; this
// decorator is opt-in.
func LoggedTransport(next Transport, logger *slog.Logger) Transport {
	return transportFunc(func(ctx context.Context, req *Request) (*RawResponse, error) {
		start := time.Now()
		resp, err := next.Send(ctx, req)

		attrs := []slog.Attr{
			slog.String("method", req.Method),
			slog.String("url", req.URL),
			slog.Duration("latency", time.Since(start)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			logger.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
			return nil, err
		}
		attrs = append(attrs, slog.Int("status", resp.StatusCode), slog.Int("size", len(resp.Body)))
		logger.LogAttrs(ctx, slog.LevelInfo, "request", attrs...)
		return resp, nil
	})
}

// RateLimitedTransport wraps next with a client-side token-bucket limiter.
// Send blocks until the limiter admits the request or ctx is done.
func RateLimitedTransport(next Transport, rps float64, burst int) Transport {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return transportFunc(func(ctx context.Context, req *Request) (*RawResponse, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return next.Send(ctx, req)
	})
}

// transportFunc adapts a function to the Transport interface.
type transportFunc func(ctx context.Context, req *Request) (*RawResponse, error)

func (f transportFunc) Send(ctx context.Context, req *Request) (*RawResponse, error) {
	return f(ctx, req)
}
