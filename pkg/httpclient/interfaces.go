package httpclient

import (
	"context"
	"net/http"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
	Header() http.Header
}

// Transport executes a prepared request. Implementations return an error only
// when no response was received.
type Transport interface {
	Do(ctx context.Context, req *Request) (Response, error)
}

// TokenProvider returns the current bearer token, or "" when none is available.
type TokenProvider interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenProvider.
type TokenFunc func() string

// Token calls f.
func (f TokenFunc) Token() string {
	if f == nil {
		return ""
	}
	return f()
}
