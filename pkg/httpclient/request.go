package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// networkErrorMessage is reported when a transport failure carries no message.
const networkErrorMessage = "Network error"

// ErrNoData is returned by Result.Decode when the response carried no payload.
var ErrNoData = errors.New("result has no data")

var allowedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
	http.MethodPatch:  {},
}

// Descriptor describes a single request before it is issued.
type Descriptor struct {
	URL string
	// Method defaults to GET.
	Method string
	// Body is JSON-encoded when non-nil. A nil Body sends no body at all.
	Body    any
	Headers map[string]string
	Options []RequestOption
}

// Request is a descriptor after header construction and body encoding.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Options []RequestOption
}

// Result is the normalized outcome of Send.
//
// Data holds the decoded JSON payload (also on non-2xx responses) and is nil
// for 204 responses and transport failures. Error is empty on success.
// Response is nil when no usable response was received.
type Result struct {
	Data     json.RawMessage
	Error    string
	Response Response
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Error == "" }

// Decode unmarshals Data into v.
func (r Result) Decode(v any) error {
	if len(r.Data) == 0 {
		return ErrNoData
	}
	return json.Unmarshal(r.Data, v)
}

// RequestClient issues JSON requests with optional bearer authentication and
// folds every outcome into a Result.
type RequestClient struct {
	transport Transport
	tokens    TokenProvider
	log       Logger
}

// NewRequestClient builds a client. tokens may be nil for anonymous calls.
func NewRequestClient(transport Transport, tokens TokenProvider, log Logger) *RequestClient {
	return &RequestClient{
		transport: transport,
		tokens:    tokens,
		log:       ensureLogger(log),
	}
}

// Send executes the request described by d. It never returns an error value;
// failures are reported through Result.Error.
func (c *RequestClient) Send(ctx context.Context, d Descriptor) Result {
	if c == nil || c.transport == nil {
		return failure(errors.New("request client is not initialized"))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	req, err := c.prepare(d)
	if err != nil {
		c.log.WarnObj("request rejected", "request_error", map[string]any{
			"url":   d.URL,
			"error": err.Error(),
		})
		return failure(err)
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.log.WarnObj("request failed", "request_error", map[string]any{
			"method": req.Method,
			"url":    req.URL,
			"error":  errorText(err),
		})
		return failure(err)
	}

	res := normalize(resp)
	c.log.DebugObj("request completed", "request_meta", map[string]any{
		"method":     req.Method,
		"url":        req.URL,
		"status":     resp.StatusCode(),
		"ok":         res.OK(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return res
}

// prepare builds the outgoing request. The credential is read here, once per call.
func (c *RequestClient) prepare(d Descriptor) (*Request, error) {
	if strings.TrimSpace(d.URL) == "" {
		return nil, errors.New("request url is empty")
	}

	method := strings.ToUpper(strings.TrimSpace(d.Method))
	if method == "" {
		method = http.MethodGet
	}
	if _, ok := allowedMethods[method]; !ok {
		return nil, fmt.Errorf("unsupported request method %q", d.Method)
	}

	var token string
	if c.tokens != nil {
		token = c.tokens.Token()
	}

	req := &Request{
		Method:  method,
		URL:     d.URL,
		Headers: MergeHeaders(defaultHeaders(token), d.Headers),
		Options: d.Options,
	}

	if d.Body != nil {
		if method == http.MethodGet {
			return nil, errors.New("request with GET method cannot have body")
		}
		raw, err := json.Marshal(d.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		req.Body = raw
	}

	return req, nil
}

// normalize maps a received response onto a Result.
func normalize(resp Response) Result {
	if resp.StatusCode() == http.StatusNoContent {
		return Result{Response: resp}
	}

	var data json.RawMessage
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return failure(fmt.Errorf("decode response body: %w", err))
	}

	res := Result{Data: data, Response: resp}
	if !isSuccess(resp.StatusCode()) {
		res.Error = extractErrorMessage(data, resp)
	}
	return res
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func failure(err error) Result {
	return Result{Error: errorText(err)}
}

func errorText(err error) string {
	if err == nil {
		return networkErrorMessage
	}
	if msg := err.Error(); strings.TrimSpace(msg) != "" {
		return msg
	}
	return networkErrorMessage
}
