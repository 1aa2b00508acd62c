package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// errorEnvelope captures the error-bearing fields of a failed response body.
type errorEnvelope struct {
	Errors  json.RawMessage `json:"errors"`
	Message json.RawMessage `json:"message"`
}

// extractErrorMessage picks the human-readable failure text for a non-2xx
// response: joined errors values, then message, then the status text.
func extractErrorMessage(data json.RawMessage, resp Response) string {
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil {
		if msg := joinErrorValues(env.Errors); strings.TrimSpace(msg) != "" {
			return msg
		}
		if msg := messageText(env.Message); msg != "" {
			return msg
		}
	}
	return statusText(resp)
}

// joinErrorValues joins the values of an errors field with single spaces,
// keeping document order. Objects contribute their values, arrays their items.
func joinErrorValues(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var values []json.RawMessage
	switch raw[0] {
	case '{':
		vals, err := objectValues(raw)
		if err != nil {
			return ""
		}
		values = vals
	case '[':
		if err := json.Unmarshal(raw, &values); err != nil {
			return ""
		}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	default:
		return ""
	}

	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, renderValue(v))
	}
	return strings.Join(parts, " ")
}

// objectValues returns the values of a JSON object in document order.
func objectValues(raw json.RawMessage) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var values []json.RawMessage
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// renderValue turns a single errors value into text. Arrays are joined with
// commas and null renders empty.
func renderValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, renderValue(item))
			}
			return strings.Join(parts, ",")
		}
	case 'n':
		return ""
	}
	return string(raw)
}

// messageText returns the message field as text, or "" when it is absent or
// falsy (null, false, 0, "").
func messageText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch string(raw) {
	case "null", "false", `""`:
		return ""
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil && f == 0 {
		return ""
	}
	return renderValue(raw)
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp Response) string {
	code := resp.StatusCode()
	status := strings.TrimSpace(resp.Status())
	if prefix := strconv.Itoa(code); strings.HasPrefix(status, prefix) {
		status = strings.TrimSpace(status[len(prefix):])
	}
	if status == "" {
		status = http.StatusText(code)
	}
	if status == "" {
		status = fmt.Sprintf("HTTP %d", code)
	}
	return status
}
