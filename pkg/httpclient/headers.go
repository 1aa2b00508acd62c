package httpclient

import (
	"net/http"
	"strings"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	contentTypeJSON     = "application/json"
)

// MergeHeaders merges header layers left to right. Keys are compared by their
// canonical form, so a later "content-type" replaces an earlier "Content-Type".
func MergeHeaders(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			key := strings.TrimSpace(k)
			if key == "" {
				continue
			}
			out[http.CanonicalHeaderKey(key)] = v
		}
	}
	return out
}

// defaultHeaders returns the JSON content type plus a bearer authorization
// header when token is non-empty.
func defaultHeaders(token string) map[string]string {
	headers := map[string]string{headerContentType: contentTypeJSON}
	if token != "" {
		headers[headerAuthorization] = "Bearer " + token
	}
	return headers
}
