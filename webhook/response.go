// ABOUTME: Webhook response wrapper with gjson-backed field access
// ABOUTME: Treats an empty body as an empty JSON object
package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Response is a completed webhook round trip.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) json() string {
	if r == nil || len(r.Body) == 0 || !gjson.ValidBytes(r.Body) {
		return "{}"
	}
	return string(r.Body)
}

// Get returns the value at a gjson path.
func (r *Response) Get(path string) gjson.Result {
	return gjson.Get(r.json(), path)
}

// Success reports whether the body carries "success": true.
func (r *Response) Success() bool {
	return r.Get("success").Bool()
}

// Message returns the server's "message" field, or "".
func (r *Response) Message() string {
	return r.Get("message").String()
}

// Decode unmarshals the value at path into v. It reports false when the
// path is absent or null. An empty path decodes the whole body.
func (r *Response) Decode(path string, v interface{}) (bool, error) {
	raw := r.json()
	if path != "" {
		res := gjson.Get(raw, path)
		if !res.Exists() || res.Type == gjson.Null {
			return false, nil
		}
		raw = res.Raw
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return true, nil
}
