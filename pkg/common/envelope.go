package common

import "encoding/json"

// CallerIDHeader is the request header carrying the authenticated subject.
const CallerIDHeader = "sub"

// Request is the {headers, body} envelope wrapped around every inbound call.
type Request[T any] struct {
	Headers map[string]string `json:"headers"`
	Body    *T                `json:"body,omitempty"`
}

// Header returns the named header value, or "" when absent.
func (r *Request[T]) Header(key string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers[key]
}

// CallerID returns the caller identity header value.
func (r *Request[T]) CallerID() string {
	return r.Header(CallerIDHeader)
}

// DecodeRequest parses a raw JSON envelope. Unknown fields are ignored so
// proxy-shaped payloads carrying extra attributes still decode.
func DecodeRequest[T any](raw string) (*Request[T], error) {
	var req Request[T]
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// HasLength reports whether s is non-empty. Whitespace-only strings count
// as present.
func HasLength(s string) bool {
	return len(s) > 0
}
