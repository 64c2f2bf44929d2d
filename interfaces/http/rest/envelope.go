package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes bounds the request body read into an envelope
const maxBodyBytes = 1 << 20

// envelope is the {headers, body} shape the functions decode
type envelope struct {
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body,omitempty"`
}

// buildEnvelope renders an HTTP request as a raw function envelope.
// Header names are lower-cased and only the first value of each is kept.
// An empty body is omitted.
func buildEnvelope(r *http.Request) (string, error) {
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[strings.ToLower(name)] = values[0]
		}
	}

	env := envelope{Headers: headers}

	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return "", err
		}
		if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
			env.Body = json.RawMessage(trimmed)
		}
	}

	data, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
