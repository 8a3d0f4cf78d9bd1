package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/vidnexus/internal/shared"
)

// Request describes a backend call relative to the API base URL.
//
// Body is held as bytes so a request can be replayed verbatim.
type Request struct {
	Method string
	Path   string
	Body   []byte
	Header http.Header
}

// Get builds a GET [Request] for path.
func Get(path string) Request {
	return Request{Method: http.MethodGet, Path: path}
}

// Delete builds a DELETE [Request] for path.
func Delete(path string) Request {
	return Request{Method: http.MethodDelete, Path: path}
}

// Post builds a POST [Request] with v encoded as JSON. A nil v sends an empty object.
func Post(path string, v any) (Request, error) {
	if v == nil {
		return Request{Method: http.MethodPost, Path: path, Body: []byte("{}")}, nil
	}
	body, err := json.Marshal(v)
	if err != nil {
		return Request{}, fmt.Errorf("failed to encode request body: %w", err)
	}
	return Request{Method: http.MethodPost, Path: path, Body: body}, nil
}

// attempt tracks whether a request has already used its one refresh-and-replay.
type attempt struct {
	req     Request
	id      string
	retried bool
}

// Response is a completed backend response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

func newResponse(resp *http.Response, body []byte) *Response {
	r := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var data any
	if err := json.Unmarshal(body, &data); err == nil {
		r.IsJSON = true
		r.JSONData = data
	}
	return r
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// StatusError is returned for a completed request with a non-2xx status.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if len(e.Body) > 0 {
		msg += ": " + shared.Truncate(string(e.Body), 200)
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return shared.ErrNotAuthenticated
	}
	return shared.ErrAPIRequest
}

func statusError(req Request, resp *Response) *StatusError {
	return &StatusError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		Path:       req.Path,
		Header:     resp.Headers,
		Body:       resp.Body,
	}
}
