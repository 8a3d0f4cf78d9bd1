// API service for making raw requests through the session gateway
package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/desertthunder/vidnexus/internal/session"
)

// APIService sends raw requests to the backend. Refresh and replay still apply.
type APIService struct {
	caller Caller
}

// NewAPIService creates a new API service over caller.
func NewAPIService(caller Caller) *APIService {
	return &APIService{caller: caller}
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*session.Response, error) {
	return a.do(ctx, session.Get(path))
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*session.Response, error) {
	return a.do(ctx, session.Request{Method: http.MethodPost, Path: path, Body: data})
}

// Delete performs a DELETE request to the specified path.
func (a *APIService) Delete(ctx context.Context, path string) (*session.Response, error) {
	return a.do(ctx, session.Delete(path))
}

// do returns non-2xx answers as a [session.Response] so callers can print them.
func (a *APIService) do(ctx context.Context, req session.Request) (*session.Response, error) {
	resp, err := a.caller.Call(ctx, req)

	var statusErr *session.StatusError
	if errors.As(err, &statusErr) {
		out := &session.Response{StatusCode: statusErr.StatusCode, Headers: statusErr.Header, Body: statusErr.Body}
		var data any
		if json.Unmarshal(statusErr.Body, &data) == nil {
			out.IsJSON = true
			out.JSONData = data
		}
		return out, nil
	}
	return resp, err
}
