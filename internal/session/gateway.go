package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/shared"
)

const (
	statusPath   = "auth/status/"
	loginPath    = "auth/login/"
	registerPath = "auth/register/"
	refreshPath  = "auth/refresh/"
	logoutPath   = "auth/logout/"

	// LoginRoute is where the client is sent when a session cannot be recovered.
	LoginRoute = "/login"
)

// Navigator moves the client to a route without adding a history entry.
type Navigator interface {
	Replace(path string)
}

// Options configures a [Gateway].
type Options struct {
	// BaseURL is the absolute API prefix, e.g. http://localhost:8000/api.
	BaseURL string
	// HTTPClient is copied. Its Jar is replaced by Jar when Jar is set.
	HTTPClient *http.Client
	Jar        http.CookieJar
	Navigator  Navigator
	Store      *Store
	Logger     *log.Logger
}

// Gateway is the single path for backend calls.
//
// Cookies are carried by the client's jar. A 401 from [Gateway.Call] triggers one refresh and
// one replay of that request. Refreshes are not shared between concurrent requests.
type Gateway struct {
	base   *url.URL
	client *http.Client
	store  *Store
	nav    Navigator
	logger *log.Logger
}

// NewGateway builds a [Gateway] from opts.
func NewGateway(opts Options) (*Gateway, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: api base url %q must be absolute", shared.ErrInvalidConfig, opts.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	client := &http.Client{}
	if opts.HTTPClient != nil {
		c := *opts.HTTPClient
		client = &c
	}
	if opts.Jar != nil {
		client.Jar = opts.Jar
	}
	if client.Jar == nil {
		jar, err := NewJar(nil, opts.Logger)
		if err != nil {
			return nil, err
		}
		client.Jar = jar
	}

	store := opts.Store
	if store == nil {
		store = NewStore()
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Gateway{base: base, client: client, store: store, nav: opts.Navigator, logger: logger}, nil
}

// Store returns the session state the gateway writes to.
func (g *Gateway) Store() *Store {
	return g.store
}

// BaseURL returns the resolved API prefix.
func (g *Gateway) BaseURL() *url.URL {
	u := *g.base
	return &u
}

// Call sends req. A 401 is answered with one refresh then one replay of req.
//
// If the refresh fails the session is marked unauthenticated, the navigator is sent to
// [LoginRoute], and the original 401 is returned as a [StatusError]. A refresh cut short
// by ctx returns the 401 but leaves the session alone.
func (g *Gateway) Call(ctx context.Context, req Request) (*Response, error) {
	return g.call(ctx, &attempt{req: req, id: shared.GenerateID()})
}

func (g *Gateway) call(ctx context.Context, a *attempt) (*Response, error) {
	resp, err := g.send(ctx, a.req, a.id)
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		return resp, nil
	}
	if resp.StatusCode != http.StatusUnauthorized || a.retried {
		return nil, statusError(a.req, resp)
	}

	a.retried = true
	if err := g.refresh(ctx, a.id); err != nil {
		if ctx.Err() != nil {
			g.logger.Debug("refresh abandoned by caller", "request_id", a.id, "path", a.req.Path, "error", err)
			return nil, statusError(a.req, resp)
		}
		g.logger.Warn("session refresh failed", "request_id", a.id, "path", a.req.Path, "error", err)
		g.expire()
		return nil, statusError(a.req, resp)
	}

	g.logger.Debug("replaying request after refresh", "request_id", a.id, "path", a.req.Path)
	return g.call(ctx, a)
}

// refresh asks the backend to rotate the session cookies. It is never itself retried.
func (g *Gateway) refresh(ctx context.Context, id string) error {
	req, _ := Post(refreshPath, nil)
	resp, err := g.send(ctx, req, id)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return statusError(req, resp)
	}
	return nil
}

func (g *Gateway) expire() {
	g.store.set(Unauthenticated)
	if g.nav != nil {
		g.nav.Replace(LoginRoute)
	}
}

// ProbeStatus asks the backend whether the session is authenticated and records the answer.
//
// Any failure counts as unauthenticated. It never returns an error.
func (g *Gateway) ProbeStatus(ctx context.Context) State {
	id := shared.GenerateID()
	resp, err := g.send(ctx, Get(statusPath), id)
	if err != nil {
		g.logger.Debug("status probe failed", "request_id", id, "error", err)
		g.store.set(Unauthenticated)
		return Unauthenticated
	}

	var status models.AuthStatus
	if !resp.OK() || resp.Decode(&status) != nil || !status.IsAuthenticated {
		g.store.set(Unauthenticated)
		return Unauthenticated
	}

	g.store.setUser(status.User)
	g.store.set(Authenticated)
	return Authenticated
}

// Login submits credentials. Success marks the session authenticated.
//
// A 4xx answer is returned as a [*ValidationError].
func (g *Gateway) Login(ctx context.Context, creds models.Credentials) error {
	return g.submit(ctx, loginPath, creds)
}

// Register creates an account. The backend signs the new user in, so success marks the
// session authenticated.
func (g *Gateway) Register(ctx context.Context, reg models.Registration) error {
	return g.submit(ctx, registerPath, reg)
}

func (g *Gateway) submit(ctx context.Context, path string, payload any) error {
	req, err := Post(path, payload)
	if err != nil {
		return err
	}

	resp, err := g.send(ctx, req, shared.GenerateID())
	if err != nil {
		return err
	}
	if resp.OK() {
		var result models.AuthResult
		if resp.Decode(&result) == nil && result.User != nil {
			g.store.setUser(result.User)
		}
		g.store.set(Authenticated)
		return nil
	}

	status := statusError(req, resp)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ValidationError{StatusCode: resp.StatusCode, Fields: parseFieldErrors(resp.Body), status: status}
	}
	return status
}

// Logout asks the backend to end the session. The state ends up unauthenticated whatever
// the backend answers; the returned error is informational.
func (g *Gateway) Logout(ctx context.Context) error {
	defer g.store.set(Unauthenticated)

	req, _ := Post(logoutPath, nil)
	resp, err := g.send(ctx, req, shared.GenerateID())
	if err != nil {
		return err
	}
	if !resp.OK() {
		return statusError(req, resp)
	}
	return nil
}

// resolve joins path onto the base URL. Absolute URLs are rejected.
func (g *Gateway) resolve(path string) (*url.URL, error) {
	if strings.HasPrefix(path, "//") {
		return nil, fmt.Errorf("%w: %q is not relative to the api base", shared.ErrInvalidPath, path)
	}
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", shared.ErrInvalidPath, path, err)
	}
	if ref.Scheme != "" || ref.Host != "" {
		return nil, fmt.Errorf("%w: %q is not relative to the api base", shared.ErrInvalidPath, path)
	}
	for _, seg := range strings.Split(ref.Path, "/") {
		if seg == ".." {
			return nil, fmt.Errorf("%w: %q escapes the api base", shared.ErrInvalidPath, path)
		}
	}
	return g.base.ResolveReference(ref), nil
}

func (g *Gateway) send(ctx context.Context, req Request, id string) (*Response, error) {
	target, err := g.resolve(req.Path)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vals := range req.Header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	g.logger.Debug("api call",
		"request_id", id,
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	return newResponse(resp, data), nil
}
