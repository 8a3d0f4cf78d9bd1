package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vidnexus/internal/shared"
)

// DefaultPrefix is where the API is mounted.
const DefaultPrefix = "/api"

// Options configures a [Backend].
type Options struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Prefix     string
	Logger     *log.Logger
	Generator  Generator
	BcryptCost int
}

// Backend serves the auth and notes endpoints over an in-memory store.
type Backend struct {
	tokens     *Tokens
	store      *Store
	gen        Generator
	logger     *log.Logger
	prefix     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	router     *BasicRouter
}

// New builds a Backend with its routes and middleware.
func New(opts Options) (*Backend, error) {
	if opts.AccessTTL == 0 {
		opts.AccessTTL = time.Hour
	}
	if opts.RefreshTTL == 0 {
		opts.RefreshTTL = 24 * time.Hour
	}
	tokens, err := NewTokens(opts.Secret, opts.AccessTTL, opts.RefreshTTL)
	if err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Generator == nil {
		opts.Generator = StubGenerator{}
	}
	prefix := strings.TrimRight(opts.Prefix, "/")
	if opts.Prefix == "" {
		prefix = DefaultPrefix
	}

	b := &Backend{
		tokens:     tokens,
		store:      NewStore(opts.BcryptCost),
		gen:        opts.Generator,
		logger:     opts.Logger,
		prefix:     prefix,
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		router:     NewBasicRouter(),
	}
	b.routes()
	return b, nil
}

func (b *Backend) routes() {
	b.router.Use(RequestID, Recoverer(b.logger), RequestLogger(b.logger))

	b.router.Handler(&AuthHandler{backend: b})
	b.router.Handler(&NotesHandler{backend: b})
	b.router.Handle("", "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, detail("Not found."))
	}))
}

// Store exposes the backing store, mainly for seeding users.
func (b *Backend) Store() *Store { return b.store }

// Tokens exposes the token issuer.
func (b *Backend) Tokens() *Tokens { return b.tokens }

// ServeHTTP implements [http.Handler].
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

func (b *Backend) path(p string) string {
	return b.prefix + p
}

// setTokenCookies writes the pair as HttpOnly SameSite=Lax cookies.
func (b *Backend) setTokenCookies(w http.ResponseWriter, pair TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookie,
		Value:    pair.Access,
		Path:     "/",
		MaxAge:   int(b.accessTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    pair.Refresh,
		Path:     "/",
		MaxAge:   int(b.refreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Unix(0, 0),
		})
	}
}

func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON object. An empty body decodes to the zero value.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("JSON parse error - %v", err)
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, h, logger)
}

// Serve is [ListenAndServe] over an existing listener.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("development backend listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down development backend")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}
