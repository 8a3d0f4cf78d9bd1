package session

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/publicsuffix"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/shared"
)

// CookiePersister stores session cookies between runs.
type CookiePersister interface {
	UpsertCookie(c models.StoredCookie) error
	DeleteCookie(name, domain, path string) error
	ListCookies() ([]models.StoredCookie, error)
}

// Jar is an [http.CookieJar] that mirrors every cookie the backend sets into a [CookiePersister].
//
// The session tokens themselves are never read by the client; the jar only stores and replays them.
type Jar struct {
	mu        sync.Mutex
	inner     *cookiejar.Jar
	persister CookiePersister
	logger    *log.Logger
	now       func() time.Time
}

// NewJar creates a [Jar] and loads unexpired cookies from persister. A nil persister keeps cookies in memory.
func NewJar(persister CookiePersister, logger *log.Logger) (*Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	j := &Jar{inner: inner, persister: persister, logger: logger, now: time.Now}
	if err := j.restore(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Jar) restore() error {
	if j.persister == nil {
		return nil
	}

	stored, err := j.persister.ListCookies()
	if err != nil {
		return fmt.Errorf("failed to load cookies: %w", err)
	}

	now := j.now()
	for _, c := range stored {
		if c.Expired(now) {
			continue
		}
		scheme := "http"
		if c.Secure {
			scheme = "https"
		}
		u := &url.URL{Scheme: scheme, Host: c.Domain, Path: c.Path}
		j.inner.SetCookies(u, []*http.Cookie{{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}})
	}
	j.logger.Debug("restored session cookies", "count", len(stored))
	return nil
}

// Cookies implements [http.CookieJar].
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// SetCookies implements [http.CookieJar]. Persistence failures are logged, not returned.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)
	if j.persister == nil {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	for _, c := range cookies {
		stored := toStored(u, c, now)
		if stored.Expired(now) {
			if err := j.persister.DeleteCookie(stored.Name, stored.Domain, stored.Path); err != nil {
				j.logger.Warn("failed to delete cookie", "name", stored.Name, "error", err)
			}
			continue
		}
		if err := j.persister.UpsertCookie(stored); err != nil {
			j.logger.Warn("failed to persist cookie", "name", stored.Name, "error", err)
		}
	}
}

// Import adds cookies captured outside the client, such as from a browser's "Copy as cURL".
func (j *Jar) Import(u *url.URL, cookies []*http.Cookie) {
	for _, c := range cookies {
		if c.Path == "" {
			c.Path = "/"
		}
	}
	j.SetCookies(u, cookies)
}

// toStored resolves the cookie attributes the way the jar scopes them.
func toStored(u *url.URL, c *http.Cookie, now time.Time) models.StoredCookie {
	domain := c.Domain
	if domain == "" {
		domain = u.Hostname()
	}
	path := c.Path
	if path == "" {
		path = "/"
	}

	var expires time.Time
	switch {
	case c.MaxAge < 0:
		expires = now.Add(-time.Second)
	case c.MaxAge > 0:
		expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		expires = c.Expires
	}

	return models.StoredCookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   domain,
		Path:     path,
		Expires:  expires,
		Secure:   c.Secure,
		HTTPOnly: c.HttpOnly,
	}
}
