package session

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/desertthunder/vidnexus/internal/models"
	tu "github.com/desertthunder/vidnexus/internal/testing"
)

func TestJar(t *testing.T) {
	u, _ := url.Parse("http://localhost:8000/api/auth/login/")
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Persists Set Cookies", func(t *testing.T) {
		store := tu.NewMemoryCookies()
		jar, err := NewJar(store, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		jar.now = func() time.Time { return fixed }

		jar.SetCookies(u, []*http.Cookie{
			{Name: "access_token", Value: "a1", Path: "/", MaxAge: 3600, HttpOnly: true},
			{Name: "refresh_token", Value: "r1", Path: "/", MaxAge: 86400, HttpOnly: true},
		})

		c, ok := store.Get("access_token")
		if !ok {
			t.Fatal("expected access_token to be persisted")
		}
		if c.Domain != "localhost" || c.Path != "/" || !c.HTTPOnly {
			t.Errorf("unexpected cookie scope %+v", c)
		}
		if !c.Expires.Equal(fixed.Add(time.Hour)) {
			t.Errorf("expected expiry from max-age, got %v", c.Expires)
		}
		if got := len(jar.Cookies(u)); got != 2 {
			t.Errorf("expected 2 cookies in jar, got %d", got)
		}
	})

	t.Run("Deletes Cleared Cookies", func(t *testing.T) {
		store := tu.NewMemoryCookies(models.StoredCookie{Name: "access_token", Value: "a1", Domain: "localhost", Path: "/"})
		jar, _ := NewJar(store, nil)

		jar.SetCookies(u, []*http.Cookie{{Name: "access_token", Value: "", Path: "/", MaxAge: -1}})

		if _, ok := store.Get("access_token"); ok {
			t.Error("expected cookie to be deleted")
		}
		if got := len(jar.Cookies(u)); got != 0 {
			t.Errorf("expected jar to drop the cookie, got %d", got)
		}
	})

	t.Run("Restores Unexpired Cookies", func(t *testing.T) {
		store := tu.NewMemoryCookies(
			models.StoredCookie{Name: "refresh_token", Value: "r1", Domain: "localhost", Path: "/", Expires: time.Now().Add(time.Hour)},
			models.StoredCookie{Name: "access_token", Value: "old", Domain: "localhost", Path: "/", Expires: time.Now().Add(-time.Hour)},
			models.StoredCookie{Name: "csrftoken", Value: "c1", Domain: "localhost", Path: "/"},
		)
		jar, err := NewJar(store, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		names := map[string]string{}
		for _, c := range jar.Cookies(u) {
			names[c.Name] = c.Value
		}
		if names["refresh_token"] != "r1" || names["csrftoken"] != "c1" {
			t.Errorf("expected restored cookies, got %v", names)
		}
		if _, ok := names["access_token"]; ok {
			t.Error("expired cookie should not be restored")
		}
	})

	t.Run("Load Failure", func(t *testing.T) {
		store := tu.NewMemoryCookies()
		store.Err = errors.New("disk gone")

		if _, err := NewJar(store, nil); err == nil {
			t.Error("expected error when cookies cannot be loaded")
		}
	})

	t.Run("Persist Failure Keeps Cookie In Memory", func(t *testing.T) {
		store := tu.NewMemoryCookies()
		jar, _ := NewJar(store, nil)
		store.Err = errors.New("read only")

		jar.SetCookies(u, []*http.Cookie{{Name: "access_token", Value: "a1", Path: "/"}})
		if got := len(jar.Cookies(u)); got != 1 {
			t.Errorf("expected cookie to stay in memory, got %d", got)
		}
	})

	t.Run("Import Defaults Path", func(t *testing.T) {
		store := tu.NewMemoryCookies()
		jar, _ := NewJar(store, nil)
		base, _ := url.Parse("http://localhost:8000/api/")

		jar.Import(base, []*http.Cookie{{Name: "access_token", Value: "a1"}})

		c, ok := store.Get("access_token")
		if !ok || c.Path != "/" {
			t.Errorf("expected imported cookie at path /, got %+v", c)
		}
		notes, _ := url.Parse("http://localhost:8000/api/notes/")
		if len(jar.Cookies(notes)) != 1 {
			t.Error("expected imported cookie to be sent to other api paths")
		}
	})

	t.Run("Memory Only", func(t *testing.T) {
		jar, err := NewJar(nil, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		jar.SetCookies(u, []*http.Cookie{{Name: "a", Value: "b", Path: "/"}})
		if len(jar.Cookies(u)) != 1 {
			t.Error("expected cookie in memory jar")
		}
	})
}
