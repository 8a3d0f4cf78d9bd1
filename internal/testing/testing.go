// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/vidnexus/internal/models"
)

// RecordingNavigator records every route it is asked to replace.
type RecordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *RecordingNavigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, path)
}

// Routes returns a copy of the recorded routes.
func (n *RecordingNavigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

// Count returns how many times path was recorded.
func (n *RecordingNavigator) Count(path string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, r := range n.routes {
		if r == path {
			c++
		}
	}
	return c
}

// MemoryCookies is an in-memory cookie persister.
type MemoryCookies struct {
	mu      sync.Mutex
	cookies map[string]models.StoredCookie
	Err     error
}

func NewMemoryCookies(seed ...models.StoredCookie) *MemoryCookies {
	m := &MemoryCookies{cookies: make(map[string]models.StoredCookie)}
	for _, c := range seed {
		m.cookies[cookieKey(c.Name, c.Domain, c.Path)] = c
	}
	return m
}

func cookieKey(name, domain, path string) string {
	return strings.Join([]string{name, domain, path}, "|")
}

func (m *MemoryCookies) UpsertCookie(c models.StoredCookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.cookies[cookieKey(c.Name, c.Domain, c.Path)] = c
	return nil
}

func (m *MemoryCookies) DeleteCookie(name, domain, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.cookies, cookieKey(name, domain, path))
	return nil
}

func (m *MemoryCookies) ListCookies() ([]models.StoredCookie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.StoredCookie, 0, len(m.cookies))
	for _, c := range m.cookies {
		out = append(out, c)
	}
	return out, nil
}

// Get returns the stored cookie with name, ignoring domain and path.
func (m *MemoryCookies) Get(name string) (models.StoredCookie, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cookies {
		if c.Name == name {
			return c, true
		}
	}
	return models.StoredCookie{}, false
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
