package models

import "time"

// StoredCookie is a session cookie persisted between runs.
//
// A zero Expires marks a cookie that lives until the server replaces it.
type StoredCookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
}

// Expired reports whether the cookie has a set expiry that is not after now.
func (c StoredCookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}
