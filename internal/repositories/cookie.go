package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/vidnexus/internal/models"
)

// CookieRepository persists session cookies. It satisfies the session cookie persister.
type CookieRepository struct {
	db *sql.DB
}

// NewCookieRepository creates a new CookieRepository with the given database connection
func NewCookieRepository(db *sql.DB) *CookieRepository {
	return &CookieRepository{db: db}
}

// UpsertCookie inserts c or replaces the cookie with the same name, domain and path.
func (r *CookieRepository) UpsertCookie(c models.StoredCookie) error {
	query := `
		INSERT INTO cookies (name, domain, path, value, expires_at, secure, http_only, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name, domain, path) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			secure = excluded.secure,
			http_only = excluded.http_only,
			updated_at = excluded.updated_at
	`

	var expires sql.NullTime
	if !c.Expires.IsZero() {
		expires = sql.NullTime{Time: c.Expires.UTC(), Valid: true}
	}

	if _, err := r.db.Exec(query, c.Name, c.Domain, c.Path, c.Value, expires, c.Secure, c.HTTPOnly, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save cookie %s: %w", c.Name, err)
	}
	return nil
}

// DeleteCookie removes a cookie. Deleting an unknown cookie is not an error.
func (r *CookieRepository) DeleteCookie(name, domain, path string) error {
	if _, err := r.db.Exec("DELETE FROM cookies WHERE name = ? AND domain = ? AND path = ?", name, domain, path); err != nil {
		return fmt.Errorf("failed to delete cookie %s: %w", name, err)
	}
	return nil
}

// ListCookies returns every stored cookie, expired or not.
func (r *CookieRepository) ListCookies() ([]models.StoredCookie, error) {
	rows, err := r.db.Query(`
		SELECT name, domain, path, value, expires_at, secure, http_only
		FROM cookies
		ORDER BY domain, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cookies: %w", err)
	}
	defer rows.Close()

	var cookies []models.StoredCookie
	for rows.Next() {
		var (
			c       models.StoredCookie
			expires sql.NullTime
		)
		if err := rows.Scan(&c.Name, &c.Domain, &c.Path, &c.Value, &expires, &c.Secure, &c.HTTPOnly); err != nil {
			return nil, fmt.Errorf("failed to scan cookie: %w", err)
		}
		if expires.Valid {
			c.Expires = expires.Time
		}
		cookies = append(cookies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return cookies, nil
}

// Clear deletes all cookies, signing the client out locally.
func (r *CookieRepository) Clear() (int64, error) {
	res, err := r.db.Exec("DELETE FROM cookies")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cookies: %w", err)
	}
	return res.RowsAffected()
}

// PurgeExpired deletes cookies whose expiry is at or before now.
func (r *CookieRepository) PurgeExpired(now time.Time) (int64, error) {
	res, err := r.db.Exec("DELETE FROM cookies WHERE expires_at IS NOT NULL AND expires_at <= ?", now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cookies: %w", err)
	}
	return res.RowsAffected()
}
