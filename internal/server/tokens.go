package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/vidnexus/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie names carrying the token pair.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

const (
	accessType  = "access"
	refreshType = "refresh"

	minSecretLength = 32
)

var (
	ErrTokenInvalid = errors.New("Token is invalid or expired")
	ErrTokenRevoked = errors.New("Token is blacklisted")
)

type tokenClaims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly issued access and refresh token.
type TokenPair struct {
	Access  string
	Refresh string
}

// Tokens issues and validates HS256 signed tokens and remembers revoked refresh ids.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

// NewTokens validates the secret and creates a token issuer.
func NewTokens(secret string, accessTTL, refreshTTL time.Duration) (*Tokens, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%w: jwt secret must be at least %d characters", shared.ErrInvalidConfig, minSecretLength)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("%w: token lifetimes must be positive", shared.ErrInvalidConfig)
	}
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
		revoked:    make(map[string]time.Time),
	}, nil
}

func (t *Tokens) issue(userID int64, kind string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := tokenClaims{
		UserID:    userID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Pair issues a new access and refresh token for userID.
func (t *Tokens) Pair(userID int64) (TokenPair, error) {
	access, err := t.issue(userID, accessType, t.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.issue(userID, refreshType, t.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Validate parses raw and checks its signature, expiry, type and revocation.
func (t *Tokens) Validate(raw, kind string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.TokenType != kind {
		return nil, ErrTokenInvalid
	}

	if kind == refreshType && t.isRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Rotate exchanges a refresh token for a new pair and revokes the old refresh id.
func (t *Tokens) Rotate(raw string) (int64, TokenPair, error) {
	claims, err := t.Validate(raw, refreshType)
	if err != nil {
		return 0, TokenPair{}, err
	}

	pair, err := t.Pair(claims.UserID)
	if err != nil {
		return 0, TokenPair{}, err
	}
	t.Revoke(claims)
	return claims.UserID, pair, nil
}

// Revoke blacklists a refresh token until it would have expired anyway.
func (t *Tokens) Revoke(claims *tokenClaims) {
	if claims == nil || claims.ID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for id, exp := range t.revoked {
		if now.After(exp) {
			delete(t.revoked, id)
		}
	}

	exp := now.Add(t.refreshTTL)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	t.revoked[claims.ID] = exp
}

func (t *Tokens) isRevoked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.revoked[id]
	return ok
}
