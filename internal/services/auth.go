package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/session"
	"github.com/desertthunder/vidnexus/internal/shared"
)

const (
	LoginFailedMessage    = "Invalid credentials. Please try again."
	RegisterFailedMessage = "Registration failed. Please try again."
)

// Authenticator is the subset of the gateway the auth flows need.
type Authenticator interface {
	ProbeStatus(ctx context.Context) session.State
	Login(ctx context.Context, creds models.Credentials) error
	Register(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context) error
}

// AuthService runs the login, registration and logout flows.
type AuthService struct {
	gw Authenticator
}

func NewAuthService(gw Authenticator) *AuthService {
	return &AuthService{gw: gw}
}

// Status probes the backend. It never fails; any problem reads as signed out.
func (a *AuthService) Status(ctx context.Context) session.State {
	return a.gw.ProbeStatus(ctx)
}

// Login signs in. A rejected form returns its field errors, falling back to a generic message.
func (a *AuthService) Login(ctx context.Context, username, password string) (session.FieldErrors, error) {
	creds := models.Credentials{Username: strings.TrimSpace(username), Password: password}
	return formErrors(a.gw.Login(ctx, creds), LoginFailedMessage)
}

// Register creates an account and signs in.
func (a *AuthService) Register(ctx context.Context, reg models.Registration) (session.FieldErrors, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	return formErrors(a.gw.Register(ctx, reg), RegisterFailedMessage)
}

// Logout ends the session. The returned error only reports the backend's answer.
func (a *AuthService) Logout(ctx context.Context) error {
	return a.gw.Logout(ctx)
}

// formErrors splits a rejected form from other failures.
func formErrors(err error, fallback string) (session.FieldErrors, error) {
	if err == nil {
		return nil, nil
	}

	var verr *session.ValidationError
	if errors.As(err, &verr) {
		fields := verr.Messages(fallback)
		return fields, fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, summarize(fields))
	}
	return nil, err
}

func summarize(fields session.FieldErrors) string {
	parts := make([]string, 0, len(fields))
	for _, k := range fields.Fields() {
		parts = append(parts, strings.Join(fields[k], " "))
	}
	return strings.Join(parts, " ")
}
