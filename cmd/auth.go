package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/session"
	"github.com/desertthunder/vidnexus/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthStatus probes the backend with the stored session.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	r.logger.Info("checking auth status", "api", r.gateway.BaseURL().String())
	state := r.auth.Status(ctx)
	user := r.gateway.Store().User()

	if cmd.Bool("json") {
		return r.writeJSON(models.AuthStatus{IsAuthenticated: state == session.Authenticated, User: user}, true)
	}

	r.writePlain("API: %s\n", r.gateway.BaseURL())
	if state != session.Authenticated {
		return r.writePlain("Authentication: ✗ Not authenticated\n")
	}
	r.writePlain("Authentication: ✓ Authenticated\n")
	if user != nil {
		r.writePlain("User: %s (id %d)\n", user.Username, user.ID)
	}
	return nil
}

// AuthLogin signs in with a username and password.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	username, err := r.flagOrPrompt(cmd, "username", "Username", false)
	if err != nil {
		return err
	}
	password, err := r.flagOrPrompt(cmd, "password", "Password", true)
	if err != nil {
		return err
	}

	r.logger.Info("signing in", "username", username)
	fields, err := r.auth.Login(ctx, username, password)
	if err != nil {
		r.printFieldErrors(fields)
		return err
	}

	r.logger.Info("authentication successful")
	return r.writePlain("✓ Signed in as %s\n", r.displayName(username))
}

// AuthRegister creates an account, which also signs it in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	var reg models.Registration
	var err error
	if reg.Username, err = r.flagOrPrompt(cmd, "username", "Username", false); err != nil {
		return err
	}
	if reg.Email, err = r.flagOrPrompt(cmd, "email", "Email", false); err != nil {
		return err
	}

	if reg.Password = cmd.String("password"); reg.Password != "" {
		reg.Password2 = reg.Password
	} else {
		if reg.Password, err = r.prompt("Password", true); err != nil {
			return err
		}
		if reg.Password2, err = r.prompt("Confirm password", true); err != nil {
			return err
		}
	}

	r.logger.Info("registering", "username", reg.Username, "email", reg.Email)
	fields, err := r.auth.Register(ctx, reg)
	if err != nil {
		r.printFieldErrors(fields)
		return err
	}

	return r.writePlain("✓ Account created, signed in as %s\n", r.displayName(reg.Username))
}

// AuthLogout ends the session. Local cookies are cleared whatever the backend answers.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	if err := r.auth.Logout(ctx); err != nil {
		r.logger.Warn("logout request failed, clearing local session anyway", "error", err)
	}

	n, err := r.cookies.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear stored cookies: %w", err)
	}
	r.logger.Debug("cleared stored cookies", "count", n)
	return r.writePlain("✓ Signed out\n")
}

// AuthImport seeds the session from cookies captured in a browser's "Copy as cURL".
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	if err := r.connect(); err != nil {
		return err
	}

	r.logger.Info("parsing cURL command for session cookies")

	var curl *shared.CurlRequest
	var err error
	if curlFile != "" {
		if curl, err = shared.ParseCurlFile(curlFile); err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		if curl, err = shared.ParseCurlCommand([]byte(curlCmd)); err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	cookies := curl.Cookies()
	if len(cookies) == 0 {
		return fmt.Errorf("%w: the cURL command carries no cookies", shared.ErrInvalidInput)
	}
	if !r.config.Session.PersistCookies {
		r.logger.Warn("session.persist_cookies is off; imported cookies only last for this command")
	}

	r.jar.Import(r.gateway.BaseURL(), cookies)
	r.logger.Info("imported cookies", "count", len(cookies))

	if r.auth.Status(ctx) != session.Authenticated {
		return fmt.Errorf("%w: imported cookies were not accepted", shared.ErrNotAuthenticated)
	}

	r.writePlain("✓ Imported %d cookies\n", len(cookies))
	if user := r.gateway.Store().User(); user != nil {
		r.writePlain("Signed in as %s\n", user.Username)
	}
	return nil
}

func (r *Runner) flagOrPrompt(cmd *cli.Command, flag, label string, secret bool) (string, error) {
	if v := cmd.String(flag); v != "" {
		return v, nil
	}
	v, err := r.prompt(label, secret)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, flag)
	}
	return v, nil
}

func (r *Runner) displayName(fallback string) string {
	if user := r.gateway.Store().User(); user != nil && user.Username != "" {
		return user.Username
	}
	return fallback
}

func (r *Runner) printFieldErrors(fields session.FieldErrors) {
	for _, name := range fields.Fields() {
		for _, msg := range fields[name] {
			if name == session.NonFieldErrors {
				r.writePlain("✗ %s\n", msg)
			} else {
				r.writePlain("✗ %s: %s\n", name, msg)
			}
		}
	}
}
