package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/vidnexus/internal/session"
	"github.com/desertthunder/vidnexus/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request through the session gateway
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	if err := r.connect(); err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp, !cmd.Bool("json"))
}

// APIPost makes a direct POST request through the session gateway
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	if err := r.connect(); err != nil {
		return err
	}

	r.logger.Info("POST request", "path", path)

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp, true)
}

// APIDelete makes a direct DELETE request through the session gateway
func (r *Runner) APIDelete(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	if err := r.connect(); err != nil {
		return err
	}

	r.logger.Info("DELETE request", "path", path)

	resp, err := r.api.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && len(resp.Body) == 0 {
		return r.writePlain("✓ %d\n", resp.StatusCode)
	}
	return r.writeResponse(resp, true)
}

// writeResponse prints the body, returning an error for non-2xx statuses after printing it.
func (r *Runner) writeResponse(resp *session.Response, pretty bool) error {
	var err error
	if resp.IsJSON {
		err = r.writeJSON(resp.JSONData, pretty)
	} else if len(resp.Body) > 0 {
		err = r.writePlain("%s\n", resp.Body)
	}
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}
	return nil
}
