package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrRefreshFailed      = fmt.Errorf("credential refresh failed")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrValidation         = fmt.Errorf("validation failed")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNoteNotFound       = fmt.Errorf("note not found")
	ErrGenerateNotes      = fmt.Errorf("failed to generate notes")
	ErrInvalidPath        = fmt.Errorf("invalid API path")

	// Cache errors
	ErrCacheMiss = fmt.Errorf("not found in cache")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidURL      = fmt.Errorf("invalid YouTube URL")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
