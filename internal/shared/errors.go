package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authorization errors
	ErrAuthorizationDenied = fmt.Errorf("authorization denied")
	ErrInvalidState        = fmt.Errorf("authorization state mismatch")
	ErrTokenExchangeFailed = fmt.Errorf("token exchange failed")
	ErrNotAuthenticated    = fmt.Errorf("not authenticated")
	ErrTimeout             = fmt.Errorf("operation timed out")

	// Catalog errors
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrNetwork            = fmt.Errorf("network error")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Storage errors
	ErrDatabase     = fmt.Errorf("database error")
	ErrNoMigrations = fmt.Errorf("no applied migrations")

	// Environment errors
	ErrBrowserUnavailable = fmt.Errorf("browser unavailable")

	// Input validation errors
	ErrEmptyQuery      = fmt.Errorf("empty search query")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
