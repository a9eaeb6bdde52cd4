package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingSecret = fmt.Errorf("missing session secret key")

	// Session state errors
	ErrSessionNotFound    = fmt.Errorf("session not found")
	ErrMissingCredentials = fmt.Errorf("client credentials not found in session")
	ErrNoRefreshToken     = fmt.Errorf("no refresh token available")
	ErrInvalidSession     = fmt.Errorf("invalid session")

	// Authorization flow errors
	ErrMissingCode      = fmt.Errorf("missing authorization code")
	ErrInvalidState     = fmt.Errorf("invalid state parameter")
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrUpstreamRejected = fmt.Errorf("provider rejected the request")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
