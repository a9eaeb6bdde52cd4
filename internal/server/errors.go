package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tokengen/internal/services"
	"github.com/desertthunder/tokengen/internal/shared"
)

const startOver = "Client credentials not found in session. Please start over."

// classify maps an error to the status code and page shown to the user.
// Only upstream bodies are echoed; anything unexpected is reported generically.
func classify(err error) (int, ErrorView) {
	var upstream *services.UpstreamError

	switch {
	case errors.As(err, &upstream):
		return http.StatusBadRequest, ErrorView{
			Title:   "Spotify rejected the request",
			Message: http.StatusText(upstream.StatusCode),
			Detail:  upstream.Body,
		}
	case errors.Is(err, shared.ErrMissingCredentials):
		return http.StatusBadRequest, ErrorView{Title: "Session expired", Message: startOver}
	case errors.Is(err, shared.ErrNoRefreshToken):
		return http.StatusBadRequest, ErrorView{
			Title:   "No refresh token",
			Message: "No refresh token found in session. Please start over.",
		}
	case errors.Is(err, shared.ErrMissingCode):
		return http.StatusBadRequest, ErrorView{
			Title:   "Authorization failed",
			Message: "No authorization code was returned.",
			Detail:  detail(err, shared.ErrMissingCode),
		}
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest, ErrorView{
			Title:   "Invalid input",
			Message: "Both Client ID and Client Secret are required.",
		}
	default:
		return http.StatusInternalServerError, ErrorView{
			Title:   "Error",
			Message: "An unexpected error occurred",
		}
	}
}

// detail returns the text err adds on top of sentinel, if any.
func detail(err, sentinel error) string {
	if err == sentinel {
		return ""
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status, view := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	if rerr := render(w, status, "error", view); rerr != nil {
		logger.Error("failed to render error page", "error", rerr)
	}
}
