package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tokengen/internal/models"
	"github.com/desertthunder/tokengen/internal/services"
	"github.com/desertthunder/tokengen/internal/shared"
	"github.com/go-playground/validator/v10"
)

// credentialsForm is the body of POST /submit-credentials.
type credentialsForm struct {
	ClientID     string `validate:"required"`
	ClientSecret string `validate:"required"`
}

// WebHandler serves the browser flow: credential form, provider callback and manual refresh.
type WebHandler struct {
	provider    services.OAuthProvider
	sessions    *SessionManager
	redirectURI string
	validate    *validator.Validate
	logger      *log.Logger
}

func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	view := IndexView{Title: "Spotify Token Generator", RedirectURI: h.redirectURI}
	if err := render(w, http.StatusOK, "index", view); err != nil {
		h.logger.Error("failed to render index", "error", err)
	}
}

// SubmitCredentials resets the session, stores the submitted pair and redirects to the consent screen.
func (h *WebHandler) SubmitCredentials(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, h.logger, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	form := credentialsForm{
		ClientID:     strings.TrimSpace(r.PostForm.Get("client_id")),
		ClientSecret: strings.TrimSpace(r.PostForm.Get("client_secret")),
	}
	if err := h.validate.Struct(form); err != nil {
		writeError(w, r, h.logger, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	session := h.session(r)
	if err := session.SetCredentials(form.ClientID, form.ClientSecret); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.sessions.Save(r.Context(), session); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, h.provider.AuthorizeURL(form.ClientID), http.StatusFound)
}

// Callback exchanges the authorization code and shows the resulting tokens.
//
// Tokens are stored as soon as the exchange succeeds; an identity lookup failure after that
// leaves the session authorized with an empty user id.
func (h *WebHandler) Callback(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	if !session.HasCredentials() {
		writeError(w, r, h.logger, shared.ErrMissingCredentials)
		return
	}

	query := r.URL.Query()
	code := query.Get("code")
	if code == "" {
		if reason := query.Get("error"); reason != "" {
			writeError(w, r, h.logger, fmt.Errorf("%w: provider returned error %q", shared.ErrMissingCode, reason))
		} else {
			writeError(w, r, h.logger, shared.ErrMissingCode)
		}
		return
	}

	token, err := h.provider.Exchange(r.Context(), credentialsOf(session), code)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := session.Authorize(token.AccessToken, token.RefreshToken, ""); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.sessions.Save(r.Context(), session); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.provider.UserProfile(r.Context(), session.AccessToken)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	session.UserID = user.ID
	if err := h.sessions.Save(r.Context(), session); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("authorized", "session", session.ID, "user", user.ID)
	h.result(w, r, session, false)
}

// Refresh mints a new access token from the stored refresh token.
func (h *WebHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	if !session.HasCredentials() {
		writeError(w, r, h.logger, shared.ErrMissingCredentials)
		return
	}
	if !session.HasRefreshToken() {
		writeError(w, r, h.logger, shared.ErrNoRefreshToken)
		return
	}

	token, err := h.provider.Refresh(r.Context(), credentialsOf(session), session.RefreshToken)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := session.ApplyRefresh(token.AccessToken, token.RefreshToken); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.sessions.Save(r.Context(), session); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info("refreshed", "session", session.ID)
	h.result(w, r, session, true)
}

func (h *WebHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *WebHandler) result(w http.ResponseWriter, r *http.Request, session *models.Session, refreshed bool) {
	title := "Authorization Successful"
	if refreshed {
		title = "Access Token Refreshed"
	}

	view := ResultView{
		Title:        title,
		UserID:       session.UserID,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Refreshed:    refreshed,
	}
	if err := render(w, http.StatusOK, "result", view); err != nil {
		h.logger.Error("failed to render result", "path", r.URL.Path, "error", err)
	}
}

// session returns the request's session. Routes without the session middleware get an empty one.
func (h *WebHandler) session(r *http.Request) *models.Session {
	if s, ok := SessionFrom(r.Context()); ok {
		return s
	}
	return &models.Session{}
}

func credentialsOf(s *models.Session) services.Credentials {
	return services.Credentials{ClientID: s.ClientID, ClientSecret: s.ClientSecret}
}
