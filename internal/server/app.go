package server

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tokengen/internal/services"
	"github.com/desertthunder/tokengen/internal/shared"
	"github.com/go-playground/validator/v10"
)

// AppOpts configures the web application.
type AppOpts struct {
	Provider    services.OAuthProvider
	Sessions    *SessionManager
	RedirectURI string
	Logger      *log.Logger
}

// App is the token generator web application.
type App struct {
	router *BasicRouter
	web    *WebHandler
}

// New builds the application router.
func New(opts AppOpts) (*App, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("%w: provider", shared.ErrMissingConfig)
	}
	if opts.Sessions == nil {
		return nil, fmt.Errorf("%w: session manager", shared.ErrMissingConfig)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	logger := shared.WithLogger(opts.Logger, "component", "web")
	web := &WebHandler{
		provider:    opts.Provider,
		sessions:    opts.Sessions,
		redirectURI: opts.RedirectURI,
		validate:    validator.New(),
		logger:      logger,
	}

	router := NewBasicRouter()
	router.Use(Recoverer(logger), RequestLogger(logger), SecurityHeaders())

	withSession := opts.Sessions.Middleware()
	router.Handle(http.MethodGet, "/{$}", withSession(http.HandlerFunc(web.Index)))
	router.Handle(http.MethodPost, "/submit-credentials", withSession(http.HandlerFunc(web.SubmitCredentials)))
	router.Handle(http.MethodGet, "/callback", withSession(http.HandlerFunc(web.Callback)))
	router.Handle(http.MethodGet, "/refresh", withSession(http.HandlerFunc(web.Refresh)))
	router.HandleFunc(http.MethodGet, "/healthz", web.Healthz)

	return &App{router: router, web: web}, nil
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
