package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tokengen/internal/models"
	"github.com/desertthunder/tokengen/internal/repositories"
	"github.com/desertthunder/tokengen/internal/services"
	"github.com/desertthunder/tokengen/internal/shared"
	tu "github.com/desertthunder/tokengen/internal/testing"
)

const (
	testSecret      = "0123456789abcdef0123456789abcdef"
	testRedirectURI = "http://localhost:8888/callback"
)

type testEnv struct {
	provider *tu.FakeProvider
	store    *repositories.MemorySessionStore
	sessions *SessionManager
	server   *httptest.Server
	client   *http.Client
	logs     *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logs := &bytes.Buffer{}
	logger := shared.NewLogger(logs)
	provider := tu.NewFakeProvider(t)

	spotify, err := services.NewSpotifyService(services.SpotifyOpts{
		Provider:    provider.ProviderConfig(),
		RedirectURI: testRedirectURI,
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	store := repositories.NewMemorySessionStore(30*time.Minute, nil)
	sessions, err := NewSessionManager(SessionOpts{Store: store, Secret: testSecret, Logger: logger})
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	app, err := New(AppOpts{Provider: spotify, Sessions: sessions, RedirectURI: testRedirectURI, Logger: logger})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	server := httptest.NewServer(app)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testEnv{provider: provider, store: store, sessions: sessions, server: server, client: client, logs: logs}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()

	resp, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (e *testEnv) submit(t *testing.T, clientID, clientSecret string) (*http.Response, string) {
	t.Helper()

	form := url.Values{"client_id": {clientID}, "client_secret": {clientSecret}}
	resp, err := e.client.PostForm(e.server.URL+"/submit-credentials", form)
	if err != nil {
		t.Fatalf("POST /submit-credentials failed: %v", err)
	}
	return resp, readBody(t, resp)
}

// session returns the stored session the client's cookie points at.
func (e *testEnv) session(t *testing.T) *models.Session {
	t.Helper()

	u, _ := url.Parse(e.server.URL)
	for _, c := range e.client.Jar.Cookies(u) {
		if c.Name != e.sessions.name {
			continue
		}

		var id string
		if err := e.sessions.codec.Decode(c.Name, c.Value, &id); err != nil {
			t.Fatalf("failed to decode session cookie: %v", err)
		}
		s, err := e.store.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("failed to load session %s: %v", id, err)
		}
		return s
	}

	t.Fatal("no session cookie set")
	return nil
}

// authorize runs a complete credential submission and callback.
func (e *testEnv) authorize(t *testing.T) {
	t.Helper()

	if resp, _ := e.submit(t, "cid", "csecret"); resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 from submit, got %d", resp.StatusCode)
	}
	if resp, body := e.get(t, "/callback?code=good"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from callback, got %d: %s", resp.StatusCode, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(b)
}

func TestWebFlow(t *testing.T) {
	t.Run("Index", func(t *testing.T) {
		env := newTestEnv(t)
		resp, body := env.get(t, "/")

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, `action="/submit-credentials"`) {
			t.Error("expected credential form")
		}
		if !strings.Contains(body, testRedirectURI) {
			t.Error("expected redirect URI to be shown")
		}
		if env.store.Len() != 1 {
			t.Errorf("expected first visit to create a session, got %d", env.store.Len())
		}
	})

	t.Run("Session Cookie", func(t *testing.T) {
		env := newTestEnv(t)
		resp, _ := env.get(t, "/")

		var cookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == "tokengen_session" {
				cookie = c
			}
		}
		if cookie == nil {
			t.Fatal("expected session cookie")
		}
		if !cookie.HttpOnly {
			t.Error("expected HttpOnly cookie")
		}
		if cookie.SameSite != http.SameSiteLaxMode {
			t.Errorf("expected SameSite=Lax, got %v", cookie.SameSite)
		}

		first := env.session(t).ID
		env.get(t, "/")
		if env.session(t).ID != first {
			t.Error("expected the cookie to keep the same session")
		}
		if env.store.Len() != 1 {
			t.Errorf("expected one session, got %d", env.store.Len())
		}
	})

	t.Run("Tampered Cookie Starts A New Session", func(t *testing.T) {
		env := newTestEnv(t)
		env.authorize(t)
		before := env.session(t).ID

		u, _ := url.Parse(env.server.URL)
		env.client.Jar.SetCookies(u, []*http.Cookie{{Name: "tokengen_session", Value: "forged", Path: "/"}})

		resp, body := env.get(t, "/refresh")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "not found in session") {
			t.Errorf("expected start over message, got %s", body)
		}
		if env.session(t).ID == before {
			t.Error("expected a fresh session")
		}
	})

	t.Run("Submit Credentials Redirects To Consent Screen", func(t *testing.T) {
		env := newTestEnv(t)
		resp, _ := env.submit(t, "  my client  ", "my secret")

		if resp.StatusCode != http.StatusFound {
			t.Fatalf("expected 302, got %d", resp.StatusCode)
		}

		loc, err := url.Parse(resp.Header.Get("Location"))
		if err != nil {
			t.Fatalf("invalid Location: %v", err)
		}
		if loc.Path != "/authorize" {
			t.Errorf("expected authorize path, got %s", loc.Path)
		}

		query := loc.Query()
		expected := map[string]string{
			"client_id":     "my client",
			"response_type": "code",
			"redirect_uri":  testRedirectURI,
			"scope":         "playlist-modify-public user-read-private",
		}
		if len(query) != len(expected) {
			t.Errorf("expected exactly %d parameters, got %v", len(expected), query)
		}
		for k, v := range expected {
			if got := query.Get(k); got != v {
				t.Errorf("expected %s=%q, got %q", k, v, got)
			}
		}
		if !strings.Contains(loc.RawQuery, "scope=playlist-modify-public+user-read-private") {
			t.Errorf("expected scope spaces encoded as '+', got %s", loc.RawQuery)
		}

		s := env.session(t)
		if s.ClientID != "my client" || s.ClientSecret != "my secret" {
			t.Errorf("expected trimmed credentials in session, got %q/%q", s.ClientID, s.ClientSecret)
		}
		if s.State() != models.StateCredentialed {
			t.Errorf("expected credentialed session, got %s", s.State())
		}
	})

	t.Run("Submit Credentials Rejects Empty Fields", func(t *testing.T) {
		tests := []struct {
			name         string
			clientID     string
			clientSecret string
		}{
			{"Empty ID", "", "secret"},
			{"Empty Secret", "id", ""},
			{"Whitespace ID", "   ", "secret"},
			{"Both Empty", "", ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)
				resp, _ := env.submit(t, tt.clientID, tt.clientSecret)

				if resp.StatusCode != http.StatusBadRequest {
					t.Errorf("expected 400, got %d", resp.StatusCode)
				}
				if loc := resp.Header.Get("Location"); loc != "" {
					t.Errorf("expected no redirect, got %s", loc)
				}
				if env.session(t).HasCredentials() {
					t.Error("expected no credentials stored")
				}
			})
		}
	})

	t.Run("Callback Without Credentials", func(t *testing.T) {
		env := newTestEnv(t)
		resp, body := env.get(t, "/callback?code=abc")

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "credentials not found") {
			t.Errorf("expected credentials not found message, got %s", body)
		}
		if env.provider.Calls() != 0 {
			t.Errorf("expected no outbound calls, got %d", env.provider.Calls())
		}
	})

	t.Run("Callback Without Code", func(t *testing.T) {
		env := newTestEnv(t)
		env.submit(t, "cid", "csecret")

		resp, _ := env.get(t, "/callback")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if env.provider.Calls() != 0 {
			t.Errorf("expected no outbound calls, got %d", env.provider.Calls())
		}
	})

	t.Run("Callback With Provider Error", func(t *testing.T) {
		env := newTestEnv(t)
		env.submit(t, "cid", "csecret")

		resp, body := env.get(t, "/callback?error=access_denied")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "access_denied") {
			t.Errorf("expected provider error in page, got %s", body)
		}
	})

	t.Run("Callback With Rejected Code", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.SetTokenResponse(http.StatusBadRequest, tu.JSONError("invalid_grant", "Invalid authorization code"))
		env.submit(t, "cid", "csecret")

		resp, body := env.get(t, "/callback?code=bad")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "invalid_grant") {
			t.Errorf("expected upstream body in page, got %s", body)
		}

		s := env.session(t)
		if s.AccessToken != "" || s.RefreshToken != "" {
			t.Errorf("expected no tokens stored, got %q/%q", s.AccessToken, s.RefreshToken)
		}
		if s.State() != models.StateCredentialed {
			t.Errorf("expected session to stay credentialed, got %s", s.State())
		}
	})

	t.Run("Callback Success", func(t *testing.T) {
		env := newTestEnv(t)
		env.submit(t, "cid", "csecret")

		resp, body := env.get(t, "/callback?code=good")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
		}

		s := env.session(t)
		if s.AccessToken != "AT1" || s.RefreshToken != "RT1" || s.UserID != "user42" {
			t.Errorf("expected AT1/RT1/user42, got %s/%s/%s", s.AccessToken, s.RefreshToken, s.UserID)
		}
		for _, want := range []string{"AT1", "RT1", "user42"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected %s on result page", want)
			}
		}
		if strings.Contains(body, "csecret") {
			t.Error("client secret must never be rendered")
		}

		forms := env.provider.TokenRequests()
		if len(forms) != 1 {
			t.Fatalf("expected one token request, got %d", len(forms))
		}
		form := forms[0]
		if form.Get("grant_type") != "authorization_code" || form.Get("code") != "good" {
			t.Errorf("unexpected token form: %v", form)
		}
		if form.Get("client_id") != "cid" || form.Get("client_secret") != "csecret" {
			t.Errorf("expected credentials in form body, got %v", form)
		}
		if form.Get("redirect_uri") != testRedirectURI {
			t.Errorf("expected redirect_uri %s, got %s", testRedirectURI, form.Get("redirect_uri"))
		}
		if bearers := env.provider.Bearers(); len(bearers) != 1 || bearers[0] != "Bearer AT1" {
			t.Errorf("expected identity lookup with AT1, got %v", bearers)
		}
		if strings.Contains(env.logs.String(), "csecret") {
			t.Error("client secret must never be logged")
		}
	})

	t.Run("Callback Identity Failure Keeps Tokens", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.SetProfileResponse(http.StatusUnauthorized, `{"error":{"status":401,"message":"Invalid access token"}}`)
		env.submit(t, "cid", "csecret")

		resp, body := env.get(t, "/callback?code=good")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "Invalid access token") {
			t.Errorf("expected upstream body, got %s", body)
		}

		s := env.session(t)
		if s.AccessToken != "AT1" || s.UserID != "" {
			t.Errorf("expected tokens without user id, got %s/%s", s.AccessToken, s.UserID)
		}
	})

	t.Run("Refresh Success", func(t *testing.T) {
		env := newTestEnv(t)
		env.authorize(t)
		env.provider.SetTokenResponse(http.StatusOK, `{"access_token":"AT2","token_type":"Bearer","expires_in":3600}`)

		resp, body := env.get(t, "/refresh")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
		}

		s := env.session(t)
		if s.AccessToken != "AT2" {
			t.Errorf("expected access token AT2, got %s", s.AccessToken)
		}
		if s.RefreshToken != "RT1" || s.UserID != "user42" {
			t.Errorf("expected RT1/user42 unchanged, got %s/%s", s.RefreshToken, s.UserID)
		}
		if !strings.Contains(body, "AT2") || !strings.Contains(body, "Refreshed") {
			t.Errorf("expected refreshed result page, got %s", body)
		}

		forms := env.provider.TokenRequests()
		last := forms[len(forms)-1]
		if last.Get("grant_type") != "refresh_token" || last.Get("refresh_token") != "RT1" {
			t.Errorf("unexpected refresh form: %v", last)
		}
	})

	t.Run("Refresh Rotates Token", func(t *testing.T) {
		env := newTestEnv(t)
		env.authorize(t)
		env.provider.SetTokenResponse(http.StatusOK, `{"access_token":"AT2","refresh_token":"RT2","token_type":"Bearer"}`)

		if resp, _ := env.get(t, "/refresh"); resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if s := env.session(t); s.RefreshToken != "RT2" {
			t.Errorf("expected rotated refresh token RT2, got %s", s.RefreshToken)
		}
	})

	t.Run("Refresh Without Credentials", func(t *testing.T) {
		env := newTestEnv(t)
		resp, body := env.get(t, "/refresh")

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "not found in session") {
			t.Errorf("expected start over message, got %s", body)
		}
		if env.provider.Calls() != 0 {
			t.Errorf("expected no outbound calls, got %d", env.provider.Calls())
		}
	})

	t.Run("Refresh Without Refresh Token", func(t *testing.T) {
		env := newTestEnv(t)
		env.submit(t, "cid", "csecret")

		resp, _ := env.get(t, "/refresh")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if env.provider.Calls() != 0 {
			t.Errorf("expected no outbound calls, got %d", env.provider.Calls())
		}
	})

	t.Run("Refresh Rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.authorize(t)
		env.provider.SetTokenResponse(http.StatusBadRequest, tu.JSONError("invalid_grant", "Refresh token revoked"))

		resp, body := env.get(t, "/refresh")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "Refresh token revoked") {
			t.Errorf("expected upstream body, got %s", body)
		}
		if s := env.session(t); s.AccessToken != "AT1" {
			t.Errorf("expected access token unchanged, got %s", s.AccessToken)
		}
	})

	t.Run("Refresh Malformed Response", func(t *testing.T) {
		env := newTestEnv(t)
		env.authorize(t)
		env.provider.SetTokenResponse(http.StatusOK, `not json`)

		resp, body := env.get(t, "/refresh")
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "unexpected error") {
			t.Errorf("expected generic message, got %s", body)
		}
	})

	t.Run("Resubmit Clears Previous Authorization", func(t *testing.T) {
		env := newTestEnv(t)
		env.authorize(t)

		resp, _ := env.submit(t, "other", "secret2")
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("expected 302, got %d", resp.StatusCode)
		}

		s := env.session(t)
		if s.AccessToken != "" || s.RefreshToken != "" || s.UserID != "" {
			t.Errorf("expected token state cleared, got %s/%s/%s", s.AccessToken, s.RefreshToken, s.UserID)
		}
		if s.ClientID != "other" || s.ClientSecret != "secret2" {
			t.Errorf("expected new credentials, got %s/%s", s.ClientID, s.ClientSecret)
		}
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		env := newTestEnv(t)
		env.authorize(t)

		jar, _ := cookiejar.New(nil)
		other := &testEnv{
			provider: env.provider, store: env.store, sessions: env.sessions, server: env.server,
			client: &http.Client{Jar: jar, CheckRedirect: env.client.CheckRedirect},
		}

		resp, _ := other.get(t, "/refresh")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected second browser to have no credentials, got %d", resp.StatusCode)
		}
		if env.session(t).UserID != "user42" {
			t.Error("expected first session untouched")
		}
	})
}

func TestRouter(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Healthz", func(t *testing.T) {
		resp, body := env.get(t, "/healthz")
		if resp.StatusCode != http.StatusOK || body != "ok" {
			t.Errorf("expected 200 ok, got %d %q", resp.StatusCode, body)
		}
		for _, c := range resp.Cookies() {
			if c.Name == "tokengen_session" {
				t.Error("healthz must not create sessions")
			}
		}
	})

	t.Run("Method Not Allowed", func(t *testing.T) {
		resp, _ := env.get(t, "/submit-credentials")
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", resp.StatusCode)
		}
		if allow := resp.Header.Get("Allow"); allow != http.MethodPost {
			t.Errorf("expected Allow: POST, got %q", allow)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		resp, _ := env.get(t, "/nope")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("Security Headers", func(t *testing.T) {
		resp, _ := env.get(t, "/")
		if resp.Header.Get("X-Frame-Options") != "DENY" {
			t.Error("expected X-Frame-Options: DENY")
		}
		if resp.Header.Get("Cache-Control") != "no-store" {
			t.Error("expected Cache-Control: no-store")
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("first"), mark("second"))
		r.HandleFunc(http.MethodGet, "/x", func(w http.ResponseWriter, r *http.Request) {})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
		if strings.Join(order, ",") != "first,second" {
			t.Errorf("expected first,second, got %v", order)
		}
	})

	t.Run("Recoverer", func(t *testing.T) {
		r := NewBasicRouter()
		r.Use(Recoverer(shared.NewLogger(&bytes.Buffer{})))
		r.HandleFunc(http.MethodGet, "/panic", func(w http.ResponseWriter, r *http.Request) { panic("boom") })

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestSessionManager(t *testing.T) {
	store := repositories.NewMemorySessionStore(time.Minute, nil)

	t.Run("Requires Secret", func(t *testing.T) {
		_, err := NewSessionManager(SessionOpts{Store: store, Secret: "short"})
		if !errors.Is(err, shared.ErrMissingSecret) {
			t.Errorf("expected ErrMissingSecret, got %v", err)
		}
	})

	t.Run("Requires Store", func(t *testing.T) {
		_, err := NewSessionManager(SessionOpts{Secret: testSecret})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("Expired Session Is Replaced", func(t *testing.T) {
		now := time.Now()
		clock := func() time.Time { return now }
		store := repositories.NewMemorySessionStore(time.Minute, clock)
		m, err := NewSessionManager(SessionOpts{Store: store, Secret: testSecret, Idle: time.Minute, Now: clock})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var seen []string
		h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := SessionFrom(r.Context())
			seen = append(seen, s.ID)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		cookie := rec.Result().Cookies()[0]

		now = now.Add(2 * time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		h.ServeHTTP(httptest.NewRecorder(), req)

		if len(seen) != 2 || seen[0] == seen[1] {
			t.Errorf("expected a new session after expiry, got %v", seen)
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Upstream", &services.UpstreamError{StatusCode: 400, Body: "bad"}, http.StatusBadRequest},
		{"Missing Credentials", shared.ErrMissingCredentials, http.StatusBadRequest},
		{"No Refresh Token", shared.ErrNoRefreshToken, http.StatusBadRequest},
		{"Missing Code", shared.ErrMissingCode, http.StatusBadRequest},
		{"Invalid Input", shared.ErrInvalidInput, http.StatusBadRequest},
		{"Transport", shared.ErrAPIRequest, http.StatusInternalServerError},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, view := classify(tt.err)
			if status != tt.status {
				t.Errorf("expected %d, got %d", tt.status, status)
			}
			if status == http.StatusInternalServerError && strings.Contains(view.Message, tt.err.Error()) {
				t.Error("internal errors must not leak details")
			}
		})
	}
}
