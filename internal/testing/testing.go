// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/desertthunder/tokengen/internal/shared"
)

// FakeProvider is an httptest stand-in for the Spotify accounts service and Web API.
//
// Token and profile replies are configurable per test; every request is recorded.
type FakeProvider struct {
	Server *httptest.Server

	mu            sync.Mutex
	tokenStatus   int
	tokenBody     string
	profileStatus int
	profileBody   string
	tokenForms    []url.Values
	bearers       []string
}

// NewFakeProvider starts a fake provider that answers the token endpoint with AT1/RT1 and /me with user42.
func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()

	p := &FakeProvider{
		tokenStatus:   http.StatusOK,
		tokenBody:     `{"access_token":"AT1","refresh_token":"RT1","token_type":"Bearer","expires_in":3600}`,
		profileStatus: http.StatusOK,
		profileBody:   `{"id":"user42","display_name":"User Forty Two"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token", p.handleToken)
	mux.HandleFunc("GET /v1/me", p.handleProfile)

	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Server.Close)
	return p
}

// ProviderConfig returns provider settings pointing at the fake.
func (p *FakeProvider) ProviderConfig() shared.ProviderConfig {
	cfg := shared.DefaultConfig().Provider
	cfg.AuthorizeURL = p.Server.URL + "/authorize"
	cfg.TokenURL = p.Server.URL + "/api/token"
	cfg.APIURL = p.Server.URL + "/v1"
	cfg.RateLimit = 0
	return cfg
}

// SetTokenResponse sets the status and JSON body returned by the token endpoint.
func (p *FakeProvider) SetTokenResponse(status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokenStatus, p.tokenBody = status, body
}

// SetProfileResponse sets the status and JSON body returned by /me.
func (p *FakeProvider) SetProfileResponse(status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profileStatus, p.profileBody = status, body
}

// TokenRequests returns the form bodies posted to the token endpoint.
func (p *FakeProvider) TokenRequests() []url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]url.Values(nil), p.tokenForms...)
}

// Bearers returns the Authorization headers sent to /me.
func (p *FakeProvider) Bearers() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.bearers...)
}

// Calls returns the total number of requests the fake has served.
func (p *FakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tokenForms) + len(p.bearers)
}

func (p *FakeProvider) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	p.tokenForms = append(p.tokenForms, r.PostForm)
	status, body := p.tokenStatus, p.tokenBody
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (p *FakeProvider) handleProfile(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.bearers = append(p.bearers, r.Header.Get("Authorization"))
	status, body := p.profileStatus, p.profileBody
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// JSONError renders an OAuth style error body.
func JSONError(code, description string) string {
	b, _ := json.Marshal(map[string]string{"error": code, "error_description": description})
	return string(b)
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
