package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tokengen/internal/server"
	"github.com/desertthunder/tokengen/internal/shared"
	"golang.org/x/oauth2"
)

// LoginModel waits for the callback of the CLI login flow and shows the tokens it produced.
type LoginModel struct {
	authURL   string
	results   <-chan server.OAuthResult
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	token     *oauth2.Token
	userID    string
	err       error
	done      bool
	cancelled bool
}

// NewLoginModel creates a model that reads the flow result from results.
func NewLoginModel(authURL string, results <-chan server.OAuthResult) *LoginModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ok

	return &LoginModel{
		authURL: authURL,
		results: results,
		spinner: s,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForResult())
}

// Update handles incoming messages and updates the model state.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			if !m.done {
				m.cancelled = true
			}
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgAuthorized:
			result := msg.data.(server.OAuthResult)
			m.token, m.userID, m.err = result.Token, result.UserID, result.Error()
		case MsgFailed:
			m.err = msg.data.(error)
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the waiting screen or the flow result.
func (m *LoginModel) View() string {
	var b strings.Builder

	switch {
	case m.cancelled:
		b.WriteString(styles.warn.Render("Login cancelled."))
		b.WriteString("\n")
	case !m.done:
		b.WriteString(styles.title.Render("Spotify Login"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s Waiting for authorization in your browser...\n\n", m.spinner.View())
		b.WriteString(styles.help.Render("If the browser did not open, visit:"))
		b.WriteString("\n")
		b.WriteString(styles.value.Render(m.authURL))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	default:
		b.WriteString(styles.ok.Render("✓ Authorization Successful"))
		b.WriteString("\n\n")
		m.field(&b, "User ID", m.userID)
		m.field(&b, "Access Token", m.token.AccessToken)
		m.field(&b, "Refresh Token", m.token.RefreshToken)
	}

	return b.String()
}

func (m *LoginModel) field(b *strings.Builder, label, value string) {
	b.WriteString(styles.label.Render(label))
	b.WriteString("\n")
	b.WriteString(styles.value.Render(value))
	b.WriteString("\n")
}

// Result returns the token and user id once the flow finished.
// A quit before the callback arrived reports [shared.ErrAuthFailed].
func (m *LoginModel) Result() (*oauth2.Token, string, error) {
	switch {
	case m.cancelled:
		return nil, "", fmt.Errorf("%w: login cancelled", shared.ErrAuthFailed)
	case m.err != nil:
		return nil, "", m.err
	case m.token == nil:
		return nil, "", fmt.Errorf("%w: no result received", shared.ErrAuthFailed)
	default:
		return m.token, m.userID, nil
	}
}

func (m *LoginModel) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-m.results
		if !ok {
			return failedMsg(fmt.Errorf("%w: callback server closed", shared.ErrAuthFailed))
		}
		return authorizedMsg(result)
	}
}
