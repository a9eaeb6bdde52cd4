package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tokengen/internal/server"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgAuthorized MsgKind = iota
	MsgFailed
)

// authorizedMsg is the constructor for [MsgAuthorized]
func authorizedMsg(result server.OAuthResult) Msg {
	return Msg{kind: MsgAuthorized, data: result}
}

// failedMsg is the constructor for [MsgFailed]
func failedMsg(err error) Msg {
	return Msg{kind: MsgFailed, data: err}
}
