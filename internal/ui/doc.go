// Package ui implements the terminal view of the CLI login flow using bubbletea's Elm architecture.
//
// [LoginModel] shows a spinner and the consent URL while the local callback server waits for the provider,
// then renders the access token, refresh token and user id (or the error) styled with lipgloss.
//
// The result arrives through the channel returned by server.OAuthHandler.Result, read by a tea.Cmd so the
// update loop never blocks.
package ui
