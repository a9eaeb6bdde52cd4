// Package models defines the server-side session record for the OAuth authorization code flow.
//
// A [Session] is scoped to one browser and owns every secret the flow produces:
//   - the user supplied client id and secret (written together by [Session.SetCredentials])
//   - the access and refresh tokens returned by the provider
//   - the provider user id resolved from the identity endpoint
//
// The record moves through three states, reported by [Session.State]:
//
//	EMPTY --SetCredentials--> CREDENTIALED --Authorize--> AUTHORIZED --ApplyRefresh--> AUTHORIZED
//
// Submitting new credentials from any state returns to CREDENTIALED and discards tokens and identity,
// so tokens from a previous application are never attributed to the new one.
// Failed calls leave the record untouched; callers only mutate after a successful exchange.
//
// The [SessionStore] interface abstracts persistence; implementations live in the repositories package.
package models
