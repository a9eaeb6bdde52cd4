// Package services implements the client side of the Spotify OAuth 2.0 Authorization Code Grant.
//
// # OAuth Provider Interface
//
// [OAuthProvider] is the seam between the HTTP layer and the provider. [SpotifyService] implements it;
// tests substitute an httptest server by pointing the configured endpoints at it.
//
// Operations:
//   - [SpotifyService.AuthorizeURL] : pure, builds the consent URL (client_id, response_type, redirect_uri, scope)
//   - [SpotifyService.Exchange] : authorization_code grant, one attempt
//   - [SpotifyService.Refresh] : refresh_token grant, one attempt
//   - [SpotifyService.UserProfile] : bearer GET on /me
//
// Client credentials are supplied per call, since each browser session brings its own application.
//
// # Error Handling
//
// A non-2xx reply from the token or identity endpoint becomes an [UpstreamError], which matches
// [shared.ErrUpstreamRejected] under errors.Is and keeps the provider's body verbatim.
// Transport failures and undecodable bodies wrap [shared.ErrAPIRequest].
//
// Nothing is retried: authorization codes are single use and the refresh grant is user initiated.
package services
