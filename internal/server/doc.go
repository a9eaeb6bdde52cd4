// Package server provides HTTP routing, middleware, sessions and handlers for the token generator.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Web Application
//
// [New] builds the browser flow:
//
//	GET  /                    credential form
//	POST /submit-credentials  store client id/secret in the session, redirect to the consent screen
//	GET  /callback            exchange the code, resolve the user, show the tokens
//	GET  /refresh             mint a new access token from the stored refresh token
//	GET  /healthz             liveness probe
//
// Sessions live server-side in a [models.SessionStore]. The browser only holds a cookie signed with
// the server secret that names the session id. See [SessionManager].
//
// # OAuth Callback Handler
//
// [OAuthHandler] serves the callback for the CLI login command. It validates the state parameter,
// exchanges the authorization code, looks up the user and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
