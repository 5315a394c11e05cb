// Package server provides HTTP routing, middleware, and the OAuth callback handler used by the CLI login.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
// [RequestLogger] tags each request with a generated id (also returned in the
// X-Request-ID header) and logs method, path, status and duration.
// [Recoverer] turns handler panics into 500 responses.
//
// # OAuth Callback Handler
//
// [OAuthHandler] serves the redirect URI during `jukebox auth login`. It hands
// the callback URL to [auth.Flow.CompleteLogin], which checks the state,
// exchanges the code and stores the token, then renders a success or error
// page and reports the outcome on [OAuthHandler.Result].
//
// It only processes one callback to prevent replay attacks.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
