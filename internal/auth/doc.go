// Package auth implements the authorization-code login against the Spotify accounts service.
//
// A [Flow] owns the [oauth2.Config] built from configuration. Logging in is two steps:
//
//  1. [Flow.BeginLogin] builds the authorize URL for a random state and hands it
//     to a navigator (the system browser for the CLI, an HTTP redirect for the
//     web server).
//  2. [Flow.CompleteLogin] parses the provider's redirect back to the callback
//     URL, exchanges the code for a token and writes it to a [TokenStore].
//
// The exchange always runs in this process so the client secret never reaches a browser.
//
// # Errors
//
// A callback without a code (including a provider error) returns
// [shared.ErrAuthorizationDenied] without any network call. A state that does
// not match returns [shared.ErrInvalidState]. Any failure of the exchange
// request returns [shared.ErrTokenExchangeFailed].
package auth
