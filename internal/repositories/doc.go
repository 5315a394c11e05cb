// Package repositories implements SQLite persistence for jukebox.
//
// The only durable state is the bearer token. [TokenRepository] stores it in
// the tokens table under the fixed key [AccessTokenKey] and satisfies
// [auth.TokenStore], so the CLI, terminal player and web server share one
// login across runs.
package repositories
