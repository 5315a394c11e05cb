// Package services implements the catalog client used to find playable tracks.
//
// # Catalog Interface
//
// [Catalog] is the one read operation the player needs: a free-text track
// search authenticated with a bearer token.
//
// # Spotify Implementation
//
// [SpotifyCatalog] calls GET /search with type=track and converts the
// response to [models.Track]. Tracks without a preview clip are dropped and
// every remaining preview URL is passed through [models.WithPreviewDuration].
// Requests are paced by a [rate.Limiter]; there is no retry.
//
// # Error Handling
//
// Errors wrap sentinels from the shared package:
//   - [shared.ErrEmptyQuery] : blank query, no request sent
//   - [shared.ErrUnauthorized] : 401, the token is missing, expired or revoked
//   - [shared.ErrNetwork] : the request never produced a response
//   - [shared.ErrServiceUnavailable] : 503 from the API
//   - [shared.ErrAPIRequest] : any other non-2xx status or an undecodable body
package services
