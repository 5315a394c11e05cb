// Package web serves the browser version of jukebox.
//
// # Routes
//
//	GET  /            → landing page with the login button, or a link to the player
//	GET  /login       → starts the login: state cookie, then 302 to the provider
//	GET  /callback    → completes the login, 303 to /player or an error page
//	GET  /player      → search form and results; ?q= runs a search
//	GET  /api/search  → JSON search results
//	POST /logout      → clears the stored token
//
// # Login
//
// Both the browser login and the CLI login go through [auth.Flow]. The web
// handler keeps the state in a short-lived HttpOnly cookie and passes it to
// [auth.Flow.CompleteLogin]. The token is exchanged and stored server side so
// the client secret never reaches the browser.
//
// # Playback
//
// Preview clips play in the browser's audio element. The player page applies
// the same rules as [player.Session]: one clip at a time, clicking the
// current clip toggles pause, playback stops at [player.ClipLength] and the
// progress bar seeks within the clip.
//
// # Errors
//
// Login failures render the callback page with the reason. Unauthorized and
// network failures of a search render on the player page next to the form.
package web
