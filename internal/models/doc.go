// Package models defines the catalog entities shown and played by jukebox.
//
// The types mirror the subset of the Spotify search payload the client reads:
//   - [Track] : a playable search result with its preview clip
//   - [Artist] : performer credited on a track
//   - [Album] : release a track belongs to, with cover art [Image]s
//
// Preview URLs are post-processed by [WithPreviewDuration] before they reach
// a player so that every clip request carries the same duration parameter.
package models
