package player

import "time"

// Engine plays one media URL at a time.
//
// Hooks registered with OnProgress and OnEnded must be invoked from the
// engine's own goroutine, never synchronously from one of its methods.
type Engine interface {
	// Load replaces the current media and leaves it paused at zero.
	Load(url string) error
	Play() error
	Pause() error
	Paused() bool
	Seek(pos time.Duration) error
	Position() time.Duration
	// Duration is zero while unknown.
	Duration() time.Duration
	OnProgress(fn func())
	OnEnded(fn func())
	Close() error
}

// TokenLoader returns the bearer token used for catalog calls.
type TokenLoader interface {
	Load() (string, error)
}
