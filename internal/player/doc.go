// Package player implements the playback and search session behind every jukebox view.
//
// A [Session] owns the search term, the current results and the single
// now-playing slot. It drives a narrow [Engine] (load, play, pause, seek,
// position, duration, progress and end hooks) and never touches audio
// itself, so the terminal player runs it against MPD and tests run it against
// an in-memory engine.
//
// # Slot
//
// The now-playing slot moves Idle → Loading → Playing ⇄ Paused → Idle. At
// most one track occupies it. Starting a different track first stops the
// current one and rewinds it to zero. Playing the same track again toggles
// pause instead of restarting it.
//
// # Progress
//
// Preview clips are capped at [ClipLength]. On every progress tick the
// session derives the progress fraction from engine position over engine
// duration and the remaining whole seconds from the cap. Reaching the cap
// stops playback.
//
// # Concurrency
//
// State changes are serialized by a mutex. The catalog call made by
// [Session.Search] runs without the lock, so playback controls stay
// responsive while a search is in flight. Overlapping searches are not
// cancelled and the last response to arrive wins.
package player
