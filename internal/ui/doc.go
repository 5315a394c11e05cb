// Package ui implements the terminal player using bubbletea's Elm architecture.
//
// The TUI has two focus states:
//  1. [SearchView] : the search box has focus, enter runs the search
//  2. [ResultsView] : the result list has focus, enter plays the selected track
//
// The now-playing bar with a progress bar and remaining seconds is always
// shown while a clip is loaded.
//
// All playback and search state lives in a [player.Session]. The (view)
// [Model] only renders snapshots of it: a blocking command waits on
// [player.Session.Changes] and turns each notification into a message, so
// engine progress ticks redraw the screen without polling.
//
// Keyboard bindings: / search, enter select, space pause, s stop,
// ←/→ seek, esc back to the list, q quit.
package ui
