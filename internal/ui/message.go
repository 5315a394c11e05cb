package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	err  error
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSessionChanged MsgKind = iota
	MsgSearchDone
	MsgPlaybackDone
)

// sessionChangedMsg is the constructor for [MsgSessionChanged]
func sessionChangedMsg() Msg {
	return Msg{kind: MsgSessionChanged}
}

// searchDoneMsg is the constructor for [MsgSearchDone]
func searchDoneMsg(err error) Msg {
	return Msg{kind: MsgSearchDone, err: err}
}

// playbackDoneMsg is the constructor for [MsgPlaybackDone]
func playbackDoneMsg(err error) Msg {
	return Msg{kind: MsgPlaybackDone, err: err}
}
