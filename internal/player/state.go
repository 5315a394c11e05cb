package player

import (
	"slices"
	"time"

	"github.com/desertthunder/jukebox/internal/models"
)

// ClipLength is the playback ceiling for preview clips.
const ClipLength = 30 * time.Second

// Slot is the state of the now-playing slot.
type Slot int

const (
	SlotIdle Slot = iota
	SlotLoading
	SlotPlaying
	SlotPaused
)

func (s Slot) String() string {
	switch s {
	case SlotIdle:
		return "idle"
	case SlotLoading:
		return "loading"
	case SlotPlaying:
		return "playing"
	case SlotPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// State is a snapshot of a [Session].
type State struct {
	SearchTerm       string
	Results          []models.Track
	NowPlaying       *models.Track
	ProgressFraction float64
	RemainingSeconds int
	IsPlaying        bool
	IsLoading        bool
	Slot             Slot
	// Err is the last search or playback failure, cleared by the next success.
	Err error
}

func initialState() State {
	return State{
		Results:          []models.Track{},
		RemainingSeconds: int(ClipLength / time.Second),
	}
}

func (s State) clone() State {
	s.Results = slices.Clone(s.Results)
	if s.NowPlaying != nil {
		t := *s.NowPlaying
		s.NowPlaying = &t
	}
	return s
}
