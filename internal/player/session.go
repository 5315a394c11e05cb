package player

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/services"
	"github.com/desertthunder/jukebox/internal/shared"
)

// SessionOpts configures a [Session].
type SessionOpts struct {
	Engine  Engine
	Catalog services.Catalog
	Tokens  TokenLoader
	Logger  *log.Logger
}

// Session is the playback and search session controller.
type Session struct {
	mu       sync.Mutex
	state    State
	inflight int

	engine  Engine
	catalog services.Catalog
	tokens  TokenLoader
	logger  *log.Logger
	changes chan struct{}
}

// NewSession creates a session and registers its progress and end handlers on the engine.
func NewSession(opts SessionOpts) *Session {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	s := &Session{
		state:   initialState(),
		engine:  opts.Engine,
		catalog: opts.Catalog,
		tokens:  opts.Tokens,
		logger:  opts.Logger,
		changes: make(chan struct{}, 1),
	}

	s.engine.OnProgress(s.OnProgressTick)
	s.engine.OnEnded(s.OnClipEnded)
	return s
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Changes receives a value after state changes. Notifications coalesce, so
// readers should call [Session.State] rather than count them.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Search replaces the results with the catalog's tracks for term.
//
// A blank term is ignored. On failure the previous results are kept and the
// error is recorded in [State.Err] as well as returned.
func (s *Session) Search(ctx context.Context, term string) error {
	if strings.TrimSpace(term) == "" {
		return nil
	}

	s.mu.Lock()
	s.state.SearchTerm = term
	s.inflight++
	s.state.IsLoading = true
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.inflight--
		s.state.IsLoading = s.inflight > 0
		s.mu.Unlock()
		s.notify()
	}()

	tracks, err := s.search(ctx, term)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Error("search failed", "term", term, "error", err)
		s.state.Err = err
		return err
	}
	if tracks == nil {
		tracks = []models.Track{}
	}
	s.state.Results = tracks
	s.state.Err = nil
	s.logger.Debug("search complete", "term", term, "results", len(tracks))
	return nil
}

func (s *Session) search(ctx context.Context, term string) ([]models.Track, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}
	return s.catalog.SearchTracks(ctx, term, token)
}

// Play starts track, or toggles pause when track is already now playing.
// Identity is PreviewURL equality, so tracks with different IDs that share a
// preview URL count as the same clip.
//
// Tracks without a preview URL are ignored.
func (s *Session) Play(track models.Track) error {
	if track.PreviewURL == "" {
		return nil
	}

	s.mu.Lock()
	err := s.play(track)
	s.mu.Unlock()
	s.notify()
	return err
}

func (s *Session) play(track models.Track) error {
	if s.state.NowPlaying != nil && s.state.NowPlaying.PreviewURL == track.PreviewURL {
		return s.toggle()
	}

	if s.state.NowPlaying != nil {
		s.stop()
	}

	s.state.ProgressFraction = 0
	s.state.RemainingSeconds = int(ClipLength / time.Second)
	s.state.Slot = SlotLoading

	if err := s.engine.Load(track.PreviewURL); err != nil {
		return s.playbackFailed("load", track, err)
	}
	if err := s.engine.Play(); err != nil {
		return s.playbackFailed("play", track, err)
	}

	s.state.NowPlaying = &track
	s.state.IsPlaying = true
	s.state.Slot = SlotPlaying
	s.state.Err = nil
	s.logger.Info("now playing", "track", track.Name, "artists", track.ArtistNames())
	return nil
}

func (s *Session) playbackFailed(op string, track models.Track, err error) error {
	err = fmt.Errorf("failed to %s %q: %w", op, track.Name, err)
	s.logger.Error("playback failed", "error", err)
	s.state.Slot = SlotIdle
	s.state.NowPlaying = nil
	s.state.IsPlaying = false
	s.state.Err = err
	return err
}

// TogglePause pauses or resumes the now playing track. It is a no-op when idle.
func (s *Session) TogglePause() error {
	s.mu.Lock()
	var err error
	if s.state.NowPlaying != nil {
		err = s.toggle()
	}
	s.mu.Unlock()
	s.notify()
	return err
}

func (s *Session) toggle() error {
	if s.engine.Paused() {
		if err := s.engine.Play(); err != nil {
			return fmt.Errorf("failed to resume: %w", err)
		}
		s.state.IsPlaying = true
		s.state.Slot = SlotPlaying
		return nil
	}

	if err := s.engine.Pause(); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}
	s.state.IsPlaying = false
	s.state.Slot = SlotPaused
	return nil
}

// Stop pauses the engine, rewinds it and clears the now playing track.
//
// Progress fields keep their last values.
func (s *Session) Stop() {
	s.mu.Lock()
	s.stop()
	s.mu.Unlock()
	s.notify()
}

func (s *Session) stop() {
	if s.state.NowPlaying != nil {
		if err := s.engine.Pause(); err != nil {
			s.logger.Warn("failed to pause engine", "error", err)
		}
		if err := s.engine.Seek(0); err != nil {
			s.logger.Warn("failed to rewind engine", "error", err)
		}
	}
	s.state.NowPlaying = nil
	s.state.IsPlaying = false
	s.state.Slot = SlotIdle
}

// OnProgressTick recomputes progress from the engine and stops playback at [ClipLength].
func (s *Session) OnProgressTick() {
	s.mu.Lock()
	if s.state.NowPlaying == nil {
		s.mu.Unlock()
		return
	}

	pos := s.engine.Position()
	s.updateProgress(pos, s.engine.Duration())
	if pos >= ClipLength {
		s.logger.Debug("clip ceiling reached", "position", pos)
		s.stop()
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Session) updateProgress(pos, dur time.Duration) {
	var fraction float64
	if dur > 0 {
		fraction = clamp(float64(pos) / float64(dur))
	}
	s.state.ProgressFraction = fraction
	s.state.RemainingSeconds = int(math.Ceil((ClipLength - pos).Seconds()))
}

// OnClipEnded clears the now playing track and resets progress.
func (s *Session) OnClipEnded() {
	s.mu.Lock()
	s.state.NowPlaying = nil
	s.state.IsPlaying = false
	s.state.Slot = SlotIdle
	s.state.ProgressFraction = 0
	s.state.RemainingSeconds = int(ClipLength / time.Second)
	s.mu.Unlock()
	s.notify()
}

// Seek moves playback to fraction of the media duration, clamped to [0, 1].
//
// It is a no-op when idle or while the duration is unknown.
func (s *Session) Seek(fraction float64) error {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	if s.state.NowPlaying == nil {
		return nil
	}
	dur := s.engine.Duration()
	if dur <= 0 {
		return nil
	}

	pos := time.Duration(clamp(fraction) * float64(dur))
	if err := s.engine.Seek(pos); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	s.updateProgress(pos, dur)
	return nil
}

// SeekBy moves playback by delta, expressed as a fraction of the duration.
func (s *Session) SeekBy(delta float64) error {
	return s.Seek(s.State().ProgressFraction + delta)
}

// Close stops playback and releases the engine.
func (s *Session) Close() error {
	s.Stop()
	return s.engine.Close()
}

func clamp(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
