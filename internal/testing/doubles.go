package testing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/jukebox/internal/models"
)

// MockCatalog is a test double for [services.Catalog].
//
// SearchFunc, when set, decides the response. Otherwise Results is returned.
type MockCatalog struct {
	mu         sync.Mutex
	calls      []string
	Results    []models.Track
	Err        error
	SearchFunc func(ctx context.Context, query, token string) ([]models.Track, error)
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query, token string) ([]models.Track, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	fn := m.SearchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query, token)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

// Calls returns the queries received so far.
func (m *MockCatalog) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// FakeEngine is an in-memory playback engine satisfying [player.Engine].
//
// Position and duration are set by the test. Tick and End invoke the
// registered hooks on the calling goroutine.
type FakeEngine struct {
	mu         sync.Mutex
	url        string
	loads      []string
	seeks      []time.Duration
	plays      int
	pauses     int
	paused     bool
	position   time.Duration
	duration   time.Duration
	onProgress func()
	onEnded    func()
	closed     bool

	LoadErr error
	PlayErr error
}

// NewFakeEngine returns a paused engine with nothing loaded.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{paused: true}
}

func (f *FakeEngine) Load(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return f.LoadErr
	}
	f.url = url
	f.loads = append(f.loads, url)
	f.position = 0
	f.paused = true
	return nil
}

func (f *FakeEngine) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PlayErr != nil {
		return f.PlayErr
	}
	if f.url == "" {
		return errors.New("nothing loaded")
	}
	f.plays++
	f.paused = false
	return nil
}

func (f *FakeEngine) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	f.paused = true
	return nil
}

func (f *FakeEngine) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func (f *FakeEngine) Seek(pos time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, pos)
	f.position = pos
	return nil
}

func (f *FakeEngine) Position() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *FakeEngine) Duration() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *FakeEngine) OnProgress(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onProgress = fn
}

func (f *FakeEngine) OnEnded(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onEnded = fn
}

func (f *FakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// SetPosition moves the playhead without recording a seek.
func (f *FakeEngine) SetPosition(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = d
}

// SetDuration sets the media duration reported by the engine.
func (f *FakeEngine) SetDuration(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.duration = d
}

// Tick fires the progress hook.
func (f *FakeEngine) Tick() {
	f.mu.Lock()
	fn := f.onProgress
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// End fires the ended hook.
func (f *FakeEngine) End() {
	f.mu.Lock()
	fn := f.onEnded
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Loads returns every URL passed to Load.
func (f *FakeEngine) Loads() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loads...)
}

// Seeks returns every position passed to Seek.
func (f *FakeEngine) Seeks() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.seeks...)
}

// Plays returns the number of successful Play calls.
func (f *FakeEngine) Plays() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

// Pauses returns the number of Pause calls.
func (f *FakeEngine) Pauses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pauses
}

// URL returns the loaded media URL.
func (f *FakeEngine) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

// Closed reports whether Close was called.
func (f *FakeEngine) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Tracks returns n playable tracks named "Track 1".."Track n".
func Tracks(n int) []models.Track {
	tracks := make([]models.Track, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("t%d", i)
		tracks = append(tracks, models.Track{
			ID:         id,
			Name:       fmt.Sprintf("Track %d", i),
			Artists:    []models.Artist{{Name: "Artist"}},
			Album:      models.Album{Name: "Album"},
			PreviewURL: "https://p.example.com/" + id + "?" + models.PreviewDurationParam,
		})
	}
	return tracks
}
