// package mpd plays preview clips through a Music Player Daemon.
//
// The engine keeps a single-entry queue: loading a clip clears the queue and
// adds the clip URL, which MPD streams over HTTP. Status is polled on an
// interval to drive the progress and end hooks.
package mpd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	m "github.com/fhs/gompd/mpd"

	"github.com/desertthunder/jukebox/internal/shared"
)

const (
	defaultPollInterval = 250 * time.Millisecond
	defaultStartTimeout = 10 * time.Second
	keepAliveInterval   = 30 * time.Second
)

// MPD player states as reported in the "state" status attribute.
const (
	statePlay  = "play"
	statePause = "pause"
	stateStop  = "stop"
)

// Client is the subset of [m.Client] the engine uses.
type Client interface {
	Ping() error
	Status() (m.Attrs, error)
	Clear() error
	Add(uri string) error
	Play(pos int) error
	Pause(pause bool) error
	Seek(pos, time int) error
	Close() error
}

// Opts configures an [Engine].
type Opts struct {
	Address      string
	Password     string
	PollInterval time.Duration
	// StartTimeout bounds how long a started clip may sit in the stop state
	// before the daemon confirms playback. The clip is then reported ended.
	StartTimeout time.Duration
	Logger       *log.Logger
}

// Engine implements [player.Engine] on top of MPD.
type Engine struct {
	mu       sync.Mutex
	client   Client
	logger   *log.Logger
	state    string
	loaded   bool
	position time.Duration
	duration time.Duration

	// started is set by Play and survives stop polls until the clip ends,
	// so a stream still buffering is not mistaken for a paused one.
	started      bool
	startedAt    time.Time
	startTimeout time.Duration
	now          func() time.Time

	// confirmed is set once the daemon reports the loaded clip playing.
	confirmed bool

	onProgress func()
	onEnded    func()

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Dial connects to the daemon at opts.Address and starts polling it.
func Dial(opts Opts) (*Engine, error) {
	var (
		c   *m.Client
		err error
	)
	if opts.Password != "" {
		c, err = m.DialAuthenticated("tcp", opts.Address, opts.Password)
	} else {
		c, err = m.Dial("tcp", opts.Address)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: mpd at %s: %v", shared.ErrServiceUnavailable, opts.Address, err)
	}
	return New(c, opts), nil
}

// New wraps an established client and starts the poll loop.
func New(c Client, opts Opts) *Engine {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = defaultStartTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	e := &Engine{
		client:       c,
		logger:       opts.Logger,
		state:        stateStop,
		startTimeout: opts.StartTimeout,
		now:          time.Now,
		done:         make(chan struct{}),
	}

	e.wg.Add(1)
	go e.loop(opts.PollInterval)
	return e
}

func (e *Engine) loop(interval time.Duration) {
	defer e.wg.Done()

	poll := time.NewTicker(interval)
	defer poll.Stop()
	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-poll.C:
			e.poll()
		case <-keepAlive.C:
			e.mu.Lock()
			err := e.client.Ping()
			e.mu.Unlock()
			if err != nil {
				e.logger.Warn("mpd keep-alive failed", "error", err)
			}
		}
	}
}

// poll refreshes the cached status and fires hooks outside the lock.
func (e *Engine) poll() {
	e.mu.Lock()
	attrs, err := e.client.Status()
	if err != nil {
		e.mu.Unlock()
		e.logger.Warn("mpd status failed", "error", err)
		return
	}

	state := attrs["state"]
	e.state = state
	e.position, e.duration = parseTimes(attrs)

	if e.loaded && state == statePlay {
		e.confirmed = true
	}
	ended := e.loaded && e.started && state == stateStop &&
		(e.confirmed || e.now().Sub(e.startedAt) >= e.startTimeout)
	if ended {
		if !e.confirmed {
			e.logger.Warn("mpd never started the clip", "timeout", e.startTimeout)
		}
		e.loaded = false
		e.started = false
		e.confirmed = false
	}
	onProgress, onEnded := e.onProgress, e.onEnded
	e.mu.Unlock()

	if state == statePlay && onProgress != nil {
		onProgress()
	}
	if ended && onEnded != nil {
		onEnded()
	}
}

// Load clears the queue and queues url without starting it.
func (e *Engine) Load(url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.Clear(); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	if err := e.client.Add(url); err != nil {
		return fmt.Errorf("failed to queue %s: %w", url, err)
	}

	e.state = stateStop
	e.loaded = true
	e.started = false
	e.confirmed = false
	e.position = 0
	e.duration = 0
	return nil
}

// Play starts the queued clip, or resumes it when paused. A clip that was
// started and is not paused is left alone.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return fmt.Errorf("%w: nothing loaded", shared.ErrInvalidState)
	}

	var err error
	switch {
	case e.state == statePause:
		err = e.client.Pause(false)
	case e.started:
		return nil
	default:
		err = e.client.Play(0)
	}
	if err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}
	if !e.started {
		e.started = true
		e.startedAt = e.now()
	}
	e.state = statePlay
	return nil
}

func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started || e.state == statePause {
		return nil
	}
	if err := e.client.Pause(true); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}
	e.state = statePause
	return nil
}

// Paused reports whether Play would start or resume the clip: nothing has
// been started since the last Load, or the daemon is paused.
func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.started || e.state == statePause
}

// Seek moves to pos in whole seconds. Seeking a clip that has not started
// only updates the cached position.
func (e *Engine) Seek(pos time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != stateStop {
		secs := int(math.Round(pos.Seconds()))
		if err := e.client.Seek(0, secs); err != nil {
			return fmt.Errorf("failed to seek: %w", err)
		}
	}
	e.position = pos
	return nil
}

func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

func (e *Engine) OnProgress(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onProgress = fn
}

func (e *Engine) OnEnded(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEnded = fn
}

// Close stops polling, clears the queue and closes the connection.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		close(e.done)
		e.wg.Wait()

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.loaded {
			if cerr := e.client.Clear(); cerr != nil {
				e.logger.Warn("failed to clear queue", "error", cerr)
			}
		}
		err = e.client.Close()
	})
	return err
}

// parseTimes reads elapsed and duration from a status response.
//
// Older daemons only report "time" as "elapsed:total" in whole seconds.
func parseTimes(attrs m.Attrs) (elapsed, duration time.Duration) {
	elapsed = parseSeconds(attrs["elapsed"])
	duration = parseSeconds(attrs["duration"])

	if t, ok := attrs["time"]; ok && (attrs["elapsed"] == "" || attrs["duration"] == "") {
		if e, d, found := strings.Cut(t, ":"); found {
			if attrs["elapsed"] == "" {
				elapsed = parseSeconds(e)
			}
			if attrs["duration"] == "" {
				duration = parseSeconds(d)
			}
		}
	}
	return elapsed, duration
}

func parseSeconds(s string) time.Duration {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return time.Duration(math.Round(f*1000)) * time.Millisecond
}
