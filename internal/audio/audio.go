// Package audio defines the playback primitive the orchestration core is
// built against: a Player that opens files into Handles, and the Handle
// operations the state machine drives (play, stop, seek, position queries).
//
// The production implementation sits in beep.go and mixes through one
// speaker. Tests use the scriptable fake in the audiotest subpackage.
package audio

import (
	"errors"
	"time"
)

// ErrNotReady is returned by handle operations that require a finished
// decode. Handles decode asynchronously after Open; readiness is awaited
// once at startup and triggers afterwards are best-effort.
var ErrNotReady = errors.New("audio: handle not ready")

// Handle is one opened audio asset. A Handle is owned by exactly one sound
// group and is only ever driven from the dispatcher goroutine.
type Handle interface {
	// Path returns the file the handle was opened from.
	Path() string

	// Play starts (or restarts) playback from the current position.
	// Playing a handle that is already audible replaces its stream.
	Play() error

	// Stop silences the handle without moving its position.
	Stop() error

	// Seek moves the playback position. Seeking an unready handle is
	// permitted only to position zero, which is where fresh handles
	// already sit.
	Seek(to time.Duration) error

	// AtStart reports whether the position is at the beginning.
	// Unready handles report false.
	AtStart() bool

	// AtEnd reports whether the stream ran to its natural end. A handle
	// stopped mid-way reports false.
	AtEnd() bool

	// Ready reports whether the decode has completed successfully.
	Ready() bool

	// Position returns the current playback position.
	Position() time.Duration

	// Duration returns the total length, or zero while unready.
	Duration() time.Duration

	// Close releases the decoded data. The handle is unusable afterwards.
	Close() error
}

// Player opens audio files for playback.
type Player interface {
	// Open prepares path for playback and returns its handle positioned
	// at time zero. Decoding continues in the background; poll Ready or
	// use WaitAllReady before relying on durations.
	Open(path string) (Handle, error)

	// Close stops and releases every handle this player opened.
	Close() error
}

// VolumeControl is implemented by players with a master gain. The returned
// value is the new volume in percent (100 = unity).
type VolumeControl interface {
	VolumeUp() int
	VolumeDown() int
	Volume() int
}

// readyPollInterval is how often WaitAllReady re-checks pending handles.
const readyPollInterval = 10 * time.Millisecond

// WaitAllReady blocks until every handle reports ready or the aggregate
// budget elapses, and returns the handles that never became ready. A nil
// or empty input returns immediately.
func WaitAllReady(handles []Handle, budget time.Duration) []Handle {
	deadline := time.Now().Add(budget)
	pending := make([]Handle, 0, len(handles))
	for _, h := range handles {
		if !h.Ready() {
			pending = append(pending, h)
		}
	}
	for len(pending) > 0 && time.Now().Before(deadline) {
		time.Sleep(readyPollInterval)
		next := pending[:0]
		for _, h := range pending {
			if !h.Ready() {
				next = append(next, h)
			}
		}
		pending = next
	}
	return pending
}

// NopPlayer returns a Player whose handles are silent no-ops. Inspection
// subcommands use it to build the catalog without touching an audio device.
func NopPlayer() Player {
	return nopPlayer{}
}

type nopPlayer struct{}

func (nopPlayer) Open(path string) (Handle, error) { return &nopHandle{path: path}, nil }

func (nopPlayer) Close() error { return nil }

type nopHandle struct {
	path string
	pos  time.Duration
}

func (h *nopHandle) Path() string { return h.path }

func (h *nopHandle) Play() error { return nil }

func (h *nopHandle) Stop() error { return nil }

func (h *nopHandle) Seek(to time.Duration) error { h.pos = to; return nil }

func (h *nopHandle) AtStart() bool { return h.pos == 0 }

func (h *nopHandle) AtEnd() bool { return false }

func (h *nopHandle) Ready() bool { return true }

func (h *nopHandle) Position() time.Duration { return h.pos }

func (h *nopHandle) Duration() time.Duration { return 0 }

func (h *nopHandle) Close() error { return nil }
