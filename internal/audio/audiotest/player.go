// Package audiotest provides a scriptable in-memory Player for tests.
// Handles record every call and expose their state as plain fields, so
// tests can script readiness, natural ends, and adapter failures without
// touching an audio device.
package audiotest

import (
	"fmt"
	"time"

	"github.com/zjrosen/soundpad/internal/audio"
)

// Player implements audio.Player and audio.VolumeControl.
type Player struct {
	// OpenErr, when set, fails every Open call.
	OpenErr error
	// FailOpen fails Open for specific paths.
	FailOpen map[string]error

	Opened  []string
	Closed  bool
	Percent int

	handles []*Handle
}

// NewPlayer returns an empty fake player at unity volume.
func NewPlayer() *Player {
	return &Player{Percent: 100}
}

// Open records the call and returns a ready one-second handle.
func (p *Player) Open(path string) (audio.Handle, error) {
	p.Opened = append(p.Opened, path)
	if p.OpenErr != nil {
		return nil, p.OpenErr
	}
	if err, ok := p.FailOpen[path]; ok {
		return nil, err
	}
	h := &Handle{FilePath: path, Len: time.Second}
	p.handles = append(p.handles, h)
	return h, nil
}

// Close marks the player closed and closes every handle.
func (p *Player) Close() error {
	p.Closed = true
	for _, h := range p.handles {
		h.Close()
	}
	return nil
}

// Handles returns every handle Open produced, in order.
func (p *Player) Handles() []*Handle { return p.handles }

// Handle returns the handle opened for path, or nil.
func (p *Player) Handle(path string) *Handle {
	for _, h := range p.handles {
		if h.FilePath == path {
			return h
		}
	}
	return nil
}

// VolumeUp raises the fake volume by ten percent.
func (p *Player) VolumeUp() int { p.Percent += 10; return p.Percent }

// VolumeDown lowers the fake volume by ten percent.
func (p *Player) VolumeDown() int {
	if p.Percent >= 10 {
		p.Percent -= 10
	}
	return p.Percent
}

// Volume returns the fake volume percentage.
func (p *Player) Volume() int { return p.Percent }

// Handle implements audio.Handle with scriptable behavior.
type Handle struct {
	FilePath string
	Len      time.Duration
	Pos      time.Duration

	NotReady bool // Ready() reports false while set
	Playing  bool
	Closed   bool

	PlayErr, StopErr, SeekErr error

	Plays, Stops, Seeks int
}

// MarkEnded simulates the stream reaching its natural end: the mixer has
// dropped it, and the position sits at the full length.
func (h *Handle) MarkEnded() {
	h.Pos = h.Len
	h.Playing = false
}

func (h *Handle) Path() string { return h.FilePath }

func (h *Handle) Play() error {
	h.Plays++
	if h.NotReady {
		return fmt.Errorf("%s: %w", h.FilePath, audio.ErrNotReady)
	}
	if h.PlayErr != nil {
		return h.PlayErr
	}
	h.Playing = true
	return nil
}

func (h *Handle) Stop() error {
	h.Stops++
	if h.StopErr != nil {
		return h.StopErr
	}
	h.Playing = false
	return nil
}

func (h *Handle) Seek(to time.Duration) error {
	h.Seeks++
	if h.SeekErr != nil {
		return h.SeekErr
	}
	if h.NotReady {
		if to == 0 {
			return nil
		}
		return fmt.Errorf("%s: %w", h.FilePath, audio.ErrNotReady)
	}
	h.Pos = to
	return nil
}

func (h *Handle) AtStart() bool { return !h.NotReady && h.Pos == 0 }

func (h *Handle) AtEnd() bool { return !h.NotReady && h.Len > 0 && h.Pos >= h.Len }

func (h *Handle) Ready() bool { return !h.NotReady && !h.Closed }

func (h *Handle) Position() time.Duration {
	if h.NotReady {
		return 0
	}
	return h.Pos
}

func (h *Handle) Duration() time.Duration {
	if h.NotReady {
		return 0
	}
	return h.Len
}

func (h *Handle) Close() error {
	h.Playing = false
	h.Closed = true
	return nil
}
