package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/zjrosen/soundpad/internal/log"
)

// ErrClosed is returned by operations on a closed handle.
var ErrClosed = errors.New("audio: handle closed")

const (
	defaultSampleRate = 44100
	defaultBuffer     = 100 * time.Millisecond
	defaultVolumeStep = 0.25

	// Master gain bounds, in volumeBase exponents. +1 doubles, -4 is
	// near-silence.
	volumeMinGain = -4.0
	volumeMaxGain = 1.0
	volumeBase    = 2.0

	resampleQuality = 4
)

// SpeakerOptions configures NewSpeakerPlayer. Zero values select defaults.
type SpeakerOptions struct {
	SampleRate int           // output sample rate (default 44100)
	Buffer     time.Duration // speaker buffer length (default 100ms)
	VolumeStep float64       // gain exponent change per volume step (default 0.25)
}

// SpeakerPlayer plays handles through the machine's audio device via one
// shared mixer. Handles decode fully into memory in the background, which
// suits soundboard clips and keeps restarts seek-cheap.
//
// SpeakerPlayer is not safe for concurrent use: the dispatcher goroutine
// owns it, matching the single-threaded core model. Internal streamer state
// shared with the mixer goroutine is guarded with speaker.Lock.
type SpeakerPlayer struct {
	sr      beep.SampleRate
	step    float64
	gain    float64
	handles []*speakerHandle
}

// NewSpeakerPlayer initializes the audio device and returns the player.
func NewSpeakerPlayer(opts SpeakerOptions) (*SpeakerPlayer, error) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = defaultSampleRate
	}
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = defaultVolumeStep
	}
	sr := beep.SampleRate(opts.SampleRate)
	if err := speaker.Init(sr, sr.N(opts.Buffer)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	log.Info(log.CatAudio, "Speaker initialized", "sample_rate", opts.SampleRate, "buffer", opts.Buffer)
	return &SpeakerPlayer{sr: sr, step: opts.VolumeStep}, nil
}

// Open starts decoding path in the background and returns its handle at
// position zero.
func (p *SpeakerPlayer) Open(path string) (Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	h := &speakerHandle{path: path, player: p, ready: make(chan struct{})}
	p.handles = append(p.handles, h)
	go h.load(f)
	return h, nil
}

// Close silences and releases every handle. The device itself stays
// initialized for the remainder of the process.
func (p *SpeakerPlayer) Close() error {
	for _, h := range p.handles {
		h.closed = true
	}
	speaker.Clear()
	p.handles = nil
	log.Debug(log.CatAudio, "Speaker player closed")
	return nil
}

// VolumeUp raises the master gain one step and returns the new percentage.
func (p *SpeakerPlayer) VolumeUp() int { return p.adjust(p.step) }

// VolumeDown lowers the master gain one step and returns the new percentage.
func (p *SpeakerPlayer) VolumeDown() int { return p.adjust(-p.step) }

// Volume returns the master gain as a percentage (100 = unity).
func (p *SpeakerPlayer) Volume() int {
	return int(math.Round(100 * math.Pow(volumeBase, p.gain)))
}

func (p *SpeakerPlayer) adjust(delta float64) int {
	p.gain = math.Min(volumeMaxGain, math.Max(volumeMinGain, p.gain+delta))
	speaker.Lock()
	for _, h := range p.handles {
		if h.vol != nil {
			h.vol.Volume = p.gain
		}
	}
	speaker.Unlock()
	return p.Volume()
}

// speakerHandle is one decoded file. The loader goroutine fills format,
// buf, and seeker, then closes ready; everything else runs on the
// dispatcher goroutine.
type speakerHandle struct {
	path   string
	player *SpeakerPlayer

	ready   chan struct{}
	loadErr error

	format beep.Format
	buf    *beep.Buffer
	seeker beep.StreamSeeker

	// Live playback chain; nil while silent. The mixer goroutine reads
	// these streamers, so mutations happen under speaker.Lock.
	ctrl *beep.Ctrl
	vol  *effects.Volume

	closed bool
}

func (h *speakerHandle) load(f *os.File) {
	defer close(h.ready)

	s, format, err := decode(h.path, f)
	if err != nil {
		f.Close()
		h.loadErr = err
		log.Warn(log.CatAudio, "Decode failed", "path", h.path, "error", err)
		return
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := s.Err(); err != nil {
		s.Close()
		h.loadErr = fmt.Errorf("decoding %s: %w", h.path, err)
		log.Warn(log.CatAudio, "Decode failed mid-stream", "path", h.path, "error", err)
		return
	}
	s.Close()

	h.format = format
	h.buf = buf
	h.seeker = buf.Streamer(0, buf.Len())
	log.Debug(log.CatAudio, "Decoded", "path", h.path, "samples", buf.Len(),
		"duration", format.SampleRate.D(buf.Len()))
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, format, err := wav.Decode(f)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decoding wav %s: %w", path, err)
		}
		return s, format, nil
	case ".mp3":
		s, format, err := mp3.Decode(f)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decoding mp3 %s: %w", path, err)
		}
		return s, format, nil
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio file %s", path)
	}
}

func (h *speakerHandle) Path() string { return h.path }

// readyErr reports why the handle cannot be driven yet, or nil.
func (h *speakerHandle) readyErr() error {
	select {
	case <-h.ready:
	default:
		return fmt.Errorf("%s: %w", h.path, ErrNotReady)
	}
	if h.loadErr != nil {
		return h.loadErr
	}
	if h.closed {
		return fmt.Errorf("%s: %w", h.path, ErrClosed)
	}
	return nil
}

func (h *speakerHandle) Ready() bool { return h.readyErr() == nil }

func (h *speakerHandle) Play() error {
	if err := h.readyErr(); err != nil {
		return err
	}
	var s beep.Streamer = h.seeker
	if h.format.SampleRate != h.player.sr {
		s = beep.Resample(resampleQuality, h.format.SampleRate, h.player.sr, h.seeker)
	}
	speaker.Lock()
	if h.ctrl != nil {
		// Detach the previous chain; the mixer drops it on its next pass.
		h.ctrl.Streamer = nil
	}
	h.ctrl = &beep.Ctrl{Streamer: s}
	h.vol = &effects.Volume{Streamer: h.ctrl, Base: volumeBase, Volume: h.player.gain}
	speaker.Unlock()
	speaker.Play(h.vol)
	return nil
}

func (h *speakerHandle) Stop() error {
	if !h.Ready() {
		// The startup stop-all can land before slow decodes finish;
		// nothing is audible yet, so there is nothing to stop.
		return nil
	}
	speaker.Lock()
	if h.ctrl != nil {
		h.ctrl.Streamer = nil
		h.ctrl = nil
		h.vol = nil
	}
	speaker.Unlock()
	return nil
}

func (h *speakerHandle) Seek(to time.Duration) error {
	if err := h.readyErr(); err != nil {
		if to == 0 && errors.Is(err, ErrNotReady) {
			// Fresh handles already sit at zero.
			return nil
		}
		return err
	}
	n := h.format.SampleRate.N(to)
	if n < 0 {
		n = 0
	}
	if l := h.seeker.Len(); n > l {
		n = l
	}
	speaker.Lock()
	err := h.seeker.Seek(n)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seeking %s: %w", h.path, err)
	}
	return nil
}

func (h *speakerHandle) AtStart() bool {
	if !h.Ready() {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return h.seeker.Position() == 0
}

func (h *speakerHandle) AtEnd() bool {
	if !h.Ready() {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return h.seeker.Position() >= h.seeker.Len()
}

func (h *speakerHandle) Position() time.Duration {
	if !h.Ready() {
		return 0
	}
	speaker.Lock()
	n := h.seeker.Position()
	speaker.Unlock()
	return h.format.SampleRate.D(n)
}

func (h *speakerHandle) Duration() time.Duration {
	if !h.Ready() {
		return 0
	}
	return h.format.SampleRate.D(h.buf.Len())
}

func (h *speakerHandle) Close() error {
	if err := h.Stop(); err != nil {
		return err
	}
	h.closed = true
	return nil
}

// ProbeInfo describes one decodable file without opening the audio device.
type ProbeInfo struct {
	Path       string
	SampleRate int
	Channels   int
	Samples    int
	Duration   time.Duration
}

// Probe decodes just enough of path to report its format and length. Used
// by inspection subcommands; playback is not possible through it.
func Probe(path string) (ProbeInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ProbeInfo{}, fmt.Errorf("opening %s: %w", path, err)
	}
	s, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return ProbeInfo{}, err
	}
	defer s.Close()
	n := s.Len()
	return ProbeInfo{
		Path:       path,
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
		Samples:    n,
		Duration:   format.SampleRate.D(n),
	}, nil
}
