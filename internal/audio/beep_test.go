package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestWAV synthesizes a mono 16-bit sine tone so decode paths run
// against a real file.
func writeTestWAV(t *testing.T, path string, d time.Duration, rate int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	n := int(d.Seconds() * float64(rate))
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, n),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = int(10000 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
	}
	enc := gowav.NewEncoder(f, rate, 16, 1, 1)
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

// testPlayer builds a SpeakerPlayer without initializing the audio device;
// decode, seek, and position queries never touch it.
func testPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{sr: defaultSampleRate, step: defaultVolumeStep}
}

func TestHandleLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeTestWAV(t, path, 200*time.Millisecond, 44100)

	p := testPlayer()
	h, err := p.Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, h.Path())

	unready := WaitAllReady([]Handle{h}, 5*time.Second)
	require.Empty(t, unready, "decode should finish well within budget")
	require.True(t, h.Ready())

	assert.True(t, h.AtStart())
	assert.False(t, h.AtEnd())
	assert.InDelta(t, 200*time.Millisecond, h.Duration(), float64(5*time.Millisecond))

	// Seek to the end and back; position queries must follow.
	require.NoError(t, h.Seek(h.Duration()))
	assert.True(t, h.AtEnd())
	require.NoError(t, h.Seek(0))
	assert.True(t, h.AtStart())
	assert.Equal(t, time.Duration(0), h.Position())
}

func TestHandleSeekClampsBeyondEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeTestWAV(t, path, 100*time.Millisecond, 44100)

	p := testPlayer()
	h, err := p.Open(path)
	require.NoError(t, err)
	require.Empty(t, WaitAllReady([]Handle{h}, 5*time.Second))

	require.NoError(t, h.Seek(time.Minute))
	assert.True(t, h.AtEnd())
}

func TestOpenMissingFile(t *testing.T) {
	p := testPlayer()
	_, err := p.Open(filepath.Join(t.TempDir(), "absent.wav"))
	require.Error(t, err)
}

func TestUnsupportedExtensionNeverReady(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o644))

	p := testPlayer()
	h, err := p.Open(path)
	require.NoError(t, err, "open itself succeeds; decode fails in the background")

	unready := WaitAllReady([]Handle{h}, time.Second)
	assert.Len(t, unready, 1)
	assert.False(t, h.Ready())
	assert.ErrorContains(t, h.Play(), "unsupported audio file")
}

func TestCorruptFileReportsDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFFjunk"), 0o644))

	p := testPlayer()
	h, err := p.Open(path)
	require.NoError(t, err)

	WaitAllReady([]Handle{h}, time.Second)
	assert.False(t, h.Ready())
	assert.Error(t, h.Play())
}

func TestSeekZeroBeforeReadyIsAllowed(t *testing.T) {
	// A handle that never becomes ready still accepts the catalog's
	// pre-position at zero.
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o644))

	p := testPlayer()
	h, err := p.Open(path)
	require.NoError(t, err)

	assert.NoError(t, h.Seek(0))
	assert.Error(t, h.Seek(time.Second))
}

func TestVolumeSteps(t *testing.T) {
	p := testPlayer()
	assert.Equal(t, 100, p.Volume())

	up := p.VolumeUp()
	assert.Greater(t, up, 100)
	down := p.VolumeDown()
	assert.Equal(t, 100, down)

	// Clamped at the floor rather than vanishing entirely.
	for i := 0; i < 100; i++ {
		p.VolumeDown()
	}
	assert.Greater(t, p.Volume(), 0)
	floor := p.Volume()
	assert.Equal(t, floor, p.VolumeDown())
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeTestWAV(t, path, 150*time.Millisecond, 22050)

	info, err := Probe(path)
	require.NoError(t, err)
	assert.Equal(t, 22050, info.SampleRate)
	assert.Equal(t, 1, info.Channels)
	assert.InDelta(t, 150*time.Millisecond, info.Duration, float64(5*time.Millisecond))

	_, err = Probe(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)
}
