// Package demo synthesizes a small, grammar-conforming WAV pack so the
// board is usable before the user has recorded anything.
package demo

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/zjrosen/soundpad/internal/log"
)

const (
	sampleRate = 44100
	bitDepth   = 16
	amplitude  = 0.4

	// fadeSamples ramps each take in and out so restarts never click.
	fadeSamples = sampleRate / 100
)

// take is one synthesized file. Multi-take groups demonstrate sequential
// triggering; the long drone is there for loop and stack experiments.
type take struct {
	file  string
	freq  float64
	dur   time.Duration
	decay bool
}

var pack = []take{
	{file: "001_Beep (1).wav", freq: 440, dur: 300 * time.Millisecond},
	{file: "001_Beep (2).wav", freq: 554, dur: 300 * time.Millisecond},
	{file: "001_Beep (3).wav", freq: 659, dur: 300 * time.Millisecond},
	{file: "002_Chime (1).wav", freq: 880, dur: 600 * time.Millisecond, decay: true},
	{file: "002_Chime (2).wav", freq: 1175, dur: 600 * time.Millisecond, decay: true},
	{file: "003_Drone (1).wav", freq: 110, dur: 1500 * time.Millisecond},
	{file: "004_Click (1).wav", freq: 1760, dur: 80 * time.Millisecond},
}

// Generate writes the demo pack into dir, creating the directory if
// needed. Files that already exist are left alone. It returns the paths
// it wrote.
func Generate(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	written := make([]string, 0, len(pack))
	for _, tk := range pack {
		path := filepath.Join(dir, tk.file)
		if _, err := os.Stat(path); err == nil {
			log.Debug(log.CatAudio, "demo file exists, skipping", "path", path)
			continue
		}
		if err := writeTone(path, tk); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", tk.file, err)
		}
		written = append(written, path)
	}

	log.Info(log.CatAudio, "demo pack generated", "dir", dir, "files", len(written))
	return written, nil
}

func writeTone(path string, tk take) (retErr error) {
	f, err := os.Create(path) //nolint:gosec // G304: path built from the fixed pack table
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && retErr == nil {
			retErr = closeErr
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
		Data:           synthesize(tk),
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// synthesize renders a sine tone as 16-bit mono PCM.
func synthesize(tk take) []int {
	n := int(float64(sampleRate) * tk.dur.Seconds())
	data := make([]int, n)

	for i := range data {
		v := amplitude * math.Sin(2*math.Pi*tk.freq*float64(i)/sampleRate)
		if tk.decay {
			v *= 1 - float64(i)/float64(n)
		}
		if i < fadeSamples {
			v *= float64(i) / float64(fadeSamples)
		}
		if rem := n - 1 - i; rem < fadeSamples {
			v *= float64(rem) / float64(fadeSamples)
		}
		data[i] = int(v * math.MaxInt16)
	}
	return data
}
