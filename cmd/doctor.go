package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundpad/internal/audio"
	"github.com/zjrosen/soundpad/internal/catalog"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that every sound file parses and decodes",
	Long: `Walk the sound directory and report, per file, whether its name matches
the NNN_Name (take).wav|mp3 grammar and whether it decodes. Exits nonzero
when any file fails to decode.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	paths, err := catalog.ListDir(cfg.SoundDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("No sound files found in %s\n", cfg.SoundDir)
		return nil
	}

	nameWidth := 0
	for _, p := range paths {
		if n := len(filepath.Base(p)); n > nameWidth {
			nameWidth = n
		}
	}

	var ok, skipped, failed int
	for _, p := range paths {
		name := filepath.Base(p)
		if _, parsed := catalog.ParseFilename(p); !parsed {
			skipped++
			fmt.Printf("  %-*s  SKIP  name does not match NNN_Name (take).wav|mp3\n", nameWidth, name)
			continue
		}
		info, err := audio.Probe(p)
		if err != nil {
			failed++
			fmt.Printf("  %-*s  FAIL  %v\n", nameWidth, name, err)
			continue
		}
		ok++
		fmt.Printf("  %-*s  OK    %d Hz, %d ch, %s\n",
			nameWidth, name, info.SampleRate, info.Channels, info.Duration.Round(time.Millisecond))
	}

	fmt.Printf("\n%d ok, %d skipped, %d failed\n", ok, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(paths))
	}
	return nil
}
