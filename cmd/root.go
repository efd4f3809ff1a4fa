// Package cmd wires the soundpad command set together.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zjrosen/soundpad/internal/audio"
	"github.com/zjrosen/soundpad/internal/binding"
	"github.com/zjrosen/soundpad/internal/catalog"
	"github.com/zjrosen/soundpad/internal/config"
	"github.com/zjrosen/soundpad/internal/history"
	"github.com/zjrosen/soundpad/internal/infrastructure/sqlite"
	"github.com/zjrosen/soundpad/internal/log"
	"github.com/zjrosen/soundpad/internal/mode/board"
	"github.com/zjrosen/soundpad/internal/ui/styles"
	"github.com/zjrosen/soundpad/internal/watch"
)

var (
	cfgPath  string
	soundDir string
)

var rootCmd = &cobra.Command{
	Use:   "soundpad",
	Short: "Keyboard-driven soundboard for the terminal",
	Long: `Soundpad scans a directory for sound files named NNN_Name (take).wav|mp3,
binds each group to a key, and plays takes in sequence as you press keys.
Loop and stack modes, a live bindings table, and a play-history journal are
built in. Run it inside a directory of sounds, or point it somewhere with
--dir.`,
	RunE:         runBoard,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"config file (default ~/.config/soundpad/soundpad.yaml)")
	rootCmd.PersistentFlags().StringVarP(&soundDir, "dir", "d", "",
		"sound directory (overrides sound_dir from config)")
}

// Execute runs the root command. Cobra prints the error; we only set the
// exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for any subcommand. On
// the first ever run it writes the commented default config file so users
// have something to edit.
func loadConfig() (config.Config, error) {
	if cfgPath == "" {
		if defaultPath, err := config.DefaultConfigPath(); err == nil {
			if _, statErr := os.Stat(defaultPath); os.IsNotExist(statErr) {
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					fmt.Fprintf(os.Stderr, "Wrote default config to %s\n", defaultPath)
				}
			}
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	if soundDir != "" {
		cfg.SoundDir = soundDir
	}
	return cfg, nil
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := log.Init(cfg.LogFile, cfg.LogLevel); err != nil {
		return err
	}
	defer func() { _ = log.Close() }()
	log.Info(log.CatConfig, "Starting soundpad",
		"sound_dir", cfg.SoundDir, "watch", cfg.Watch, "history", cfg.History.Enabled)

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.Colors,
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	var notes []string

	// Supplemental collaborators degrade instead of failing startup.
	journal := history.Nop()
	if cfg.History.Enabled {
		db, dbErr := sqlite.NewDB(cfg.History.Path)
		if dbErr != nil {
			log.ErrorErr(log.CatDB, "History store unavailable", dbErr, "path", cfg.History.Path)
			notes = append(notes, "History unavailable: recording disabled")
		} else {
			defer func() { _ = db.Close() }()
			journal = db.EventRepository()
		}
	}
	sessionID := uuid.NewString()

	var player audio.Player
	speakerPlayer, audioErr := audio.NewSpeakerPlayer(audio.SpeakerOptions{
		VolumeStep: cfg.VolumeStep,
	})
	if audioErr != nil {
		log.ErrorErr(log.CatAudio, "Audio device unavailable", audioErr)
		notes = append(notes, "Audio device unavailable: running silent")
		player = audio.NopPlayer()
	} else {
		defer func() { _ = speakerPlayer.Close() }()
		player = speakerPlayer
	}

	table, err := binding.New()
	if err != nil {
		return fmt.Errorf("building binding table: %w", err)
	}

	paths, err := catalog.ListDir(cfg.SoundDir)
	if err != nil {
		return err
	}
	cat := catalog.Build(player, table, paths)
	defer cat.Close()

	if pending := audio.WaitAllReady(cat.Handles(), cfg.ReadyTimeout); len(pending) > 0 {
		notes = append(notes, fmt.Sprintf("%d sounds not ready after %s", len(pending), cfg.ReadyTimeout))
		for _, h := range pending {
			log.Warn(log.CatAudio, "Sound not ready at startup", "path", h.Path())
		}
	}
	for _, name := range cat.Dropped() {
		notes = append(notes, fmt.Sprintf("Dropped %s: no free keys", name))
	}

	// Nothing may be audible before the first keypress.
	for _, h := range cat.Handles() {
		if err := h.Stop(); err != nil {
			log.Warn(log.CatAudio, "Startup stop failed", "path", h.Path(), "error", err)
		}
	}

	var watcher *watch.Watcher
	if cfg.Watch {
		watcher, err = watch.New(cfg.SoundDir)
		if err != nil {
			log.ErrorErr(log.CatWatch, "Directory watch unavailable", err, "dir", cfg.SoundDir)
			notes = append(notes, "Directory watch unavailable")
			watcher = nil
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	m := board.New(board.Config{
		Catalog:      cat,
		Table:        table,
		Player:       player,
		Journal:      journal,
		SessionID:    sessionID,
		Watcher:      watcher,
		TickInterval: cfg.TickInterval,
		StartupNotes: notes,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}

	// The board stop-alls on quit; stopping again covers abnormal exits.
	// Handle release happens in the deferred catalog Close.
	for _, h := range cat.Handles() {
		_ = h.Stop()
	}
	log.Info(log.CatUI, "Soundpad exited", "session", sessionID)
	fmt.Println("All sounds stopped.")
	return nil
}
