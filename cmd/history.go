package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundpad/internal/history"
	"github.com/zjrosen/soundpad/internal/infrastructure/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent play history",
	Long:  `List the most recent journaled play events, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of events to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("%w; enable history in %s", history.ErrDisabled, "~/.config/soundpad/soundpad.yaml")
	}

	db, err := sqlite.NewDB(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = db.Close() }()

	events, err := db.EventRepository().Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No play history yet.")
		return nil
	}

	groupWidth := len("group")
	for _, ev := range events {
		if n := len(ev.GroupName); n > groupWidth {
			groupWidth = n
		}
	}

	fmt.Printf("%-19s  %-12s  %-*s  %-4s  %s\n", "when", "action", groupWidth, "group", "key", "take")
	for _, ev := range events {
		group := ev.GroupName
		if group == "" {
			group = "-"
		}
		key := ev.Key
		if key == "" {
			key = "-"
		}
		take := "-"
		if ev.SoundIndex >= 0 {
			take = strconv.Itoa(ev.SoundIndex + 1)
		}
		fmt.Printf("%-19s  %-12s  %-*s  %-4s  %s\n",
			ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.Action, groupWidth, group, key, take)
	}
	return nil
}
