// Package board is the soundboard's single mode: a Bubble Tea model that
// maps key and mouse input through a fixed precedence table onto the
// playback machine. A periodic tick restarts looping sounds and drains
// the directory watcher; the view renders the pad grid, activity feed,
// bindings table, and help.
//
// Messages are processed one at a time on the program goroutine, so the
// catalog and machine need no locks.
package board

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/soundpad/internal/audio"
	"github.com/zjrosen/soundpad/internal/binding"
	"github.com/zjrosen/soundpad/internal/catalog"
	"github.com/zjrosen/soundpad/internal/history"
	"github.com/zjrosen/soundpad/internal/log"
	"github.com/zjrosen/soundpad/internal/playback"
	"github.com/zjrosen/soundpad/internal/ui/clipboard"
	"github.com/zjrosen/soundpad/internal/watch"
)

const (
	defaultTickInterval = 100 * time.Millisecond

	// feedCapacity bounds the activity feed's memory; the view shows only
	// the newest few lines anyway.
	feedCapacity = 50
)

// Config wires the board's collaborators. Catalog and Table are required;
// everything else has a working default.
type Config struct {
	Catalog *catalog.Catalog
	Table   *binding.Table
	Player  audio.Player

	Journal   history.Repository
	SessionID string

	Clipboard clipboard.Clipboard
	Watcher   *watch.Watcher

	TickInterval time.Duration

	// StartupNotes seed the activity feed so warnings from the build
	// phase (dropped groups, unready handles) survive into the first
	// frame.
	StartupNotes []string
}

// Model is the board. All mutation happens inside Update.
type Model struct {
	cat     *catalog.Catalog
	table   *binding.Table
	machine *playback.Machine
	volume  audio.VolumeControl // nil when the player has no master gain

	journal   history.Repository
	sessionID string

	clip    clipboard.Clipboard
	watcher *watch.Watcher

	zones *zone.Manager
	keys  KeyMap
	help  help.Model

	tick time.Duration

	width, height int
	showBindings  bool
	showHelp      bool
	quitting      bool

	feed []string
}

// New builds the board model over an already-built catalog.
func New(cfg Config) Model {
	m := Model{
		cat:       cfg.Catalog,
		table:     cfg.Table,
		machine:   playback.New(cfg.Catalog),
		journal:   cfg.Journal,
		sessionID: cfg.SessionID,
		clip:      cfg.Clipboard,
		watcher:   cfg.Watcher,
		zones:     zone.New(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		tick:      cfg.TickInterval,
	}
	if m.tick <= 0 {
		m.tick = defaultTickInterval
	}
	if m.journal == nil {
		m.journal = history.Nop()
	}
	if m.clip == nil {
		m.clip = clipboard.System{}
	}
	if vc, ok := cfg.Player.(audio.VolumeControl); ok {
		m.volume = vc
	}

	for _, note := range cfg.StartupNotes {
		m.pushFeed(note)
	}
	m.pushFeed(fmt.Sprintf("Ready: %d groups, %d sounds",
		cfg.Catalog.Len(), len(cfg.Catalog.Handles())))
	return m
}

// Init schedules the first tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// pushFeed appends one activity line, newest last.
func (m *Model) pushFeed(line string) {
	m.feed = append(m.feed, line)
	if len(m.feed) > feedCapacity {
		m.feed = m.feed[len(m.feed)-feedCapacity:]
	}
}

// record journals a playback action. Journaling is best-effort: failures
// land in the feed and the log, never in playback.
func (m *Model) record(group string, key rune, index int, action history.Action) {
	keyStr := ""
	if key != 0 {
		keyStr = string(key)
	}
	err := m.journal.Append(history.Event{
		SessionID:  m.sessionID,
		GroupName:  group,
		Key:        keyStr,
		SoundIndex: index,
		Action:     action,
	})
	if err != nil {
		log.ErrorErr(log.CatHistory, "journal append failed", err, "action", string(action))
		m.pushFeed(fmt.Sprintf("History write failed: %v", err))
	}
}

// trigger advances a group one step and journals the outcome.
func (m *Model) trigger(g *catalog.Group) {
	ev := m.machine.TriggerNext(g)
	switch ev.Kind {
	case playback.KindPlayed:
		m.record(g.Name, g.Key, ev.Index, history.ActionTrigger)
		m.pushFeed(fmt.Sprintf("Played %s [%d/%d]", g.Name, ev.Index+1, len(g.Sounds)))
	case playback.KindCompleted:
		m.record(g.Name, g.Key, catalog.NoIndex, history.ActionComplete)
		m.pushFeed(fmt.Sprintf("Sequence complete: %s", g.Name))
	}
}

// replay re-triggers the group's current position; an idle group replays
// its first sound.
func (m *Model) replay(g *catalog.Group) {
	index := g.LastPlayedIndex
	if index == catalog.NoIndex {
		index = 0
	}
	ev, err := m.machine.TriggerIndex(g, index)
	if err != nil {
		m.pushFeed(fmt.Sprintf("Replay failed: %v", err))
		return
	}
	m.record(g.Name, g.Key, ev.Index, history.ActionTrigger)
	m.pushFeed(fmt.Sprintf("Replayed %s [%d/%d]", g.Name, ev.Index+1, len(g.Sounds)))
}

// stopAll silences everything and journals it. Sequence positions are
// kept so the next trigger resumes rather than restarts.
func (m *Model) stopAll() int {
	stopped := m.machine.StopAll()
	m.record("", 0, catalog.NoIndex, history.ActionStopAll)
	return stopped
}

// runTick restarts naturally-ended looping handles and drains the
// watcher into the feed.
func (m *Model) runTick() {
	for _, ev := range m.machine.Tick() {
		m.record(ev.Group.Name, ev.Group.Key, ev.Index, history.ActionLoopRestart)
	}
	m.drainWatcher()
}

func (m *Model) drainWatcher() {
	if m.watcher == nil {
		return
	}
	for {
		select {
		case ev := <-m.watcher.Events():
			m.pushFeed(fmt.Sprintf("Sound %s: %s (restart to rescan)",
				ev.Type, shortPath(ev.Path)))
		default:
			return
		}
	}
}
