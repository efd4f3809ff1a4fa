// Package playback drives the per-group state machine: sequential advance,
// explicit-index triggers, tick-driven loop restarts, and the global
// stop-all. Every transition runs synchronously on the dispatcher
// goroutine; adapter failures are reported where they happen and never
// propagate, so the dispatcher survives any single handle failure.
package playback

import (
	"errors"
	"fmt"

	"github.com/zjrosen/soundpad/internal/catalog"
	"github.com/zjrosen/soundpad/internal/log"
)

// ErrIndexOutOfRange is returned by TriggerIndex for indexes outside the
// group's sound list.
var ErrIndexOutOfRange = errors.New("playback: sound index out of range")

// Kind classifies what a transition did.
type Kind uint8

const (
	// KindNone means the transition changed nothing.
	KindNone Kind = iota
	// KindPlayed means a sound started.
	KindPlayed
	// KindCompleted means the sequence finished and the group reset to idle.
	KindCompleted
	// KindLoopRestart means the tick restarted a naturally-ended handle.
	KindLoopRestart
)

// String returns the kind name for feeds and the journal.
func (k Kind) String() string {
	switch k {
	case KindPlayed:
		return "played"
	case KindCompleted:
		return "completed"
	case KindLoopRestart:
		return "loop_restart"
	default:
		return "none"
	}
}

// Event describes one transition outcome.
type Event struct {
	Kind  Kind
	Group *catalog.Group
	Index int
}

// GlobalState holds the process-wide loop and stack toggles. The values are
// copied into a group's flags at the moment it is triggered; a playing
// group keeps the mode it started with until its next trigger.
type GlobalState struct {
	Loop  bool
	Stack bool
}

// ToggleLoop flips the loop flag and returns the new value.
func (s *GlobalState) ToggleLoop() bool {
	s.Loop = !s.Loop
	return s.Loop
}

// ToggleStack flips the stack flag and returns the new value.
func (s *GlobalState) ToggleStack() bool {
	s.Stack = !s.Stack
	return s.Stack
}

// Machine owns the global toggles and applies transitions to catalog
// groups. It is not safe for concurrent use; the dispatcher goroutine owns
// it, and by construction nothing else touches group state.
type Machine struct {
	cat    *catalog.Catalog
	global GlobalState
}

// New returns a machine over the catalog with both toggles off.
func New(cat *catalog.Catalog) *Machine {
	return &Machine{cat: cat}
}

// Global returns the current toggle values.
func (m *Machine) Global() GlobalState { return m.global }

// ToggleLoop flips the global loop mode.
func (m *Machine) ToggleLoop() bool {
	v := m.global.ToggleLoop()
	log.Info(log.CatPlayback, "Loop mode toggled", "enabled", v)
	return v
}

// ToggleStack flips the global stack mode.
func (m *Machine) ToggleStack() bool {
	v := m.global.ToggleStack()
	log.Info(log.CatPlayback, "Stack mode toggled", "enabled", v)
	return v
}

// TriggerNext advances the group one step: stop the current sound (unless
// stacking), then play the next. Triggering past the last sound emits a
// completion instead and resets the group to idle, so the press after that
// restarts the sequence at index zero.
func (m *Machine) TriggerNext(g *catalog.Group) Event {
	if len(g.Sounds) == 0 {
		return Event{Kind: KindNone, Group: g}
	}

	m.snapshot(g)

	if !g.StackEnabled && g.LastPlayedIndex >= 0 {
		m.stop(g, g.LastPlayedIndex)
	}

	if g.LastPlayedIndex == len(g.Sounds)-1 {
		g.LastPlayedIndex = catalog.NoIndex
		log.Debug(log.CatPlayback, "Sequence complete", "group", g.Name)
		return Event{Kind: KindCompleted, Group: g, Index: catalog.NoIndex}
	}

	next := g.LastPlayedIndex + 1
	m.start(g, next)
	g.LastPlayedIndex = next
	log.Debug(log.CatPlayback, "Trigger", "group", g.Name, "index", next,
		"loop", g.LoopEnabled, "stack", g.StackEnabled)
	return Event{Kind: KindPlayed, Group: g, Index: next}
}

// TriggerIndex plays an explicit index, bypassing sequence advance. The
// current sound is stopped first unless stacking, so re-triggering the
// active index restarts it.
func (m *Machine) TriggerIndex(g *catalog.Group, index int) (Event, error) {
	if index < 0 || index >= len(g.Sounds) {
		return Event{Kind: KindNone, Group: g, Index: index},
			fmt.Errorf("group %q has %d sounds, want index %d: %w",
				g.Name, len(g.Sounds), index, ErrIndexOutOfRange)
	}

	m.snapshot(g)

	if !g.StackEnabled && g.LastPlayedIndex >= 0 {
		m.stop(g, g.LastPlayedIndex)
	}

	g.LastPlayedIndex = index
	m.start(g, index)
	log.Debug(log.CatPlayback, "Trigger specific", "group", g.Name, "index", index)
	return Event{Kind: KindPlayed, Group: g, Index: index}, nil
}

// Tick restarts naturally-ended handles of looping groups. Non-stacked
// groups are inspected only at their last played index; stacked groups from
// zero through it, since earlier overlays may still be sounding. Handles
// that are not at their end are left alone, which makes repeated ticks
// idempotent.
func (m *Machine) Tick() []Event {
	var events []Event
	for _, g := range m.cat.Groups() {
		if !g.LoopEnabled || g.Idle() {
			continue
		}
		last := g.LastPlayedIndex
		first := last
		if g.StackEnabled {
			first = 0
		}
		for i := first; i <= last; i++ {
			h := g.Sounds[i]
			if !h.AtEnd() {
				continue
			}
			if err := h.Seek(0); err != nil {
				log.Warn(log.CatPlayback, "Loop reseek failed",
					"group", g.Name, "index", i, "error", err)
				continue
			}
			if err := h.Play(); err != nil {
				log.Warn(log.CatPlayback, "Loop replay failed",
					"group", g.Name, "index", i, "error", err)
				continue
			}
			events = append(events, Event{Kind: KindLoopRestart, Group: g, Index: i})
		}
	}
	return events
}

// StopAll silences every handle in every group and returns how many stops
// succeeded. Playback positions and lastPlayedIndex are left untouched: a
// later sequential trigger resumes from the stopped position's successor.
func (m *Machine) StopAll() int {
	stopped := 0
	for _, g := range m.cat.Groups() {
		for i, h := range g.Sounds {
			if err := h.Stop(); err != nil {
				log.Warn(log.CatPlayback, "Stop failed",
					"group", g.Name, "index", i, "error", err)
				continue
			}
			stopped++
		}
	}
	log.Debug(log.CatPlayback, "Stop all", "stopped", stopped)
	return stopped
}

// snapshot copies the global toggles into the group, fixing the mode this
// trigger runs under.
func (m *Machine) snapshot(g *catalog.Group) {
	g.LoopEnabled = m.global.Loop
	g.StackEnabled = m.global.Stack
	if g.StackEnabled {
		g.Mode = catalog.ModeParallel
	} else {
		g.Mode = catalog.ModeSequential
	}
}

func (m *Machine) start(g *catalog.Group, i int) {
	h := g.Sounds[i]
	if err := h.Seek(0); err != nil {
		log.Warn(log.CatPlayback, "Seek failed", "group", g.Name, "index", i, "error", err)
	}
	if err := h.Play(); err != nil {
		log.Warn(log.CatPlayback, "Play failed", "group", g.Name, "index", i, "error", err)
	}
}

func (m *Machine) stop(g *catalog.Group, i int) {
	if err := g.Sounds[i].Stop(); err != nil {
		log.Warn(log.CatPlayback, "Stop failed", "group", g.Name, "index", i, "error", err)
	}
}
