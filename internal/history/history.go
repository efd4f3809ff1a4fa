// Package history defines the play-event journal: every trigger, sequence
// completion, loop restart, and stop-all can be recorded per board session
// and read back by the history subcommand. Journaling is strictly
// best-effort; a failing repository never disturbs playback.
package history

import (
	"errors"
	"time"
)

// ErrDisabled is returned when history is turned off in the configuration.
var ErrDisabled = errors.New("history: disabled in config")

// Action classifies a journaled event.
type Action string

const (
	ActionTrigger     Action = "trigger"
	ActionComplete    Action = "complete"
	ActionLoopRestart Action = "loop_restart"
	ActionStopAll     Action = "stop_all"
)

// Event is one journaled playback action. Key and SoundIndex are empty and
// -1 for whole-board actions such as stop-all.
type Event struct {
	ID         int64
	SessionID  string
	GroupName  string
	Key        string
	SoundIndex int
	Action     Action
	CreatedAt  time.Time
}

// Repository stores and reads events. The SQLite implementation lives in
// internal/infrastructure/sqlite.
type Repository interface {
	// Append journals one event.
	Append(ev Event) error

	// Recent returns up to limit events, newest first.
	Recent(limit int) ([]Event, error)
}

// Nop returns a Repository that drops writes and reads back nothing, for
// runs with history disabled.
func Nop() Repository { return nopRepository{} }

type nopRepository struct{}

func (nopRepository) Append(Event) error { return nil }

func (nopRepository) Recent(int) ([]Event, error) { return nil, nil }
