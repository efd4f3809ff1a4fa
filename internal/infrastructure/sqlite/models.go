package sqlite

import (
	"time"

	"github.com/zjrosen/soundpad/internal/history"
)

// playEventModel represents the database row for the play_events table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type playEventModel struct {
	ID         int64
	SessionID  string
	GroupName  string
	BoundKey   string
	SoundIndex int64
	Action     string
	CreatedAt  int64 // Unix timestamp
}

// toEventModel converts a history.Event to a database playEventModel.
func toEventModel(ev history.Event) playEventModel {
	return playEventModel{
		ID:         ev.ID,
		SessionID:  ev.SessionID,
		GroupName:  ev.GroupName,
		BoundKey:   ev.Key,
		SoundIndex: int64(ev.SoundIndex),
		Action:     string(ev.Action),
		CreatedAt:  ev.CreatedAt.Unix(),
	}
}

// toDomain converts a database playEventModel to a history.Event.
func (m playEventModel) toDomain() history.Event {
	return history.Event{
		ID:         m.ID,
		SessionID:  m.SessionID,
		GroupName:  m.GroupName,
		Key:        m.BoundKey,
		SoundIndex: int(m.SoundIndex),
		Action:     history.Action(m.Action),
		CreatedAt:  time.Unix(m.CreatedAt, 0),
	}
}
