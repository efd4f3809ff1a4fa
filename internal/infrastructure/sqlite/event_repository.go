package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zjrosen/soundpad/internal/history"
)

// defaultRecentLimit caps Recent queries when the caller passes no limit.
const defaultRecentLimit = 50

// eventRepository implements history.Repository using SQLite.
type eventRepository struct {
	db *sql.DB
}

// newEventRepository creates a new eventRepository instance.
func newEventRepository(db *sql.DB) *eventRepository {
	return &eventRepository{db: db}
}

// Ensure eventRepository implements history.Repository.
var _ history.Repository = (*eventRepository)(nil)

// Append journals one play event. A zero CreatedAt is stamped with the
// current time.
func (r *eventRepository) Append(ev history.Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	model := toEventModel(ev)

	_, err := r.db.Exec(
		`INSERT INTO play_events (session_id, group_name, bound_key, sound_index, action, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		model.SessionID, model.GroupName, model.BoundKey, model.SoundIndex, model.Action, model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert play event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first. A non-positive limit
// falls back to defaultRecentLimit.
func (r *eventRepository) Recent(limit int) ([]history.Event, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := r.db.Query(
		`SELECT id, session_id, group_name, bound_key, sound_index, action, created_at
		 FROM play_events
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list play events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []history.Event
	for rows.Next() {
		var model playEventModel
		err := rows.Scan(&model.ID, &model.SessionID, &model.GroupName, &model.BoundKey, &model.SoundIndex, &model.Action, &model.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan play event row: %w", err)
		}
		events = append(events, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating play event rows: %w", err)
	}

	return events, nil
}
