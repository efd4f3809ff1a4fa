package migrations

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"

	// Import ncruces driver - the same driver the history store uses
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// TestRunMigrations_FreshDB verifies all migrations apply to an empty :memory: database.
func TestRunMigrations_FreshDB(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err, "ncruces driver should open :memory: database")
	defer db.Close()

	err = RunMigrations(db)
	require.NoError(t, err, "RunMigrations should succeed on fresh database")

	var tableName string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='play_events'`).Scan(&tableName)
	require.NoError(t, err, "play_events table should exist")
	require.Equal(t, "play_events", tableName)
}

// TestRunMigrations_Idempotent verifies calling RunMigrations twice doesn't error.
func TestRunMigrations_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	defer db.Close()

	err = RunMigrations(db)
	require.NoError(t, err, "first migration run should succeed")

	// Second run should not error (ErrNoChange handled internally)
	err = RunMigrations(db)
	require.NoError(t, err, "second migration run should not error")

	var tableName string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='play_events'`).Scan(&tableName)
	require.NoError(t, err)
	require.Equal(t, "play_events", tableName)
}

// TestMigrations_Schema verifies play_events exists with correct columns and indexes.
func TestMigrations_Schema(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	defer db.Close()

	err = RunMigrations(db)
	require.NoError(t, err)

	rows, err := db.Query(`PRAGMA table_info(play_events)`)
	require.NoError(t, err)
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull, pk int
		var dflt interface{}
		err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk)
		require.NoError(t, err)
		columns[name] = true
	}
	require.NoError(t, rows.Err())

	expectedColumns := []string{"id", "session_id", "group_name", "bound_key", "sound_index", "action", "created_at"}
	for _, col := range expectedColumns {
		require.True(t, columns[col], "column %s should exist", col)
	}

	indexRows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='index' AND tbl_name='play_events'`)
	require.NoError(t, err)
	defer indexRows.Close()

	indexes := make(map[string]bool)
	for indexRows.Next() {
		var name string
		require.NoError(t, indexRows.Scan(&name))
		indexes[name] = true
	}
	require.NoError(t, indexRows.Err())

	expectedIndexes := []string{
		"idx_play_events_created_at",
		"idx_play_events_session_id",
	}
	for _, idx := range expectedIndexes {
		require.True(t, indexes[idx], "index %s should exist", idx)
	}
}

// TestMigrations_Down verifies down migration rolls back schema correctly.
func TestMigrations_Down(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	defer db.Close()

	// Apply migrations first using the lower-level API for down testing
	driver, err := newDriver(db)
	require.NoError(t, err)

	source, err := iofs.New(MigrationsFS(), ".")
	require.NoError(t, err)

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	require.NoError(t, err)

	err = m.Up()
	require.NoError(t, err, "migrations should apply")

	var tableExists bool
	err = db.QueryRow(`SELECT COUNT(*) > 0 FROM sqlite_master WHERE type='table' AND name='play_events'`).Scan(&tableExists)
	require.NoError(t, err)
	require.True(t, tableExists, "play_events table should exist before down migration")

	err = m.Down()
	require.NoError(t, err, "down migrations should succeed")

	err = db.QueryRow(`SELECT COUNT(*) > 0 FROM sqlite_master WHERE type='table' AND name='play_events'`).Scan(&tableExists)
	require.NoError(t, err)
	require.False(t, tableExists, "play_events table should be dropped after down migration")

	// Dropping the table removes its indexes as well
	var indexCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND tbl_name='play_events'`).Scan(&indexCount)
	require.NoError(t, err)
	require.Equal(t, 0, indexCount, "all indexes should be dropped")
}

// TestMigrationsFS_Embedded verifies SQL files load from embedded FS at build time.
func TestMigrationsFS_Embedded(t *testing.T) {
	fs := MigrationsFS()
	require.NotNil(t, fs, "MigrationsFS should return non-nil filesystem")

	entries, err := migrationFiles.ReadDir(".")
	require.NoError(t, err, "should read embedded directory")

	fileNames := make(map[string]bool)
	for _, entry := range entries {
		fileNames[entry.Name()] = true
	}

	require.True(t, fileNames["000001_create_play_events.up.sql"], "up migration should be embedded")
	require.True(t, fileNames["000001_create_play_events.down.sql"], "down migration should be embedded")

	upContent, err := migrationFiles.ReadFile("000001_create_play_events.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(upContent), "CREATE TABLE play_events")

	downContent, err := migrationFiles.ReadFile("000001_create_play_events.down.sql")
	require.NoError(t, err)
	require.Contains(t, string(downContent), "DROP TABLE")
}

// TestDriverWithGolangMigrate validates that the custom driver works with
// golang-migrate's framework over an ncruces/go-sqlite3 connection.
func TestDriverWithGolangMigrate(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err, "ncruces driver should open :memory: database")
	defer db.Close()

	err = db.Ping()
	require.NoError(t, err, "database should respond to ping")

	driver, err := newDriver(db)
	require.NoError(t, err, "newDriver should accept ncruces *sql.DB")
	require.NotNil(t, driver, "driver should not be nil")
}

// TestMigrateIdempotent verifies that running migrations twice handles ErrNoChange.
func TestMigrateIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	defer db.Close()

	driver1, err := newDriver(db)
	require.NoError(t, err)

	source1, err := iofs.New(MigrationsFS(), ".")
	require.NoError(t, err)

	m1, err := migrate.NewWithInstance("iofs", source1, "sqlite3", driver1)
	require.NoError(t, err)

	err = m1.Up()
	require.NoError(t, err, "first migration run should succeed")

	// Recreate migrator (simulates app restart)
	driver2, err := newDriver(db)
	require.NoError(t, err)

	source2, err := iofs.New(MigrationsFS(), ".")
	require.NoError(t, err)

	m2, err := migrate.NewWithInstance("iofs", source2, "sqlite3", driver2)
	require.NoError(t, err)

	err = m2.Up()
	if err != nil {
		require.True(t, errors.Is(err, migrate.ErrNoChange),
			"second migration run should return ErrNoChange, got: %v", err)
	}
}

// TestInsertAndQueryWithMigration verifies the migrated schema works for inserts.
func TestInsertAndQueryWithMigration(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:")
	require.NoError(t, err)
	defer db.Close()

	err = RunMigrations(db)
	require.NoError(t, err)

	result, err := db.Exec(`
		INSERT INTO play_events (session_id, group_name, bound_key, sound_index, action, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, "session-123", "Birds", "0", 1, "trigger", 1706000000)
	require.NoError(t, err, "insert should succeed")

	id, err := result.LastInsertId()
	require.NoError(t, err)
	require.Equal(t, int64(1), id, "first insert should have ID 1")

	var sessionID, groupName, boundKey, action string
	var soundIndex int
	var createdAt int64
	err = db.QueryRow(`
		SELECT session_id, group_name, bound_key, sound_index, action, created_at
		FROM play_events WHERE id = ?
	`, id).Scan(&sessionID, &groupName, &boundKey, &soundIndex, &action, &createdAt)
	require.NoError(t, err)
	require.Equal(t, "session-123", sessionID)
	require.Equal(t, "Birds", groupName)
	require.Equal(t, "0", boundKey)
	require.Equal(t, 1, soundIndex)
	require.Equal(t, "trigger", action)
	require.Equal(t, int64(1706000000), createdAt)

	// Action CHECK constraint rejects unknown values
	_, err = db.Exec(`
		INSERT INTO play_events (session_id, group_name, action, created_at)
		VALUES (?, ?, ?, ?)
	`, "session-123", "Birds", "bogus", 1706000000)
	require.Error(t, err, "CHECK constraint should reject invalid action")
}
