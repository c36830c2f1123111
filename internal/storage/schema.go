// ABOUTME: Versioned schema migration chain for the lift database.
// ABOUTME: Migrations are additive, idempotent, and applied one tx per version.
package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// latestVersion is the schema version this build of lift writes.
const latestVersion = 9

// migration declares one schema version. apply runs exactly once, inside
// its own transaction, when a store's user_version is behind. Steps must
// be additive (never drop user rows) and idempotent: backfills detect
// already-migrated rows and skip them.
type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx) error
}

var migrations = []migration{
	{1, "exercise library, equipment catalog, workout spaces", migrateV1},
	{2, "templates", migrateV2},
	{3, "workout log", migrateV3},
	{4, "planned workouts", migrateV4},
	{5, "exercise aliases and defaults", migrateV5},
	{6, "required equipment backfill", migrateV6},
	{7, "stable exercise ids", migrateV7},
	{8, "canonical sessions", migrateV8},
	{9, "temporary spaces and reflections", migrateV9},
}

// migrateTo applies every migration newer than the store's user_version,
// up to and including target. Each version transitions in its own
// transaction; a failing step rolls back and leaves the store pinned at
// the prior version, surfaced as a fatal error from Open.
func (d *DB) migrateTo(target int) error {
	current, err := d.schemaVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current || m.version > target {
			continue
		}

		tx, err := d.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		// PRAGMA cannot be parameterized
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: set version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", m.version, err)
		}
	}

	return nil
}

// schemaVersion reads the store's current schema version.
func (d *DB) schemaVersion() (int, error) {
	var v int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// hasColumn reports whether a table already carries a column. ALTER TABLE
// ADD COLUMN is not idempotent in SQLite, so additive steps check first.
func hasColumn(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scan table_info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// addColumn adds a column if it is not already present.
func addColumn(tx *sql.Tx, table, column, definition string) error {
	ok, err := hasColumn(tx, table, column)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	_, err = tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	if err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

// migrateV1 creates the exercise library, equipment catalog, and workout
// spaces, and seeds the static equipment taxonomy.
func migrateV1(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS equipment (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		is_portable INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		primary_muscles TEXT NOT NULL DEFAULT '[]',
		secondary_muscles TEXT NOT NULL DEFAULT '[]',
		equipment TEXT NOT NULL DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'starter',
		is_custom INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_spaces (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		equipment_ids TEXT NOT NULL DEFAULT '[]',
		is_default INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_slug ON exercises(slug);
	CREATE INDEX IF NOT EXISTS idx_exercises_status ON exercises(status);
	CREATE INDEX IF NOT EXISTS idx_spaces_default ON workout_spaces(is_default);
	`
	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	return seedEquipment(tx)
}

// migrateV2 adds reusable templates with ordered items.
func migrateV2(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		space_id INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS template_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		sort_order INTEGER NOT NULL,
		target_sets INTEGER NOT NULL,
		target_reps TEXT NOT NULL,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_template_items_template ON template_items(template_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_template_items_exercise ON template_items(template_id, exercise_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_template_items_order ON template_items(template_id, sort_order);
	`
	_, err := tx.Exec(schema)
	return err
}

// migrateV3 adds the workout log: the legacy workouts table plus items and
// sets. The workouts table is superseded by sessions in v8 but never
// dropped; v8 copies its rows forward preserving ids.
func migrateV3(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		template_id INTEGER,
		space_id INTEGER,
		note TEXT
	);

	CREATE TABLE IF NOT EXISTS session_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		sort_order INTEGER NOT NULL,
		target_sets INTEGER NOT NULL,
		target_reps TEXT NOT NULL,
		rest_seconds INTEGER,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS session_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL,
		set_number INTEGER NOT NULL,
		weight REAL,
		reps TEXT NOT NULL,
		is_warmup INTEGER NOT NULL DEFAULT 0,
		is_complete INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_started ON workouts(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_session_items_session ON session_items(session_id);
	CREATE INDEX IF NOT EXISTS idx_session_items_exercise ON session_items(exercise_id);
	CREATE INDEX IF NOT EXISTS idx_session_sets_item ON session_sets(item_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_session_sets_number ON session_sets(item_id, set_number);
	`
	_, err := tx.Exec(schema)
	return err
}

// migrateV4 adds planned workouts for calendar scheduling.
func migrateV4(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS planned_workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		template_id INTEGER,
		exercises TEXT,
		source TEXT NOT NULL DEFAULT 'user'
	);

	CREATE INDEX IF NOT EXISTS idx_planned_date ON planned_workouts(date);
	`
	_, err := tx.Exec(schema)
	return err
}

// migrateV5 adds aliases and default set/rep targets to exercises, and
// backfills defaults for legacy rows.
func migrateV5(tx *sql.Tx) error {
	if err := addColumn(tx, "exercises", "aliases", "TEXT NOT NULL DEFAULT '[]'"); err != nil {
		return err
	}
	if err := addColumn(tx, "exercises", "default_sets", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return err
	}
	if err := addColumn(tx, "exercises", "default_reps", "TEXT NOT NULL DEFAULT ''"); err != nil {
		return err
	}

	// Backfill only rows still carrying the zero value.
	if _, err := tx.Exec("UPDATE exercises SET default_sets = 3 WHERE default_sets = 0"); err != nil {
		return fmt.Errorf("backfill default_sets: %w", err)
	}
	if _, err := tx.Exec("UPDATE exercises SET default_reps = '8-12' WHERE default_reps = ''"); err != nil {
		return fmt.Errorf("backfill default_reps: %w", err)
	}
	return nil
}

// migrateV6 splits the flat equipment set into required/optional lists.
// Legacy rows infer the first listed equipment as required and the rest as
// optional; rows already populated are skipped.
func migrateV6(tx *sql.Tx) error {
	if err := addColumn(tx, "exercises", "required_equipment", "TEXT NOT NULL DEFAULT '[]'"); err != nil {
		return err
	}
	if err := addColumn(tx, "exercises", "optional_equipment", "TEXT NOT NULL DEFAULT '[]'"); err != nil {
		return err
	}

	rows, err := tx.Query(`
		SELECT id, equipment FROM exercises
		WHERE required_equipment = '[]' AND equipment != '[]'`)
	if err != nil {
		return fmt.Errorf("scan legacy equipment: %w", err)
	}
	defer rows.Close()

	type backfill struct {
		id                 int64
		required, optional string
	}
	var pending []backfill
	for rows.Next() {
		var id int64
		var equipment string
		if err := rows.Scan(&id, &equipment); err != nil {
			return fmt.Errorf("scan exercise equipment: %w", err)
		}
		ids := unmarshalStrings(equipment)
		if len(ids) == 0 {
			continue
		}
		pending = append(pending, backfill{
			id:       id,
			required: marshalStrings(ids[:1]),
			optional: marshalStrings(ids[1:]),
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, b := range pending {
		_, err := tx.Exec(
			"UPDATE exercises SET required_equipment = ?, optional_equipment = ? WHERE id = ?",
			b.required, b.optional, b.id,
		)
		if err != nil {
			return fmt.Errorf("backfill equipment for exercise %d: %w", b.id, err)
		}
	}
	return nil
}

// migrateV7 introduces content-derived stable ids so re-imports of the
// starter library map onto existing rows. Rows already holding an id keep
// it; the unique index lands after the backfill.
func migrateV7(tx *sql.Tx) error {
	if err := addColumn(tx, "exercises", "stable_id", "TEXT NOT NULL DEFAULT ''"); err != nil {
		return err
	}

	rows, err := tx.Query("SELECT id, slug, primary_muscles FROM exercises WHERE stable_id = ''")
	if err != nil {
		return fmt.Errorf("scan exercises without stable_id: %w", err)
	}
	defer rows.Close()

	type backfill struct {
		id       int64
		stableID string
	}
	var pending []backfill
	for rows.Next() {
		var id int64
		var slug, muscles string
		if err := rows.Scan(&id, &slug, &muscles); err != nil {
			return fmt.Errorf("scan exercise: %w", err)
		}
		pending = append(pending, backfill{id: id, stableID: StableID(slug, unmarshalStrings(muscles))})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, b := range pending {
		if _, err := tx.Exec("UPDATE exercises SET stable_id = ? WHERE id = ?", b.stableID, b.id); err != nil {
			return fmt.Errorf("backfill stable_id for exercise %d: %w", b.id, err)
		}
	}

	_, err = tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_exercises_stable ON exercises(stable_id)")
	return err
}

// migrateV8 replaces the legacy workouts table with canonical sessions.
// Rows are copied forward preserving their original ids so session_items
// keep pointing at the right parents; INSERT OR IGNORE makes a re-run a
// no-op. The legacy table stays in place, deprecated and ignored.
func migrateV8(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		template_id INTEGER,
		space_id INTEGER,
		note TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_finished ON sessions(finished_at);
	`
	if _, err := tx.Exec(schema); err != nil {
		return err
	}

	_, err := tx.Exec(`
		INSERT OR IGNORE INTO sessions (id, started_at, finished_at, template_id, space_id, note)
		SELECT id, started_at, finished_at, template_id, space_id, note FROM workouts`)
	if err != nil {
		return fmt.Errorf("copy legacy workouts: %w", err)
	}
	return nil
}

// migrateV9 adds temporary spaces, session reflections, and per-exercise
// coaching notes.
func migrateV9(tx *sql.Tx) error {
	if err := addColumn(tx, "workout_spaces", "is_temporary", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return err
	}
	if err := addColumn(tx, "workout_spaces", "expires_at", "TEXT"); err != nil {
		return err
	}
	if err := addColumn(tx, "sessions", "reflection", "TEXT"); err != nil {
		return err
	}

	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS exercise_notes (
		exercise_id INTEGER PRIMARY KEY,
		note TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	return err
}

// nowString is the canonical timestamp encoding for TEXT columns.
func nowString() string {
	return time.Now().Format(time.RFC3339)
}
