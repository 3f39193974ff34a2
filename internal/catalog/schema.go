package catalog

import "database/sql"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	root        TEXT NOT NULL,
	files       INTEGER NOT NULL,
	definitions INTEGER NOT NULL,
	elapsed_ms  INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS definitions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	doc_comment TEXT NOT NULL DEFAULT '',
	attributes  TEXT NOT NULL DEFAULT '[]',
	modifiers   TEXT NOT NULL DEFAULT '[]',
	kind        TEXT NOT NULL,
	name        TEXT NOT NULL,
	signature   TEXT NOT NULL,
	file        TEXT NOT NULL,
	line        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_definitions_kind ON definitions(kind);
CREATE INDEX IF NOT EXISTS idx_definitions_name ON definitions(name);
CREATE INDEX IF NOT EXISTS idx_definitions_file ON definitions(file);
`

// createSchema applies the catalog schema. Statements are idempotent so an
// existing database is left untouched.
func createSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}
