package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create sessions and answers",
		SQL: `
			CREATE TABLE sessions (
				conversation_id TEXT PRIMARY KEY,
				step            TEXT NOT NULL,
				user_id         TEXT NOT NULL DEFAULT '',
				token           TEXT NOT NULL DEFAULT '',
				category        TEXT NOT NULL DEFAULT '',
				created_at      TEXT NOT NULL DEFAULT (datetime('now')),
				updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_sessions_user ON sessions (user_id);

			CREATE TABLE answers (
				id          TEXT PRIMARY KEY,
				user_id     TEXT NOT NULL,
				step_label  TEXT NOT NULL,
				raw_text    TEXT NOT NULL,
				evaluation  TEXT NOT NULL,
				recorded_at TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_answers_user ON answers (user_id, recorded_at);
		`,
	},
	{
		Version: 2,
		Name:    "create participants directory",
		SQL: `
			CREATE TABLE participants (
				identifier  TEXT PRIMARY KEY,
				token       TEXT NOT NULL,
				category    TEXT NOT NULL,
				attended    INTEGER NOT NULL DEFAULT 0,
				attended_at TEXT,
				created_at  TEXT NOT NULL DEFAULT (datetime('now'))
			);
		`,
	},
}
