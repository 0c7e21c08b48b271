package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	code     INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	code          INTEGER PRIMARY KEY,
	name          TEXT NOT NULL,
	status        INTEGER NOT NULL DEFAULT 0,
	rep_user_code INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS logs (
	task_code        INTEGER NOT NULL,
	change_user_code INTEGER NOT NULL,
	status           INTEGER NOT NULL,
	change_date      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_logs_task_code ON logs(task_code);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
