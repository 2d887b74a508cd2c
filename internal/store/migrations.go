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

CREATE TABLE IF NOT EXISTS problem (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT NOT NULL DEFAULT '',
	difficulty     INTEGER NOT NULL DEFAULT 0,
	time_taken     INTEGER NOT NULL DEFAULT 0,
	problem_url    TEXT NOT NULL DEFAULT '',
	solution_url   TEXT NOT NULL DEFAULT '',
	file_path      TEXT NOT NULL DEFAULT '',
	no_of_attempts INTEGER NOT NULL DEFAULT 0,
	description    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tag (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT NOT NULL CHECK(name <> ''),
	removable INTEGER NOT NULL DEFAULT 1 CHECK(removable IN (0, 1))
);

CREATE TABLE IF NOT EXISTS problem_tag (
	problem_id INTEGER NOT NULL REFERENCES problem(id) ON DELETE CASCADE,
	tag_id     INTEGER NOT NULL REFERENCES tag(id) ON DELETE CASCADE,
	PRIMARY KEY (problem_id, tag_id)
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_tag_name ON tag(name);

CREATE INDEX IF NOT EXISTS idx_problem_tag_tag_id
	ON problem_tag(tag_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
