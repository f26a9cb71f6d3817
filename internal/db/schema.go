package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database layout. All tests
// use it via GetSchemaSQL(); if repository code references a column that
// does not exist here, tests fail immediately with "no such column".
const SchemaSQL = `
-- Users (players and NPCs share the table)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL DEFAULT '',
	bitcoins INTEGER NOT NULL DEFAULT 100 CHECK(bitcoins >= 0),
	experience INTEGER NOT NULL DEFAULT 0,
	reputation INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL DEFAULT 1,
	is_npc INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Operations (asynchronous hacking runs)
CREATE TABLE IF NOT EXISTS operations (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	type TEXT NOT NULL,
	target_id TEXT NOT NULL,
	target_kind TEXT NOT NULL CHECK(target_kind IN ('player', 'npc', 'address')),
	status TEXT NOT NULL CHECK(status IN ('pending', 'in_progress', 'completed', 'failed', 'cancelled')),
	progress REAL NOT NULL DEFAULT 0,
	result TEXT,
	started_at DATETIME NOT NULL,
	completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_operations_user ON operations(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_operations_status ON operations(status);

-- Attacks (append-only history; no updates, no deletes)
CREATE TABLE IF NOT EXISTS attacks (
	id TEXT PRIMARY KEY,
	attacker_id TEXT NOT NULL,
	defender_id TEXT NOT NULL,
	type TEXT NOT NULL,
	success INTEGER NOT NULL,
	damage INTEGER NOT NULL DEFAULT 0,
	loot TEXT,
	detected INTEGER NOT NULL DEFAULT 0,
	timestamp DATETIME NOT NULL,
	FOREIGN KEY (attacker_id) REFERENCES users(id),
	FOREIGN KEY (defender_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_attacks_attacker ON attacks(attacker_id, timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_attacks_defender ON attacks(defender_id, timestamp DESC);

-- Defenses (one row per user)
CREATE TABLE IF NOT EXISTS defenses (
	user_id TEXT PRIMARY KEY,
	firewall_level INTEGER NOT NULL DEFAULT 1 CHECK(firewall_level BETWEEN 1 AND 10),
	ids_level INTEGER NOT NULL DEFAULT 0 CHECK(ids_level BETWEEN 0 AND 10),
	honeypot_active INTEGER NOT NULL DEFAULT 0,
	backup_frequency TEXT NOT NULL DEFAULT 'daily',
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id)
);
`

// GetSchemaSQL returns the schema for use by tests and fresh installs.
func GetSchemaSQL() string {
	return SchemaSQL
}
