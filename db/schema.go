// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Shared by SQLite and PostgreSQL. Timestamps are RFC 3339 text.
const schema = `
-- Forms (questions stored as a JSON array)
CREATE TABLE IF NOT EXISTS form (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    questions TEXT NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Submissions (answers stored as a JSON object)
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    form_id TEXT NOT NULL,
    submitted_by TEXT NOT NULL DEFAULT '',
    answers TEXT NOT NULL,
    submitted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_form_id ON submission(form_id);

-- Check-ins, at most one per submission
CREATE TABLE IF NOT EXISTS checkin (
    id TEXT PRIMARY KEY,
    submission_id TEXT NOT NULL UNIQUE,
    form_id TEXT NOT NULL,
    participant_name TEXT NOT NULL,
    checkin_time TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_checkin_form_id ON checkin(form_id);
`
