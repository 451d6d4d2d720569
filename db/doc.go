// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQLite or PostgreSQL connections and creates the schema.

# Opening

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(dialect, cfg.DatabaseURL)

Open pings the database and calls CreateSchema. SQLite runs with WAL, a
busy timeout and a single open connection.

# Tables

  - form: questions as a JSON array
  - submission: answers as a JSON object, indexed by form_id
  - checkin: submission_id is UNIQUE, which enforces one check-in per
    submission for every writer

Timestamps are fixed-width RFC 3339 text in UTC, so one schema serves both
dialects and text order is time order. Queries
are written with ? placeholders and passed through Rebind.
*/
package db
