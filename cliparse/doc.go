// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv reads an optional .env file, then ParseFlags returns a Config:

	_ = cliparse.LoadDotEnv(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Every flag falls back to an environment variable, then to a default.
CLI flags take precedence over environment variables.

	-p               PORT                     3318
	-t               DATABASE_TYPE            memory (memory, sqlite, postgres)
	-d               DATABASE_URL             required for sqlite and postgres
	-state           STATE_FILE               memory backend snapshot, optional
	-seed            SEED_FORMS               true
	-admin-email     ADMIN_EMAIL              admin@example.com
	-admin-password  ADMIN_PASSWORD           required
	-user-email      USER_EMAIL               user@example.com
	-token-secret    TOKEN_SECRET             required
	-token-ttl       TOKEN_TTL                24h
	-notify-admin    NOTIFY_ADMIN_EMAIL       optional
	-receipt-answers RECEIPT_INCLUDE_ANSWERS  false
	-tz              TIMEZONE                 Local
	-log-level       LOG_LEVEL                info

SMTP settings (SMTP_HOST and friends) are read by package notify.

# Validation

ParseFlags returns an error for a missing secret, an unknown backend, a
SQL backend without a URL, or a value that does not parse.
*/
package cliparse
