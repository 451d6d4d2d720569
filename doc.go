// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the SGformer API server.

SGformer is a form builder for school events. Administrators design forms,
families submit them and receive a PDF receipt with a QR code, and staff
check participants in on the day by scanning that code.

# Starting the Server

Two secrets are required; everything else has a default:

	ADMIN_PASSWORD=... TOKEN_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t sqlite -d sgformer.db -admin-password ... -token-secret ...

A .env file in the working directory is loaded first when present.

# Storage

DATABASE_TYPE selects the backend:

  - memory (default): process memory, optionally restored from and saved
    to STATE_FILE
  - sqlite: DATABASE_URL is a file path
  - postgres: DATABASE_URL is a connection string

An empty store is seeded with the three sample forms unless SEED_FORMS=false.

# Architecture

  - handlers: HTTP request handlers per resource
  - router: Route table and role checks using Go 1.22+ routing
  - middleware: CORS, recovery, logging, JSON helpers, role guard
  - checkin: Scan, dedupe and record check-ins
  - store, db: Repositories over memory, SQLite and PostgreSQL
  - stats, notify, receipt, templates, snapshot: supporting services
  - auth: IDs, credentials and session tokens
  - cliparse: Configuration parsing

SIGINT or SIGTERM drains in-flight requests, then saves the memory state.
*/
package main
