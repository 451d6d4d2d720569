// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package snapshot persists the memory store as one JSON file.

The file holds {"forms": [...], "submissions": [...], "checkins": [...]}.
main restores it at startup and writes it at shutdown when STATE_FILE is
set. A missing or corrupt file is never fatal; the store starts from the
seed forms and a warning is logged.

Save writes a temp file in the same directory and renames it over the
target, so a crash mid-write leaves the previous state intact.
*/
package snapshot
