// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the SGformer API.

# Handler Types

Each handler is a struct over the store interfaces or services it needs:

  - AuthHandler: login and token issue
  - FormHandler: form list and admin CRUD
  - SubmissionHandler: submission list, create (with notifications), delete
  - ReceiptHandler: PDF receipt download and generate-pdf
  - CheckinHandler: check-in list, manual create, scan, notes, delete
  - EmailHandler: raw e-mail send
  - StatsHandler: dashboard statistics

	formHandler := handlers.NewFormHandler(st)
	checkinHandler := handlers.NewCheckinHandler(checkin.NewCoordinator(st), loc)

# Check-in Desk

	POST /api/checkin/scan  {"payload": "<QR text>", "formId": "form-1"}

201 returns the record and participant name. A second scan of the same
code returns 409 with {"error": "Already checked in", "checkin": {...}}
carrying the original record. Bad payloads are 400, unknown submissions
404, and a code from another form 400.

# Errors

Service errors map to status codes in one place: not found 404, already
exists 409, invalid input 400, mail transport 502, anything else 500
with a generic message and a logged cause.
*/
package handlers
