// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the SGformer API.

# Route Registration

NewRouter builds every service over one store and returns the mux wrapped
in CORS and panic recovery:

	handler, err := router.NewRouter(st, cfg, mailer)

# Endpoints

Public:

	GET  /health
	POST /api/auth/login
	GET  /api/templates
	GET  /api/forms[?id=]

Signed-in user or admin (Authorization: Bearer <token>):

	POST /api/submissions
	GET  /api/submissions/receipt?id=
	POST /api/generate-pdf

Admin only:

	POST|PUT|DELETE /api/forms
	GET|DELETE      /api/submissions
	GET|POST|PUT|DELETE /api/checkin
	POST /api/checkin/scan
	POST /api/send-email
	GET  /api/stats

A missing or invalid token gets 401; a user token on an admin route gets 403.
*/
package router
