// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
duration_ms).

# Recovery

Recover converts a handler panic into a logged 500 JSON response.

# Roles

RequireRole verifies the bearer token and checks the caller's role:

	mux.HandleFunc("GET /api/stats", middleware.WithLogging(
		middleware.RequireRole(tokens, models.UserRoleAdmin, statsHandler.GetStats)))

Missing or invalid tokens get 401, a valid token with too little role 403.

# CORS Middleware

CORS allows any origin with methods GET, POST, PUT, DELETE, OPTIONS and
headers Content-Type, Authorization. OPTIONS preflight is answered 200.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.FormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Request bodies are capped at 1 MiB.

# Client IP Extraction

	ip := middleware.GetClientIP(r)
*/
package middleware
