// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/templates"
)

// GetTemplates handles GET /api/templates
func GetTemplates(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, templates.All())
}
