// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/stats"
)

type StatsHandler struct {
	svc *stats.Service
	loc *time.Location
	now func() time.Time
}

func NewStatsHandler(svc *stats.Service, loc *time.Location) *StatsHandler {
	return &StatsHandler{svc: svc, loc: loc, now: time.Now}
}

// GetStats handles GET /api/stats[?formId=&days=]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := stats.Filter{
		FormID:   q.Get("formId"),
		Now:      h.now(),
		Location: h.loc,
	}
	if s := q.Get("days"); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil || days < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		f.Days = days
	}

	report, err := h.svc.Report(r.Context(), f)
	if err != nil {
		writeError(w, err, "Failed to compute statistics")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, report)
}
