// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/sgformer/checkin"
	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/models"
)

type CheckinHandler struct {
	coord *checkin.Coordinator
	loc   *time.Location
}

// NewCheckinHandler reads ?date= filters as calendar dates in loc
func NewCheckinHandler(coord *checkin.Coordinator, loc *time.Location) *CheckinHandler {
	return &CheckinHandler{coord: coord, loc: loc}
}

// GetCheckins handles GET /api/checkin[?formId=&date=YYYY-MM-DD]
func (h *CheckinHandler) GetCheckins(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var day *time.Time
	if s := q.Get("date"); s != "" {
		d, err := checkin.ParseDay(s, h.loc)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = &d
	}

	records, err := h.coord.List(r.Context(), q.Get("formId"), day, h.loc)
	if err != nil {
		writeError(w, err, "Failed to list checkins")
		return
	}
	if records == nil {
		records = []models.Checkin{}
	}
	middleware.JSONResponse(w, http.StatusOK, records)
}

// CreateCheckin handles POST /api/checkin
func (h *CheckinHandler) CreateCheckin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCheckinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	record, err := h.coord.Create(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create checkin")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, record)
}

// ScanCheckin handles POST /api/checkin/scan with the raw barcode text
func (h *CheckinHandler) ScanCheckin(w http.ResponseWriter, r *http.Request) {
	var req models.ScanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.coord.Scan(r.Context(), req.Payload, req.FormID)
	if err != nil {
		writeError(w, err, "Failed to record checkin")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, models.ScanResponse{
		Checkin:         res.Checkin,
		ParticipantName: res.ParticipantName,
	})
}

// UpdateCheckin handles PUT /api/checkin?id=
func (h *CheckinHandler) UpdateCheckin(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.UpdateCheckinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	record, err := h.coord.UpdateNotes(r.Context(), id, req.Notes)
	if err != nil {
		writeError(w, err, "Failed to update checkin")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, record)
}

// DeleteCheckin handles DELETE /api/checkin?id= and returns the removed record
func (h *CheckinHandler) DeleteCheckin(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	removed, err := h.coord.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to delete checkin")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, removed)
}
