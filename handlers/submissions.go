// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/sgformer/auth"
	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/notify"
	"github.com/danielhkuo/sgformer/store"
)

type SubmissionHandler struct {
	forms    store.FormStore
	subs     store.SubmissionStore
	notifier *notify.Notifier
	now      func() time.Time
}

func NewSubmissionHandler(forms store.FormStore, subs store.SubmissionStore, notifier *notify.Notifier) *SubmissionHandler {
	return &SubmissionHandler{forms: forms, subs: subs, notifier: notifier, now: time.Now}
}

// GetSubmissions handles GET /api/submissions[?formId=]
func (h *SubmissionHandler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subs.ListSubmissions(r.Context(), r.URL.Query().Get("formId"))
	if err != nil {
		slog.Error("failed to list submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	middleware.JSONResponse(w, http.StatusOK, subs)
}

// CreateSubmission handles POST /api/submissions. The server stamps the id
// and time; notification failures are logged only.
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubmissionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.FormID) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "formId is required")
		return
	}

	form, err := h.forms.GetForm(r.Context(), req.FormID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to load form", "form_id", req.FormID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Answers == nil {
		req.Answers = map[string]models.Answer{}
	}
	if err := form.ValidateAnswers(req.Answers); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	subID, err := auth.GenerateID("sub")
	if err != nil {
		slog.Error("failed to generate submission ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create submission")
		return
	}

	sub := models.Submission{
		ID:          subID,
		FormID:      form.ID,
		SubmittedBy: actor(r, req.SubmittedBy),
		Answers:     req.Answers,
		SubmittedAt: h.now().UTC(),
	}
	if err := h.subs.CreateSubmission(r.Context(), sub); err != nil {
		slog.Error("failed to insert submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create submission")
		return
	}
	slog.Info("submission created", "submission_id", sub.ID, "form_id", sub.FormID, "submitted_by", sub.SubmittedBy)

	if h.notifier != nil {
		if err := h.notifier.SubmissionReceived(r.Context(), form, sub); err != nil {
			slog.Warn("submission notification failed", "submission_id", sub.ID, "error", err)
		}
	}

	middleware.JSONResponse(w, http.StatusCreated, sub)
}

// DeleteSubmission handles DELETE /api/submissions?id=
func (h *SubmissionHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.subs.DeleteSubmission(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Submission not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete submission", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete submission")
		return
	}

	slog.Info("submission deleted", "submission_id", id)
	w.WriteHeader(http.StatusNoContent)
}
