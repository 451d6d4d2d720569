// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/sgformer/auth"
	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/store"
)

type FormHandler struct {
	forms store.FormStore
	now   func() time.Time
}

func NewFormHandler(forms store.FormStore) *FormHandler {
	return &FormHandler{forms: forms, now: time.Now}
}

// GetForms handles GET /api/forms and GET /api/forms?id=
func (h *FormHandler) GetForms(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		form, err := h.forms.GetForm(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
			return
		}
		if err != nil {
			slog.Error("failed to load form", "form_id", id, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, form)
		return
	}

	forms, err := h.forms.ListForms(r.Context())
	if err != nil {
		slog.Error("failed to list forms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if forms == nil {
		forms = []models.Form{}
	}
	middleware.JSONResponse(w, http.StatusOK, forms)
}

// CreateForm handles POST /api/forms
func (h *FormHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	var req models.FormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	formID, err := auth.GenerateID("form")
	if err != nil {
		slog.Error("failed to generate form ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	now := h.now().UTC()
	form := models.Form{
		ID:          formID,
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
		CreatedBy:   actor(r, ""),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.forms.CreateForm(r.Context(), form); err != nil {
		slog.Error("failed to insert form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	slog.Info("form created", "form_id", form.ID, "questions", len(form.Questions), "created_by", form.CreatedBy)
	middleware.JSONResponse(w, http.StatusCreated, form)
}

// UpdateForm handles PUT /api/forms?id=
func (h *FormHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.FormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	form, err := h.forms.GetForm(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to load form", "form_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	form.Title = req.Title
	form.Description = req.Description
	form.Questions = req.Questions
	form.UpdatedAt = h.now().UTC()

	err = h.forms.UpdateForm(r.Context(), form)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to update form", "form_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update form")
		return
	}

	slog.Info("form updated", "form_id", id)
	middleware.JSONResponse(w, http.StatusOK, form)
}

// DeleteForm handles DELETE /api/forms?id=, removing its submissions and
// check-ins too
func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.forms.DeleteForm(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete form", "form_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete form")
		return
	}

	slog.Info("form deleted", "form_id", id)
	w.WriteHeader(http.StatusNoContent)
}
