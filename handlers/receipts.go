// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/receipt"
	"github.com/danielhkuo/sgformer/store"
)

type ReceiptHandler struct {
	forms store.FormStore
	subs  store.SubmissionStore
	gen   *receipt.Generator
}

func NewReceiptHandler(forms store.FormStore, subs store.SubmissionStore, gen *receipt.Generator) *ReceiptHandler {
	return &ReceiptHandler{forms: forms, subs: subs, gen: gen}
}

// DownloadReceipt handles GET /api/submissions/receipt?id= and streams the PDF
func (h *ReceiptHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	sub, err := h.subs.GetSubmission(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Submission not found")
		return
	}
	if err != nil {
		slog.Error("failed to load submission", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	form, err := h.forms.GetForm(r.Context(), sub.FormID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to load form", "form_id", sub.FormID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rec, err := h.gen.Generate(&form, &sub)
	if err != nil {
		writeError(w, err, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(rec.PDF)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rec.PDF); err != nil {
		slog.Warn("failed to write receipt", "submission_id", id, "error", err)
	}
}

// GeneratePDF handles POST /api/generate-pdf. The scan code is always
// built from submissionData; qrCodeData may only name the same submission.
func (h *ReceiptHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateReceiptRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FormData == nil || req.SubmissionData == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing required data")
		return
	}
	if id, ok := req.QRCodeData["submissionId"]; ok && id != req.SubmissionData.ID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "qrCodeData does not match submissionData")
		return
	}

	rec, err := h.gen.Generate(req.FormData, req.SubmissionData)
	if err != nil {
		writeError(w, err, "Failed to generate PDF")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GenerateReceiptResponse{
		Success:  true,
		PDFData:  rec.DataURI(),
		Filename: rec.Filename,
	})
}
