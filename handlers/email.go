// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/notify"
)

type EmailHandler struct {
	notifier *notify.Notifier
}

func NewEmailHandler(notifier *notify.Notifier) *EmailHandler {
	return &EmailHandler{notifier: notifier}
}

// SendEmail handles POST /api/send-email
func (h *EmailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req models.SendEmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.notifier.Send(r.Context(), notify.Message{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
	})
	if err != nil {
		writeError(w, err, "Failed to send email")
		return
	}

	slog.Info("email sent", "to", req.To, "by", actor(r, ""))
	middleware.JSONResponse(w, http.StatusOK, models.SendEmailResponse{
		Success: true,
		Message: "Email sent successfully",
	})
}
