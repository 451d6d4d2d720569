// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/sgformer/auth"
	"github.com/danielhkuo/sgformer/checkin"
	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/notify"
	"github.com/danielhkuo/sgformer/receipt"
	"github.com/danielhkuo/sgformer/store"
)

// writeError maps a service error onto a status code. Unknown errors are
// logged and reported as 500 with the generic message.
func writeError(w http.ResponseWriter, err error, generic string) {
	var dup *checkin.AlreadyCheckedInError
	switch {
	case errors.As(err, &dup):
		middleware.JSONResponse(w, http.StatusConflict, models.ConflictResponse{
			Error:   "Already checked in",
			Checkin: dup.Existing,
		})
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAlreadyExists):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, checkin.ErrInvalidPayload),
		errors.Is(err, checkin.ErrMissingFields),
		errors.Is(err, checkin.ErrFormMismatch),
		errors.Is(err, models.ErrValidation),
		errors.Is(err, receipt.ErrMissingData),
		errors.Is(err, notify.ErrInvalidMessage):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, notify.ErrTransport):
		slog.Error("mail transport failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to send email")
	default:
		slog.Error(generic, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, generic)
	}
}

// actor returns the e-mail of the signed-in user, or fallback
func actor(r *http.Request, fallback string) string {
	if u, ok := auth.UserFromContext(r.Context()); ok && u.Email != "" {
		return u.Email
	}
	return fallback
}
