// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/sgformer/auth"
	"github.com/danielhkuo/sgformer/checkin"
	"github.com/danielhkuo/sgformer/cliparse"
	"github.com/danielhkuo/sgformer/handlers"
	"github.com/danielhkuo/sgformer/middleware"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/notify"
	"github.com/danielhkuo/sgformer/receipt"
	"github.com/danielhkuo/sgformer/stats"
	"github.com/danielhkuo/sgformer/store"
)

// NewRouter wires the services over st and returns the API handler with
// CORS and panic recovery applied
func NewRouter(st store.Store, cfg cliparse.Config, mailer notify.Mailer) (http.Handler, error) {
	provider, err := auth.NewStaticProvider(cfg.AdminEmail, cfg.AdminPassword, cfg.UserEmail, 0)
	if err != nil {
		return nil, fmt.Errorf("credential provider: %w", err)
	}
	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)
	loc := cfg.Location()
	notifier := notify.NewNotifier(mailer, cfg.NotifyAdminEmail, loc)

	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(provider, tokens)
	formHandler := handlers.NewFormHandler(st)
	submissionHandler := handlers.NewSubmissionHandler(st, st, notifier)
	receiptHandler := handlers.NewReceiptHandler(st, st, receipt.NewGenerator(cfg.ReceiptIncludeAnswers, loc))
	checkinHandler := handlers.NewCheckinHandler(checkin.NewCoordinator(st), loc)
	emailHandler := handlers.NewEmailHandler(notifier)
	statsHandler := handlers.NewStatsHandler(stats.NewService(st), loc)

	public := middleware.WithLogging
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(tokens, models.UserRoleAdmin, h))
	}
	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(tokens, models.UserRoleUser, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions and catalog (public)
	mux.HandleFunc("POST /api/auth/login", public(authHandler.Login))
	mux.HandleFunc("GET /api/templates", public(handlers.GetTemplates))
	mux.HandleFunc("GET /api/forms", public(formHandler.GetForms))

	// Form management (admin)
	mux.HandleFunc("POST /api/forms", admin(formHandler.CreateForm))
	mux.HandleFunc("PUT /api/forms", admin(formHandler.UpdateForm))
	mux.HandleFunc("DELETE /api/forms", admin(formHandler.DeleteForm))

	// Submissions
	mux.HandleFunc("GET /api/submissions", admin(submissionHandler.GetSubmissions))
	mux.HandleFunc("POST /api/submissions", user(submissionHandler.CreateSubmission))
	mux.HandleFunc("DELETE /api/submissions", admin(submissionHandler.DeleteSubmission))
	mux.HandleFunc("GET /api/submissions/receipt", user(receiptHandler.DownloadReceipt))
	mux.HandleFunc("POST /api/generate-pdf", user(receiptHandler.GeneratePDF))

	// Check-in desk (admin)
	mux.HandleFunc("GET /api/checkin", admin(checkinHandler.GetCheckins))
	mux.HandleFunc("POST /api/checkin", admin(checkinHandler.CreateCheckin))
	mux.HandleFunc("POST /api/checkin/scan", admin(checkinHandler.ScanCheckin))
	mux.HandleFunc("PUT /api/checkin", admin(checkinHandler.UpdateCheckin))
	mux.HandleFunc("DELETE /api/checkin", admin(checkinHandler.DeleteCheckin))

	// Mail and reporting (admin)
	mux.HandleFunc("POST /api/send-email", admin(emailHandler.SendEmail))
	mux.HandleFunc("GET /api/stats", admin(statsHandler.GetStats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sgformer API v1"))
	})

	return middleware.CORS(middleware.Recover(mux)), nil
}
