// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/sgformer/auth"
	"github.com/danielhkuo/sgformer/cliparse"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/notify"
	"github.com/danielhkuo/sgformer/store"
	"github.com/danielhkuo/sgformer/templates"
)

// Test accounts
const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "test-admin-password"
	UserEmail     = "user@example.com"
)

// SeedTime is the creation time stamped on seed forms
var SeedTime = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseType:     cliparse.BackendMemory,
		SeedForms:        true,
		AdminEmail:       AdminEmail,
		AdminPassword:    AdminPassword,
		UserEmail:        UserEmail,
		TokenSecret:      "test-token-secret",
		TokenTTL:         time.Hour,
		NotifyAdminEmail: "office@example.com",
		Timezone:         "UTC",
		LogLevel:         slog.LevelInfo,
	}
}

// SetupTestStore returns a memory store holding the seed forms
func SetupTestStore(t *testing.T) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	m.Load(templates.SeedForms(AdminEmail, SeedTime), nil, nil)
	t.Cleanup(func() { m.Close() })
	return m
}

// TokenFor issues a session token signed with the test config secret
func TokenFor(t *testing.T, cfg cliparse.Config, role string) string {
	t.Helper()
	email := UserEmail
	if role == models.UserRoleAdmin {
		email = AdminEmail
	}
	token, err := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL).Issue(models.User{Email: email, Role: role})
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// AuthHeader returns the Authorization header for token
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestSubmission stores a submission for formID and returns it
func CreateTestSubmission(t *testing.T, s store.Store, formID string, answers map[string]models.Answer) models.Submission {
	t.Helper()

	id, _ := auth.GenerateID("sub")
	sub := models.Submission{
		ID:          id,
		FormID:      formID,
		SubmittedBy: UserEmail,
		Answers:     answers,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.CreateSubmission(context.Background(), sub); err != nil {
		t.Fatalf("Failed to create test submission: %v", err)
	}
	return sub
}

// CreateTestCheckin records a check-in for sub and returns it
func CreateTestCheckin(t *testing.T, s store.Store, sub models.Submission, name string) models.Checkin {
	t.Helper()

	id, _ := auth.GenerateID("checkin")
	now := time.Now().UTC()
	c := models.Checkin{
		ID:              id,
		SubmissionID:    sub.ID,
		FormID:          sub.FormID,
		ParticipantName: name,
		CheckinTime:     now,
		CreatedAt:       now,
	}
	stored, err := s.InsertCheckinIfAbsent(context.Background(), c)
	if err != nil {
		t.Fatalf("Failed to create test checkin: %v", err)
	}
	return stored
}

// RecordingMailer keeps sent messages in memory. A non-nil Err fails
// every send.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	Err  error
}

func (m *RecordingMailer) Send(ctx context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the delivered messages
func (m *RecordingMailer) Sent() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.sent...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
