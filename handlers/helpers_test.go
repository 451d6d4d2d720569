// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/sgformer/auth"
	"github.com/danielhkuo/sgformer/checkin"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/notify"
	"github.com/danielhkuo/sgformer/receipt"
	"github.com/danielhkuo/sgformer/stats"
	"github.com/danielhkuo/sgformer/store"
	"github.com/danielhkuo/sgformer/testutil"
)

const testFormID = "form-test"

// testForm has a required name pair, a required checkbox and an email question
func testForm() models.Form {
	return models.Form{
		ID:    testFormID,
		Title: "Open Campus",
		Questions: []models.Question{
			{ID: "q1", Text: "Guardian name", Type: models.QuestionText, Required: true, Role: models.RoleContactName},
			{ID: "q2", Text: "Student name", Type: models.QuestionText, Role: models.RoleParticipantName},
			{ID: "q3", Text: "Days", Type: models.QuestionCheckbox, Required: true, Options: []string{"Sat", "Sun"}},
			{ID: "q4", Text: "Email", Type: models.QuestionText, Role: models.RoleEmail},
		},
		CreatedAt: testutil.SeedTime,
		UpdatedAt: testutil.SeedTime,
	}
}

func validAnswers() map[string]models.Answer {
	return map[string]models.Answer{
		"q1": models.Single("Sato Hanako"),
		"q2": models.Single("Sato Taro"),
		"q3": models.Multiple("Sat"),
		"q4": models.Single("hanako@example.com"),
	}
}

type testEnv struct {
	store    *store.Memory
	mailer   *testutil.RecordingMailer
	forms    *FormHandler
	subs     *SubmissionHandler
	receipts *ReceiptHandler
	checkins *CheckinHandler
	email    *EmailHandler
	stats    *StatsHandler
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	m := testutil.SetupTestStore(t)
	if err := m.CreateForm(context.Background(), testForm()); err != nil {
		t.Fatalf("Failed to create test form: %v", err)
	}

	mailer := &testutil.RecordingMailer{}
	notifier := notify.NewNotifier(mailer, "office@example.com", time.UTC)

	return &testEnv{
		store:    m,
		mailer:   mailer,
		forms:    NewFormHandler(m),
		subs:     NewSubmissionHandler(m, m, notifier),
		receipts: NewReceiptHandler(m, m, receipt.NewGenerator(false, time.UTC)),
		checkins: NewCheckinHandler(checkin.NewCoordinator(m), time.UTC),
		email:    NewEmailHandler(notifier),
		stats:    NewStatsHandler(stats.NewService(m), time.UTC),
	}
}

// as attaches the signed-in user the role middleware would set
func as(req *http.Request, role string) *http.Request {
	email := testutil.UserEmail
	if role == models.UserRoleAdmin {
		email = testutil.AdminEmail
	}
	return req.WithContext(auth.WithUser(req.Context(), models.User{Email: email, Role: role}))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}
