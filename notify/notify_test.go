// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/sgformer/models"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (r *recordingMailer) Send(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func notifyForm() models.Form {
	return models.Form{
		ID:    "form-1",
		Title: "Open Campus <2025>",
		Questions: []models.Question{
			{ID: "q1", Text: "Guardian name", Type: models.QuestionText, Role: models.RoleContactName},
			{ID: "q4", Text: "Email", Type: models.QuestionText, Role: models.RoleEmail},
			{ID: "q9", Text: "Days", Type: models.QuestionCheckbox, Options: []string{"Sat", "Sun"}},
		},
	}
}

func notifySubmission() models.Submission {
	return models.Submission{
		ID:          "sub-1",
		FormID:      "form-1",
		SubmittedBy: "user@example.com",
		Answers: map[string]models.Answer{
			"q1": models.Single("<b>Sato</b>"),
			"q4": models.Single("hanako@example.com"),
			"q9": models.Multiple("Sat", "Sun"),
		},
		SubmittedAt: time.Date(2025, 5, 2, 10, 30, 0, 0, time.UTC),
	}
}

func TestSubmissionReceived(t *testing.T) {
	m := &recordingMailer{}
	n := NewNotifier(m, "office@example.com", time.UTC)

	if err := n.SubmissionReceived(context.Background(), notifyForm(), notifySubmission()); err != nil {
		t.Fatalf("SubmissionReceived failed: %v", err)
	}
	if len(m.sent) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(m.sent))
	}

	confirm := m.sent[0]
	if confirm.To != "hanako@example.com" {
		t.Errorf("Expected confirmation to email answer, got %s", confirm.To)
	}
	if !strings.Contains(confirm.Subject, "Open Campus") {
		t.Errorf("Unexpected subject: %s", confirm.Subject)
	}
	if !strings.Contains(confirm.HTML, "sub-1") || !strings.Contains(confirm.HTML, "2025-05-02 10:30") {
		t.Error("Expected receipt number and time in confirmation")
	}
	if !strings.Contains(confirm.HTML, "Sat, Sun") {
		t.Error("Expected checkbox answers joined with ', '")
	}
	if strings.Contains(confirm.HTML, "<b>Sato</b>") || !strings.Contains(confirm.HTML, "&lt;b&gt;Sato&lt;/b&gt;") {
		t.Error("Expected answers to be HTML escaped")
	}
	if confirm.Text == "" {
		t.Error("Expected a plain text body")
	}

	admin := m.sent[1]
	if admin.To != "office@example.com" {
		t.Errorf("Expected admin notice to office, got %s", admin.To)
	}
	if !strings.Contains(admin.Text, "user@example.com") {
		t.Error("Expected submitter in admin notice")
	}
}

func TestSubmissionReceived_NoAdmin(t *testing.T) {
	m := &recordingMailer{}
	n := NewNotifier(m, "", time.UTC)

	if err := n.SubmissionReceived(context.Background(), notifyForm(), notifySubmission()); err != nil {
		t.Fatalf("SubmissionReceived failed: %v", err)
	}
	if len(m.sent) != 1 {
		t.Errorf("Expected only the confirmation, got %d messages", len(m.sent))
	}
}

func TestSubmissionReceived_TransportFailure(t *testing.T) {
	m := &recordingMailer{err: ErrTransport}
	n := NewNotifier(m, "office@example.com", time.UTC)

	err := n.SubmissionReceived(context.Background(), notifyForm(), notifySubmission())
	if !errors.Is(err, ErrTransport) {
		t.Errorf("Expected ErrTransport, got %v", err)
	}
}

func TestRecipient(t *testing.T) {
	form := notifyForm()
	tests := []struct {
		name string
		sub  func(s *models.Submission)
		want string
	}{
		{"email answer", func(s *models.Submission) {}, "hanako@example.com"},
		{"invalid answer falls back to submitter", func(s *models.Submission) {
			s.Answers["q4"] = models.Single("not an address")
		}, "user@example.com"},
		{"no address anywhere", func(s *models.Submission) {
			delete(s.Answers, "q4")
			s.SubmittedBy = "guest"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := notifySubmission()
			tt.sub(&s)
			if got := Recipient(form, s); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{"html only", Message{To: "a@example.com", Subject: "s", HTML: "<p>x</p>"}, false},
		{"text only", Message{To: "a@example.com", Subject: "s", Text: "x"}, false},
		{"missing to", Message{Subject: "s", Text: "x"}, true},
		{"missing subject", Message{To: "a@example.com", Text: "x"}, true},
		{"missing body", Message{To: "a@example.com", Subject: "s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr != errors.Is(err, ErrInvalidMessage) {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNotifierSend(t *testing.T) {
	m := &recordingMailer{}
	n := NewNotifier(m, "", time.UTC)

	if err := n.Send(context.Background(), Message{To: "a@example.com"}); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("Expected ErrInvalidMessage, got %v", err)
	}
	if err := n.Send(context.Background(), Message{To: "a@example.com", Subject: "Hi", Text: "hello"}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if len(m.sent) != 1 {
		t.Errorf("Expected 1 message, got %d", len(m.sent))
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_TIMEOUT", "3s")
	t.Setenv("NOTIFY_ADMIN_EMAIL", "office@example.com")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv failed: %v", err)
	}
	if cfg.Host != "smtp.example.com" || cfg.Port != 2525 || cfg.Timeout != 3*time.Second {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.From != "noreply@sgformer.local" {
		t.Errorf("Expected default sender, got %s", cfg.From)
	}
	if cfg.AdminEmail != "office@example.com" {
		t.Errorf("Expected admin email, got %s", cfg.AdminEmail)
	}

	t.Setenv("SMTP_PORT", "not-a-number")
	if _, err := LoadConfigFromEnv(); err == nil {
		t.Error("Expected error for invalid port")
	}
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(Config{})
	if err != nil {
		t.Fatalf("NewMailer failed: %v", err)
	}
	if _, ok := m.(LogMailer); !ok {
		t.Errorf("Expected LogMailer without host, got %T", m)
	}

	m, err = NewMailer(Config{Host: "localhost", Port: 2525, From: "noreply@example.com", Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewMailer failed: %v", err)
	}
	if _, ok := m.(*SMTPMailer); !ok {
		t.Errorf("Expected *SMTPMailer with host, got %T", m)
	}
}
