// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package receipt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/sgformer/checkin"
	"github.com/danielhkuo/sgformer/models"
)

func receiptFixtures() (*models.Form, *models.Submission) {
	form := &models.Form{
		ID:          "form-1",
		Title:       "Open Campus",
		Description: "Registration for the June session",
		Questions: []models.Question{
			{ID: "q1", Text: "Guardian name", Type: models.QuestionText},
			{ID: "q9", Text: "Days", Type: models.QuestionCheckbox, Options: []string{"Sat", "Sun"}},
		},
	}
	sub := &models.Submission{
		ID:     "sub-42",
		FormID: "form-1",
		Answers: map[string]models.Answer{
			"q1": models.Single("Sato Hanako"),
			"q9": models.Multiple("Sat", "Sun"),
		},
		SubmittedAt: time.Date(2025, 5, 2, 10, 30, 0, 0, time.UTC),
	}
	return form, sub
}

func newTestGenerator(include bool) *Generator {
	g := NewGenerator(include, time.UTC)
	g.now = func() time.Time { return time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerate(t *testing.T) {
	form, sub := receiptFixtures()
	r, err := newTestGenerator(false).Generate(form, sub)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !bytes.HasPrefix(r.PDF, []byte("%PDF")) {
		t.Errorf("Expected PDF output, got prefix %q", r.PDF[:min(8, len(r.PDF))])
	}
	if r.Filename != "receipt_sub-42_2025-05-03.pdf" {
		t.Errorf("Unexpected filename: %s", r.Filename)
	}

	uri := r.DataURI()
	const prefix = "data:application/pdf;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("Unexpected data URI prefix: %.40s", uri)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil || !bytes.Equal(decoded, r.PDF) {
		t.Error("Expected data URI to round-trip the PDF")
	}
}

func TestPayload_OmitsAnswersByDefault(t *testing.T) {
	form, sub := receiptFixtures()
	p := newTestGenerator(false).Payload(*form, *sub)

	if p.SubmissionID != "sub-42" || p.FormID != "form-1" {
		t.Errorf("Unexpected payload: %+v", p)
	}
	if p.PersonalInfo != nil {
		t.Errorf("Expected no personal info, got %+v", p.PersonalInfo)
	}

	raw, _ := json.Marshal(p)
	if strings.Contains(string(raw), "Sato") || strings.Contains(string(raw), "personalInfo") {
		t.Errorf("Expected answers to stay out of the payload: %s", raw)
	}
}

func TestPayload_IncludesAnswersWhenConfigured(t *testing.T) {
	form, sub := receiptFixtures()
	p := newTestGenerator(true).Payload(*form, *sub)

	if got := p.PersonalInfo["q1"].String(); got != "Sato Hanako" {
		t.Errorf("Expected q1 in personal info, got %q", got)
	}
}

// A receipt payload must be accepted by the check-in scanner
func TestPayload_DecodesForCheckin(t *testing.T) {
	form, sub := receiptFixtures()
	for _, include := range []bool{false, true} {
		p := newTestGenerator(include).Payload(*form, *sub)
		raw, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		decoded, err := checkin.Decode(string(raw))
		if err != nil {
			t.Fatalf("Decode failed (include=%v): %v", include, err)
		}
		if decoded.SubmissionID != sub.ID {
			t.Errorf("Expected %s, got %s", sub.ID, decoded.SubmissionID)
		}
	}
}

func TestGenerate_MissingData(t *testing.T) {
	form, sub := receiptFixtures()
	g := newTestGenerator(false)

	if _, err := g.Generate(nil, sub); !errors.Is(err, ErrMissingData) {
		t.Errorf("Expected ErrMissingData, got %v", err)
	}
	if _, err := g.Generate(form, nil); !errors.Is(err, ErrMissingData) {
		t.Errorf("Expected ErrMissingData, got %v", err)
	}
	if _, err := g.Generate(form, &models.Submission{}); !errors.Is(err, ErrMissingData) {
		t.Errorf("Expected ErrMissingData for blank id, got %v", err)
	}
}
