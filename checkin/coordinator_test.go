// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checkin

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/store"
)

func setupCoordinator(t *testing.T) (*Coordinator, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	ctx := context.Background()
	form := models.Form{
		ID:    "form-1",
		Title: "Open Campus",
		Questions: []models.Question{
			{ID: "q1", Text: "Guardian name", Type: models.QuestionText, Required: true},
			{ID: "q2", Text: "Student name", Type: models.QuestionText, Required: true},
		},
	}
	if err := mem.CreateForm(ctx, form); err != nil {
		t.Fatalf("Failed to create form: %v", err)
	}
	sub := models.Submission{
		ID:     "sub-1",
		FormID: "form-1",
		Answers: map[string]models.Answer{
			"q1": models.Single("Sato Hanako"),
			"q2": models.Single("Sato Taro"),
		},
		SubmittedAt: time.Now(),
	}
	if err := mem.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("Failed to create submission: %v", err)
	}

	c := NewCoordinator(mem)
	c.now = func() time.Time { return time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC) }
	return c, mem
}

func countCheckins(t *testing.T, mem *store.Memory) int {
	t.Helper()
	list, err := mem.ListCheckins(context.Background(), "")
	if err != nil {
		t.Fatalf("ListCheckins failed: %v", err)
	}
	return len(list)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  string
		wantErr bool
	}{
		{"minimal", `{"submissionId":"sub-1"}`, "sub-1", false},
		{"full receipt payload", `{"submissionId":"sub-1","formId":"form-1","submittedAt":"2025-05-02T10:00:00Z","personalInfo":{"q1":"Sato","q5":["a","b"]}}`, "sub-1", false},
		{"surrounding whitespace", "  {\"submissionId\":\" sub-1 \"}\n", "sub-1", false},
		{"not json", "sub-1", "", true},
		{"empty", "", "", true},
		{"json string", `"sub-1"`, "", true},
		{"json array", `["sub-1"]`, "", true},
		{"null", `null`, "", true},
		{"missing id", `{"formId":"form-1"}`, "", true},
		{"blank id", `{"submissionId":"   "}`, "", true},
		{"truncated", `{"submissionId":"sub-1"`, "", true},
		{"numeric answer in personal info", `{"submissionId":"sub-1","personalInfo":{"age":12}}`, "sub-1", false},
		{"personal info not an object", `{"submissionId":"sub-1","personalInfo":"Sato"}`, "sub-1", false},
		{"epoch millis submittedAt", `{"submissionId":"sub-1","submittedAt":1715331600000}`, "sub-1", false},
		{"numeric formId", `{"submissionId":"sub-1","formId":1}`, "sub-1", false},
		{"numeric submissionId", `{"submissionId":42}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPayload) {
					t.Errorf("Expected ErrInvalidPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if p.SubmissionID != tt.wantID {
				t.Errorf("Expected submissionId %q, got %q", tt.wantID, p.SubmissionID)
			}
		})
	}
}

func TestDecode_KeepsWellTypedOptionalFields(t *testing.T) {
	p, err := Decode(`{"submissionId":"sub-1","formId":"form-1","submittedAt":7,"personalInfo":{"q1":"Sato","age":12,"q5":["a","b"]}}`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.FormID != "form-1" {
		t.Errorf("Expected formId form-1, got %q", p.FormID)
	}
	if p.SubmittedAt != "" {
		t.Errorf("Expected numeric submittedAt to be dropped, got %q", p.SubmittedAt)
	}
	if got := p.PersonalInfo["q1"].String(); got != "Sato" {
		t.Errorf("Expected q1 Sato, got %q", got)
	}
	if got := p.PersonalInfo["q5"].String(); got != "a, b" {
		t.Errorf("Expected q5 'a, b', got %q", got)
	}
	if _, ok := p.PersonalInfo["age"]; ok {
		t.Error("Expected numeric answer to be dropped")
	}
}

func TestScan_LooseOptionalFields(t *testing.T) {
	c, mem := setupCoordinator(t)
	res, err := c.Scan(context.Background(), `{"submissionId":"sub-1","formId":1,"submittedAt":1715331600000,"personalInfo":{"age":12}}`, "form-1")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.Checkin.SubmissionID != "sub-1" {
		t.Errorf("Expected submission sub-1, got %q", res.Checkin.SubmissionID)
	}
	if n := countCheckins(t, mem); n != 1 {
		t.Errorf("Expected 1 checkin, got %d", n)
	}
}

func TestScan_RecordsOnce(t *testing.T) {
	c, mem := setupCoordinator(t)
	ctx := context.Background()

	res, err := c.Scan(ctx, `{"submissionId":"sub-1"}`, "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.Checkin.SubmissionID != "sub-1" || res.Checkin.FormID != "form-1" {
		t.Errorf("Unexpected checkin: %+v", res.Checkin)
	}
	if res.ParticipantName != "Sato Hanako (Sato Taro)" {
		t.Errorf("Expected derived name, got %q", res.ParticipantName)
	}
	if res.Checkin.ID == "" {
		t.Error("Expected generated id")
	}

	_, err = c.Scan(ctx, `{"submissionId":"sub-1"}`, "")
	var already *AlreadyCheckedInError
	if !errors.As(err, &already) {
		t.Fatalf("Expected AlreadyCheckedInError, got %v", err)
	}
	if already.Existing.ID != res.Checkin.ID {
		t.Errorf("Expected existing record %s, got %s", res.Checkin.ID, already.Existing.ID)
	}
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Error("Expected error to match store.ErrAlreadyExists")
	}
	if n := countCheckins(t, mem); n != 1 {
		t.Errorf("Expected 1 checkin, got %d", n)
	}
}

func TestScan_FailuresDoNotMutate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		form    string
		wantErr error
	}{
		{"invalid payload", "not-json", "", ErrInvalidPayload},
		{"unknown submission", `{"submissionId":"sub-404"}`, "", store.ErrNotFound},
		{"form mismatch", `{"submissionId":"sub-1"}`, "form-2", ErrFormMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mem := setupCoordinator(t)
			_, err := c.Scan(context.Background(), tt.raw, tt.form)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if n := countCheckins(t, mem); n != 0 {
				t.Errorf("Expected no checkins, got %d", n)
			}
		})
	}
}

func TestScan_UnknownSubmissionIsSubmissionNotFound(t *testing.T) {
	c, _ := setupCoordinator(t)
	_, err := c.Scan(context.Background(), `{"submissionId":"missing"}`, "")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("Expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestScan_Concurrent(t *testing.T) {
	c, mem := setupCoordinator(t)
	ctx := context.Background()

	const scanners = 25
	var (
		wg       sync.WaitGroup
		recorded atomic.Int32
		rejected atomic.Int32
	)
	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Scan(ctx, `{"submissionId":"sub-1"}`, "")
			var already *AlreadyCheckedInError
			switch {
			case err == nil:
				recorded.Add(1)
			case errors.As(err, &already):
				rejected.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if recorded.Load() != 1 {
		t.Errorf("Expected exactly 1 recorded scan, got %d", recorded.Load())
	}
	if rejected.Load() != scanners-1 {
		t.Errorf("Expected %d rejected scans, got %d", scanners-1, rejected.Load())
	}
	if n := countCheckins(t, mem); n != 1 {
		t.Errorf("Expected 1 checkin, got %d", n)
	}
}

func TestCreate(t *testing.T) {
	c, _ := setupCoordinator(t)
	ctx := context.Background()

	if _, err := c.Create(ctx, models.CreateCheckinRequest{SubmissionID: "sub-1"}); !errors.Is(err, ErrMissingFields) {
		t.Errorf("Expected ErrMissingFields, got %v", err)
	}
	if _, err := c.Create(ctx, models.CreateCheckinRequest{SubmissionID: "sub-1", FormID: "form-9"}); !errors.Is(err, ErrFormMismatch) {
		t.Errorf("Expected ErrFormMismatch, got %v", err)
	}
	if _, err := c.Create(ctx, models.CreateCheckinRequest{SubmissionID: "nope", FormID: "form-1"}); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("Expected ErrSubmissionNotFound, got %v", err)
	}

	at := time.Date(2025, 5, 10, 8, 45, 0, 0, time.UTC)
	created, err := c.Create(ctx, models.CreateCheckinRequest{
		SubmissionID: "sub-1",
		FormID:       "form-1",
		CheckinTime:  &at,
		Notes:        "walk-in",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created.CheckinTime.Equal(at) {
		t.Errorf("Expected checkin time %v, got %v", at, created.CheckinTime)
	}
	if created.ParticipantName != "Sato Hanako (Sato Taro)" {
		t.Errorf("Expected derived name, got %q", created.ParticipantName)
	}
	if created.Notes != "walk-in" {
		t.Errorf("Expected notes, got %q", created.Notes)
	}

	_, err = c.Create(ctx, models.CreateCheckinRequest{SubmissionID: "sub-1", FormID: "form-1"})
	var already *AlreadyCheckedInError
	if !errors.As(err, &already) || already.Existing.ID != created.ID {
		t.Errorf("Expected AlreadyCheckedInError with original record, got %v", err)
	}
}

func TestUpdateNotes(t *testing.T) {
	c, _ := setupCoordinator(t)
	ctx := context.Background()

	if _, err := c.UpdateNotes(ctx, "missing", "x"); !errors.Is(err, ErrCheckinNotFound) {
		t.Errorf("Expected ErrCheckinNotFound, got %v", err)
	}
	if _, err := c.UpdateNotes(ctx, "missing", "x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected error to wrap store.ErrNotFound, got %v", err)
	}

	res, err := c.Scan(ctx, `{"submissionId":"sub-1"}`, "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	original := res.Checkin

	later := time.Date(2025, 5, 10, 11, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return later }

	updated, err := c.UpdateNotes(ctx, original.ID, "brought sibling")
	if err != nil {
		t.Fatalf("UpdateNotes failed: %v", err)
	}
	if updated.Notes != "brought sibling" {
		t.Errorf("Expected notes updated, got %q", updated.Notes)
	}
	if updated.UpdatedAt == nil || !updated.UpdatedAt.Equal(later) {
		t.Errorf("Expected updatedAt %v, got %v", later, updated.UpdatedAt)
	}
	if updated.ID != original.ID || updated.SubmissionID != original.SubmissionID ||
		updated.FormID != original.FormID || updated.ParticipantName != original.ParticipantName ||
		!updated.CheckinTime.Equal(original.CheckinTime) || !updated.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("Expected other fields unchanged:\n got %+v\nwant %+v", updated, original)
	}

	kept, err := c.UpdateNotes(ctx, original.ID, "")
	if err != nil {
		t.Fatalf("UpdateNotes failed: %v", err)
	}
	if kept.Notes != "brought sibling" {
		t.Errorf("Expected empty notes to keep previous value, got %q", kept.Notes)
	}
}

func TestDelete(t *testing.T) {
	c, mem := setupCoordinator(t)
	ctx := context.Background()

	if _, err := c.Delete(ctx, "missing"); !errors.Is(err, ErrCheckinNotFound) {
		t.Errorf("Expected ErrCheckinNotFound, got %v", err)
	}

	res, _ := c.Scan(ctx, `{"submissionId":"sub-1"}`, "")
	removed, err := c.Delete(ctx, res.Checkin.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.ID != res.Checkin.ID {
		t.Errorf("Expected removed record %s, got %s", res.Checkin.ID, removed.ID)
	}
	if n := countCheckins(t, mem); n != 0 {
		t.Errorf("Expected no checkins, got %d", n)
	}

	// the submission can be checked in again after a delete
	if _, err := c.Scan(ctx, `{"submissionId":"sub-1"}`, ""); err != nil {
		t.Errorf("Expected re-scan to succeed, got %v", err)
	}
}

func TestFilterByDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	records := []models.Checkin{
		{ID: "a", CheckinTime: time.Date(2025, 5, 9, 16, 0, 0, 0, time.UTC)}, // 5/10 01:00 JST
		{ID: "b", CheckinTime: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)}, // 5/10 23:00 JST
		{ID: "c", CheckinTime: time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)}, // 5/11 00:00 JST
	}

	day, err := ParseDay("2025-05-10", tokyo)
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	got := FilterByDate(records, day, tokyo)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("Expected a and b, got %+v", got)
	}

	got = FilterByDate(records, day, time.UTC)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("Expected b and c in UTC, got %+v", got)
	}

	if _, err := ParseDay("10/05/2025", tokyo); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestList(t *testing.T) {
	c, _ := setupCoordinator(t)
	ctx := context.Background()
	if _, err := c.Scan(ctx, `{"submissionId":"sub-1"}`, ""); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	all, err := c.List(ctx, "form-1", nil, time.UTC)
	if err != nil || len(all) != 1 {
		t.Fatalf("Expected 1 checkin, got %d (%v)", len(all), err)
	}

	other := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	none, _ := c.List(ctx, "form-1", &other, time.UTC)
	if len(none) != 0 {
		t.Errorf("Expected no checkins on other day, got %d", len(none))
	}
}
