// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/sgformer/auth"
	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/store"
)

// ScanPayload is the structured content of a receipt barcode
type ScanPayload struct {
	SubmissionID string                   `json:"submissionId"`
	FormID       string                   `json:"formId,omitempty"`
	SubmittedAt  string                   `json:"submittedAt,omitempty"`
	PersonalInfo map[string]models.Answer `json:"personalInfo,omitempty"`
}

// ScanResult is what a successful scan produces
type ScanResult struct {
	Checkin         models.Checkin
	Submission      models.Submission
	ParticipantName string
}

// Coordinator records at most one check-in per submission
type Coordinator struct {
	store store.Store
	now   func() time.Time
}

func NewCoordinator(s store.Store) *Coordinator {
	return &Coordinator{store: s, now: time.Now}
}

// scanWire is the decode target for a scanned barcode. Only submissionId
// is required; the other fields are read leniently so a stray type never
// blocks a check-in.
type scanWire struct {
	SubmissionID string          `json:"submissionId"`
	FormID       json.RawMessage `json:"formId"`
	SubmittedAt  json.RawMessage `json:"submittedAt"`
	PersonalInfo json.RawMessage `json:"personalInfo"`
}

// Decode parses a scanned barcode. The text must be a JSON object with a
// non-empty string submissionId. Optional fields with unexpected types are
// dropped.
func Decode(raw string) (ScanPayload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ScanPayload{}, fmt.Errorf("%w: empty", ErrInvalidPayload)
	}
	var w scanWire
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return ScanPayload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	id := strings.TrimSpace(w.SubmissionID)
	if id == "" {
		return ScanPayload{}, fmt.Errorf("%w: missing submissionId", ErrInvalidPayload)
	}
	return ScanPayload{
		SubmissionID: id,
		FormID:       looseString(w.FormID),
		SubmittedAt:  looseString(w.SubmittedAt),
		PersonalInfo: looseAnswers(w.PersonalInfo),
	}, nil
}

// looseString returns the JSON string in data, or "" for any other value
func looseString(data json.RawMessage) string {
	var s string
	if len(data) == 0 || json.Unmarshal(data, &s) != nil {
		return ""
	}
	return s
}

// looseAnswers keeps the entries of a JSON object that read as answers
func looseAnswers(data json.RawMessage) map[string]models.Answer {
	var fields map[string]json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &fields) != nil || len(fields) == 0 {
		return nil
	}
	out := make(map[string]models.Answer, len(fields))
	for k, v := range fields {
		var a models.Answer
		if err := json.Unmarshal(v, &a); err == nil {
			out[k] = a
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (c *Coordinator) ResolveSubmission(ctx context.Context, id string) (models.Submission, error) {
	sub, err := c.store.GetSubmission(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Submission{}, ErrSubmissionNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("resolve submission: %w", err)
	}
	return sub, nil
}

// CheckIfAlreadyCheckedIn returns the existing check-in, or nil when the
// submission has none.
func (c *Coordinator) CheckIfAlreadyCheckedIn(ctx context.Context, submissionID string) (*models.Checkin, error) {
	existing, err := c.store.GetCheckinBySubmission(ctx, submissionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check existing checkin: %w", err)
	}
	return &existing, nil
}

// ParticipantName derives the display name using the submission's form
// when it is still available.
func (c *Coordinator) ParticipantName(ctx context.Context, sub models.Submission) string {
	form, err := c.store.GetForm(ctx, sub.FormID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("failed to load form for participant name", "form_id", sub.FormID, "error", err)
		}
		return DeriveParticipantName(nil, sub)
	}
	return DeriveParticipantName(&form, sub)
}

// RecordCheckin stores a new check-in for the submission. A concurrent
// duplicate yields *AlreadyCheckedInError.
func (c *Coordinator) RecordCheckin(ctx context.Context, submissionID, formID, participantName string) (models.Checkin, error) {
	now := c.now()
	return c.insert(ctx, submissionID, formID, participantName, now, "")
}

func (c *Coordinator) insert(ctx context.Context, submissionID, formID, participantName string, at time.Time, notes string) (models.Checkin, error) {
	id, err := auth.GenerateID("checkin")
	if err != nil {
		return models.Checkin{}, err
	}
	if participantName == "" {
		participantName = UnknownParticipant
	}

	record := models.Checkin{
		ID:              id,
		SubmissionID:    submissionID,
		FormID:          formID,
		ParticipantName: participantName,
		CheckinTime:     at,
		Notes:           notes,
		CreatedAt:       c.now(),
	}
	stored, err := c.store.InsertCheckinIfAbsent(ctx, record)
	if errors.Is(err, store.ErrAlreadyExists) {
		return models.Checkin{}, &AlreadyCheckedInError{Existing: stored}
	}
	if err != nil {
		return models.Checkin{}, fmt.Errorf("record checkin: %w", err)
	}

	slog.Info("checkin recorded",
		"checkin_id", stored.ID,
		"submission_id", submissionID,
		"form_id", formID,
	)
	return stored, nil
}

// Create records a check-in entered by hand. The submission must exist and
// belong to req.FormID. An empty participant name is derived from the
// submission, and a nil checkin time means now.
func (c *Coordinator) Create(ctx context.Context, req models.CreateCheckinRequest) (models.Checkin, error) {
	submissionID := strings.TrimSpace(req.SubmissionID)
	formID := strings.TrimSpace(req.FormID)
	if submissionID == "" || formID == "" {
		return models.Checkin{}, ErrMissingFields
	}

	existing, err := c.CheckIfAlreadyCheckedIn(ctx, submissionID)
	if err != nil {
		return models.Checkin{}, err
	}
	if existing != nil {
		return models.Checkin{}, &AlreadyCheckedInError{Existing: *existing}
	}

	sub, err := c.ResolveSubmission(ctx, submissionID)
	if err != nil {
		return models.Checkin{}, err
	}
	if sub.FormID != formID {
		return models.Checkin{}, ErrFormMismatch
	}

	name := strings.TrimSpace(req.ParticipantName)
	if name == "" {
		name = c.ParticipantName(ctx, sub)
	}
	at := c.now()
	if req.CheckinTime != nil {
		at = *req.CheckinTime
	}
	return c.insert(ctx, submissionID, formID, name, at, req.Notes)
}

// UpdateNotes replaces the notes and stamps updatedAt. Empty notes keep
// the previous value.
func (c *Coordinator) UpdateNotes(ctx context.Context, id, notes string) (models.Checkin, error) {
	record, err := c.store.GetCheckin(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Checkin{}, ErrCheckinNotFound
	}
	if err != nil {
		return models.Checkin{}, fmt.Errorf("load checkin: %w", err)
	}

	if notes != "" {
		record.Notes = notes
	}
	now := c.now()
	record.UpdatedAt = &now

	err = c.store.UpdateCheckin(ctx, record)
	if errors.Is(err, store.ErrNotFound) {
		return models.Checkin{}, ErrCheckinNotFound
	}
	if err != nil {
		return models.Checkin{}, fmt.Errorf("update checkin: %w", err)
	}
	return record, nil
}

// Delete removes the check-in and returns it
func (c *Coordinator) Delete(ctx context.Context, id string) (models.Checkin, error) {
	removed, err := c.store.DeleteCheckin(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Checkin{}, ErrCheckinNotFound
	}
	if err != nil {
		return models.Checkin{}, fmt.Errorf("delete checkin: %w", err)
	}
	slog.Info("checkin deleted", "checkin_id", id, "submission_id", removed.SubmissionID)
	return removed, nil
}

// List returns check-ins for formID (all when empty), optionally limited
// to one calendar day in loc.
func (c *Coordinator) List(ctx context.Context, formID string, day *time.Time, loc *time.Location) ([]models.Checkin, error) {
	records, err := c.store.ListCheckins(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	if day != nil {
		records = FilterByDate(records, *day, loc)
	}
	return records, nil
}

// Scan runs decode, resolve, duplicate check, name derivation and record.
// When expectFormID is set the submission must belong to that form. No
// failure leaves a partial write behind.
func (c *Coordinator) Scan(ctx context.Context, raw, expectFormID string) (ScanResult, error) {
	payload, err := Decode(raw)
	if err != nil {
		return ScanResult{}, err
	}

	sub, err := c.ResolveSubmission(ctx, payload.SubmissionID)
	if err != nil {
		return ScanResult{}, err
	}
	if expectFormID != "" && sub.FormID != expectFormID {
		return ScanResult{}, ErrFormMismatch
	}

	existing, err := c.CheckIfAlreadyCheckedIn(ctx, sub.ID)
	if err != nil {
		return ScanResult{}, err
	}
	if existing != nil {
		return ScanResult{}, &AlreadyCheckedInError{Existing: *existing}
	}

	name := c.ParticipantName(ctx, sub)
	record, err := c.RecordCheckin(ctx, sub.ID, sub.FormID, name)
	if err != nil {
		return ScanResult{}, err
	}
	return ScanResult{Checkin: record, Submission: sub, ParticipantName: name}, nil
}

// FilterByDate keeps check-ins whose time falls on the same calendar date
// as day, both read in loc. A nil loc means time.Local.
func FilterByDate(records []models.Checkin, day time.Time, loc *time.Location) []models.Checkin {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := day.In(loc).Date()
	out := []models.Checkin{}
	for _, r := range records {
		ry, rm, rd := r.CheckinTime.In(loc).Date()
		if ry == y && rm == m && rd == d {
			out = append(out, r)
		}
	}
	return out
}

// ParseDay reads a YYYY-MM-DD date as midnight in loc
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
