// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/danielhkuo/sgformer/models"
)

// Memory keeps everything in process memory, in insertion order.
type Memory struct {
	mu          sync.RWMutex
	forms       []models.Form
	submissions []models.Submission
	checkins    []models.Checkin
}

func NewMemory() *Memory {
	return &Memory{}
}

// Load replaces the current contents
func (m *Memory) Load(forms []models.Form, subs []models.Submission, checkins []models.Checkin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forms = slices.Clone(forms)
	m.submissions = slices.Clone(subs)
	m.checkins = slices.Clone(checkins)
}

// Dump returns copies of the current contents
func (m *Memory) Dump() ([]models.Form, []models.Submission, []models.Checkin) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.forms), slices.Clone(m.submissions), slices.Clone(m.checkins)
}

func (m *Memory) Close() error { return nil }

// Forms

func (m *Memory) ListForms(ctx context.Context) ([]models.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Form, len(m.forms))
	copy(out, m.forms)
	return out, nil
}

func (m *Memory) GetForm(ctx context.Context, id string) (models.Form, error) {
	if err := ctx.Err(); err != nil {
		return models.Form{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := slices.IndexFunc(m.forms, func(f models.Form) bool { return f.ID == id })
	if i < 0 {
		return models.Form{}, ErrNotFound
	}
	return m.forms[i], nil
}

func (m *Memory) CreateForm(ctx context.Context, form models.Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.forms, func(f models.Form) bool { return f.ID == form.ID }) {
		return ErrAlreadyExists
	}
	m.forms = append(m.forms, form)
	return nil
}

func (m *Memory) UpdateForm(ctx context.Context, form models.Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.forms, func(f models.Form) bool { return f.ID == form.ID })
	if i < 0 {
		return ErrNotFound
	}
	m.forms[i] = form
	return nil
}

func (m *Memory) DeleteForm(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.forms, func(f models.Form) bool { return f.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.forms = slices.Delete(m.forms, i, i+1)

	removed := make(map[string]bool)
	m.submissions = slices.DeleteFunc(m.submissions, func(s models.Submission) bool {
		if s.FormID == id {
			removed[s.ID] = true
			return true
		}
		return false
	})
	m.checkins = slices.DeleteFunc(m.checkins, func(c models.Checkin) bool {
		return c.FormID == id || removed[c.SubmissionID]
	})
	return nil
}

// Submissions

func (m *Memory) ListSubmissions(ctx context.Context, formID string) ([]models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Submission{}
	for _, s := range m.submissions {
		if formID == "" || s.FormID == formID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) GetSubmission(ctx context.Context, id string) (models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return models.Submission{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := slices.IndexFunc(m.submissions, func(s models.Submission) bool { return s.ID == id })
	if i < 0 {
		return models.Submission{}, ErrNotFound
	}
	return m.submissions[i], nil
}

func (m *Memory) CreateSubmission(ctx context.Context, sub models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.submissions, func(s models.Submission) bool { return s.ID == sub.ID }) {
		return ErrAlreadyExists
	}
	m.submissions = append(m.submissions, sub)
	return nil
}

func (m *Memory) DeleteSubmission(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.submissions, func(s models.Submission) bool { return s.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.submissions = slices.Delete(m.submissions, i, i+1)
	return nil
}

// Check-ins

func (m *Memory) ListCheckins(ctx context.Context, formID string) ([]models.Checkin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Checkin{}
	for _, c := range m.checkins {
		if formID == "" || c.FormID == formID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Memory) GetCheckin(ctx context.Context, id string) (models.Checkin, error) {
	if err := ctx.Err(); err != nil {
		return models.Checkin{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := slices.IndexFunc(m.checkins, func(c models.Checkin) bool { return c.ID == id })
	if i < 0 {
		return models.Checkin{}, ErrNotFound
	}
	return m.checkins[i], nil
}

func (m *Memory) GetCheckinBySubmission(ctx context.Context, submissionID string) (models.Checkin, error) {
	if err := ctx.Err(); err != nil {
		return models.Checkin{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := slices.IndexFunc(m.checkins, func(c models.Checkin) bool { return c.SubmissionID == submissionID })
	if i < 0 {
		return models.Checkin{}, ErrNotFound
	}
	return m.checkins[i], nil
}

func (m *Memory) InsertCheckinIfAbsent(ctx context.Context, c models.Checkin) (models.Checkin, error) {
	if err := ctx.Err(); err != nil {
		return models.Checkin{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// check and append under one lock
	i := slices.IndexFunc(m.checkins, func(e models.Checkin) bool { return e.SubmissionID == c.SubmissionID })
	if i >= 0 {
		return m.checkins[i], ErrAlreadyExists
	}
	m.checkins = append(m.checkins, c)
	return c, nil
}

func (m *Memory) UpdateCheckin(ctx context.Context, c models.Checkin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.checkins, func(e models.Checkin) bool { return e.ID == c.ID })
	if i < 0 {
		return ErrNotFound
	}
	m.checkins[i] = c
	return nil
}

func (m *Memory) DeleteCheckin(ctx context.Context, id string) (models.Checkin, error) {
	if err := ctx.Err(); err != nil {
		return models.Checkin{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.checkins, func(c models.Checkin) bool { return c.ID == id })
	if i < 0 {
		return models.Checkin{}, ErrNotFound
	}
	removed := m.checkins[i]
	m.checkins = slices.Delete(m.checkins, i, i+1)
	return removed, nil
}

var _ Store = (*Memory)(nil)
