// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/sgformer/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type FormStore interface {
	ListForms(ctx context.Context) ([]models.Form, error)
	GetForm(ctx context.Context, id string) (models.Form, error)
	CreateForm(ctx context.Context, form models.Form) error
	UpdateForm(ctx context.Context, form models.Form) error
	// DeleteForm removes the form together with its submissions and their
	// check-ins.
	DeleteForm(ctx context.Context, id string) error
}

type SubmissionStore interface {
	// ListSubmissions returns every submission when formID is empty
	ListSubmissions(ctx context.Context, formID string) ([]models.Submission, error)
	GetSubmission(ctx context.Context, id string) (models.Submission, error)
	CreateSubmission(ctx context.Context, sub models.Submission) error
	DeleteSubmission(ctx context.Context, id string) error
}

type CheckinStore interface {
	// ListCheckins returns every check-in when formID is empty
	ListCheckins(ctx context.Context, formID string) ([]models.Checkin, error)
	GetCheckin(ctx context.Context, id string) (models.Checkin, error)
	GetCheckinBySubmission(ctx context.Context, submissionID string) (models.Checkin, error)
	// InsertCheckinIfAbsent stores c unless a check-in for c.SubmissionID
	// exists. On conflict it returns the existing record and ErrAlreadyExists.
	InsertCheckinIfAbsent(ctx context.Context, c models.Checkin) (models.Checkin, error)
	UpdateCheckin(ctx context.Context, c models.Checkin) error
	// DeleteCheckin returns the removed record
	DeleteCheckin(ctx context.Context, id string) (models.Checkin, error)
}

// Store is the full repository used by the service
type Store interface {
	FormStore
	SubmissionStore
	CheckinStore
	Close() error
}
