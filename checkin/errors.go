// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checkin

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/store"
)

var (
	ErrInvalidPayload     = errors.New("invalid scan payload")
	ErrMissingFields      = errors.New("submissionId and formId are required")
	ErrFormMismatch       = errors.New("submission belongs to a different form")
	ErrSubmissionNotFound = fmt.Errorf("submission %w", store.ErrNotFound)
	ErrCheckinNotFound    = fmt.Errorf("checkin %w", store.ErrNotFound)
)

// AlreadyCheckedInError is returned when the submission already has a
// check-in. Existing is the original record.
type AlreadyCheckedInError struct {
	Existing models.Checkin
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("submission %s already checked in", e.Existing.SubmissionID)
}

// Is lets errors.Is(err, store.ErrAlreadyExists) match
func (e *AlreadyCheckedInError) Is(target error) bool {
	return target == store.ErrAlreadyExists
}
