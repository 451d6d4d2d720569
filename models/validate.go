// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrValidation is wrapped by every validation failure
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

var questionTypes = []string{QuestionText, QuestionTextarea, QuestionRadio, QuestionCheckbox}

var questionRoles = []string{"", RoleContactName, RoleParticipantName, RoleInterest, RoleSchedule, RoleEmail}

// Validate checks a form definition before it is stored
func (r FormRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return invalid("title is required")
	}
	if len(r.Questions) == 0 {
		return invalid("at least one question is required")
	}

	seen := make(map[string]bool, len(r.Questions))
	for i, q := range r.Questions {
		if strings.TrimSpace(q.ID) == "" {
			return invalid("question %d: id is required", i+1)
		}
		if seen[q.ID] {
			return invalid("question %s: duplicate id", q.ID)
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			return invalid("question %s: text is required", q.ID)
		}
		if !slices.Contains(questionTypes, q.Type) {
			return invalid("question %s: unknown type %q", q.ID, q.Type)
		}
		if !slices.Contains(questionRoles, q.Role) {
			return invalid("question %s: unknown role %q", q.ID, q.Role)
		}
		if q.HasOptions() {
			if len(q.Options) == 0 {
				return invalid("question %s: options are required for %s", q.ID, q.Type)
			}
			for _, o := range q.Options {
				if strings.TrimSpace(o) == "" {
					return invalid("question %s: options must not be blank", q.ID)
				}
			}
		} else if len(q.Options) > 0 {
			return invalid("question %s: options are only allowed for RADIO and CHECKBOX", q.ID)
		}
	}
	return nil
}

// ValidateAnswers checks answers against the form's questions. Required
// questions need a non-empty answer (a CHECKBOX at least one choice), and
// RADIO/CHECKBOX answers must be among the options.
func (f Form) ValidateAnswers(answers map[string]Answer) error {
	for id := range answers {
		if _, ok := f.Question(id); !ok {
			return invalid("answer for unknown question %s", id)
		}
	}

	for _, q := range f.Questions {
		a, ok := answers[q.ID]
		if !ok || a.IsEmpty() {
			if q.Required {
				return invalid("question %s is required", q.ID)
			}
			continue
		}

		switch q.Type {
		case QuestionCheckbox:
			if !a.Multi {
				return invalid("question %s expects a list of choices", q.ID)
			}
			for _, v := range a.Values {
				if !slices.Contains(q.Options, v) {
					return invalid("question %s: %q is not an option", q.ID, v)
				}
			}
		case QuestionRadio:
			if a.Multi {
				return invalid("question %s expects a single choice", q.ID)
			}
			if !slices.Contains(q.Options, a.Value) {
				return invalid("question %s: %q is not an option", q.ID, a.Value)
			}
		default:
			if a.Multi {
				return invalid("question %s expects text", q.ID)
			}
		}
	}
	return nil
}
