// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checkin

import (
	"strings"

	"github.com/danielhkuo/sgformer/models"
)

// UnknownParticipant is shown when no name can be derived
const UnknownParticipant = "Unknown"

// Question ids of the bundled seed forms, used when a form declares no roles
var (
	legacyContactSlots     = []string{"q1", "q10", "q16"}
	legacyParticipantSlots = []string{"q2", "q17"}
)

// DeriveParticipantName builds the display name for a submission.
// Questions declaring RoleContactName and RoleParticipantName are used
// first. Forms without declared roles fall back to the bundled question
// ids. The result is "Contact (Participant)", either name alone, or
// UnknownParticipant.
func DeriveParticipantName(form *models.Form, sub models.Submission) string {
	var contact, participant string

	if form != nil && declaresNameRoles(*form) {
		contact = firstAnswer(sub, questionIDs(form.QuestionsWithRole(models.RoleContactName)))
		participant = firstAnswer(sub, questionIDs(form.QuestionsWithRole(models.RoleParticipantName)))
	} else {
		contact = firstAnswer(sub, legacyContactSlots)
		participant = firstAnswer(sub, legacyParticipantSlots)
	}

	switch {
	case contact != "" && participant != "":
		return contact + " (" + participant + ")"
	case contact != "":
		return contact
	case participant != "":
		return participant
	}
	return UnknownParticipant
}

func declaresNameRoles(form models.Form) bool {
	for _, q := range form.Questions {
		if q.Role == models.RoleContactName || q.Role == models.RoleParticipantName {
			return true
		}
	}
	return false
}

func questionIDs(qs []models.Question) []string {
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}

func firstAnswer(sub models.Submission, ids []string) string {
	for _, id := range ids {
		a, ok := sub.Answers[id]
		if !ok || a.IsEmpty() {
			continue
		}
		return strings.TrimSpace(a.String())
	}
	return ""
}
