// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"slices"
	"time"

	"github.com/danielhkuo/sgformer/models"
)

var (
	gradesUpper  = []string{"Grade 5", "Grade 6", "Grade 7", "Grade 8", "Grade 9"}
	gradesLower  = []string{"Grade 5", "Grade 6", "Grade 7", "Grade 8"}
	partySize    = []string{"1 (guardian only)", "2 (guardian and student)", "3 or more"}
	interest     = []string{"Very high", "High", "Neutral", "Low", "Undecided"}
	interestDiff = []string{"Much higher", "Higher", "Unchanged", "Lower", "Much lower"}
	satisfaction = []string{"Very satisfied", "Satisfied", "Neutral", "Dissatisfied", "Very dissatisfied"}
	subjects     = []string{"English", "Mathematics", "Science lab", "Physical education", "Music", "Art"}
	slots        = []string{"Weekday morning", "Weekday afternoon", "Saturday morning", "Saturday afternoon"}
)

func text(id, label string, required bool, role string) models.Question {
	return models.Question{ID: id, Text: label, Type: models.QuestionText, Required: required, Role: role}
}

func textarea(id, label string) models.Question {
	return models.Question{ID: id, Text: label, Type: models.QuestionTextarea}
}

func radio(id, label string, options []string, role string) models.Question {
	return models.Question{
		ID:       id,
		Text:     label,
		Type:     models.QuestionRadio,
		Options:  slices.Clone(options),
		Required: true,
		Role:     role,
	}
}

// SeedForms returns the forms a fresh installation starts with. Their
// question ids are unique across the three forms.
func SeedForms(createdBy string, now time.Time) []models.Form {
	forms := []models.Form{
		{
			ID:          "form-1",
			Title:       "School Information Session Registration",
			Description: "Register for our school information session. Contact us with any questions.",
			Questions: []models.Question{
				text("q1", "Guardian name", true, models.RoleContactName),
				text("q2", "Student name", true, models.RoleParticipantName),
				radio("q3", "Student grade", gradesUpper, ""),
				text("q4", "Email address", true, models.RoleEmail),
				text("q5", "Phone number", true, ""),
				radio("q6", "Preferred session", []string{
					"Session 1: Sat Jun 15, 10:00-12:00",
					"Session 2: Sat Jul 20, 14:00-16:00",
					"Session 3: Sat Sep 14, 10:00-12:00",
				}, models.RoleSchedule),
				radio("q7", "Number of attendees", partySize, ""),
				radio("q8", "Interest in our school", interest, models.RoleInterest),
				textarea("q9", "Questions or requests"),
			},
		},
		{
			ID:          "form-2",
			Title:       "Information Session Survey",
			Description: "Thank you for attending. Please help us improve with this short survey.",
			Questions: []models.Question{
				text("q10", "Attendee name", true, models.RoleContactName),
				radio("q11", "Overall satisfaction", satisfaction, ""),
				textarea("q12", "What stood out most"),
				radio("q13", "Change in interest", interestDiff, models.RoleInterest),
				textarea("q14", "Topics for future sessions"),
				textarea("q15", "Other comments"),
			},
		},
		{
			ID:          "form-3",
			Title:       "Trial Class Registration",
			Description: "Join a trial class and experience our teaching first hand.",
			Questions: []models.Question{
				text("q16", "Guardian name", true, models.RoleContactName),
				text("q17", "Student name", true, models.RoleParticipantName),
				radio("q18", "Student grade", gradesLower, ""),
				radio("q19", "Preferred class", subjects, ""),
				radio("q20", "Preferred date", []string{
					"Sat Aug 5, 9:00-11:00",
					"Sat Aug 12, 9:00-11:00",
					"Sat Aug 19, 9:00-11:00",
				}, models.RoleSchedule),
				text("q21", "Contact email", true, models.RoleEmail),
				text("q22", "Contact phone", true, ""),
				textarea("q23", "Student strengths and interests"),
			},
		},
	}
	for i := range forms {
		forms[i].CreatedBy = createdBy
		forms[i].CreatedAt = now
		forms[i].UpdatedAt = now
	}
	return forms
}

// All returns the bundled form templates. Callers get fresh copies.
func All() []models.Form {
	return []models.Form{
		{
			ID:          "template-open-house",
			Title:       "Information Session Registration",
			Description: "Collects guardian and student details and the preferred session.",
			CreatedBy:   "admin",
			Questions: []models.Question{
				text("q1", "Guardian name", true, models.RoleContactName),
				text("q2", "Student name", true, models.RoleParticipantName),
				radio("q3", "Student grade", gradesUpper, ""),
				text("q4", "Email address", true, models.RoleEmail),
				text("q5", "Phone number", true, ""),
				radio("q6", "Preferred session", []string{
					"Session 1: Sat Jun 15, 10:00-12:00",
					"Session 2: Sat Jul 20, 14:00-16:00",
					"Session 3: Sat Sep 14, 10:00-12:00",
				}, models.RoleSchedule),
				radio("q7", "Number of attendees", partySize, ""),
				radio("q8", "Interest in our school", interest, models.RoleInterest),
				textarea("q9", "Questions or requests"),
			},
		},
		{
			ID:          "template-experience-class",
			Title:       "Trial Class Registration",
			Description: "Collects the preferred class and date for a trial lesson.",
			CreatedBy:   "admin",
			Questions: []models.Question{
				text("q1", "Guardian name", true, models.RoleContactName),
				text("q2", "Student name", true, models.RoleParticipantName),
				radio("q3", "Student grade", gradesLower, ""),
				radio("q4", "Preferred class", subjects, ""),
				radio("q5", "Preferred date", []string{
					"Sat Aug 5, 9:00-11:00",
					"Sat Aug 12, 9:00-11:00",
					"Sat Aug 19, 9:00-11:00",
				}, models.RoleSchedule),
				text("q6", "Contact email", true, models.RoleEmail),
				text("q7", "Contact phone", true, ""),
				textarea("q8", "Student strengths and interests"),
			},
		},
		{
			ID:          "template-survey",
			Title:       "Information Session Survey",
			Description: "Post-session feedback on satisfaction and interest.",
			CreatedBy:   "admin",
			Questions: []models.Question{
				text("q1", "Attendee name", true, models.RoleContactName),
				radio("q2", "Overall satisfaction", satisfaction, ""),
				textarea("q3", "What stood out most"),
				radio("q4", "Change in interest", interestDiff, models.RoleInterest),
				textarea("q5", "Topics for future sessions"),
				textarea("q6", "Other comments"),
			},
		},
		{
			ID:          "template-consultation",
			Title:       "Individual Consultation Request",
			Description: "Book a one-to-one consultation with our staff.",
			CreatedBy:   "admin",
			Questions: []models.Question{
				text("q1", "Guardian name", true, models.RoleContactName),
				text("q2", "Student name", true, models.RoleParticipantName),
				radio("q3", "Student grade", gradesUpper, ""),
				radio("q4", "Topic", []string{"Admissions", "School life", "Curriculum", "Career paths", "Other"}, ""),
				radio("q5", "Preferred time", slots, models.RoleSchedule),
				text("q6", "Contact email", true, models.RoleEmail),
				text("q7", "Contact phone", true, ""),
				textarea("q8", "Details"),
			},
		},
		{
			ID:          "template-campus-tour",
			Title:       "Campus Tour Request",
			Description: "Request a guided tour of our facilities.",
			CreatedBy:   "admin",
			Questions: []models.Question{
				text("q1", "Guardian name", true, models.RoleContactName),
				text("q2", "Student name", true, models.RoleParticipantName),
				radio("q3", "Student grade", gradesUpper, ""),
				radio("q4", "Preferred time", slots, models.RoleSchedule),
				radio("q5", "Facilities of interest", []string{
					"Classrooms", "Library", "Gymnasium", "Laboratories", "Music room", "Art room", "All facilities",
				}, ""),
				radio("q6", "Number of attendees", partySize, ""),
				text("q7", "Contact email", true, models.RoleEmail),
				text("q8", "Contact phone", true, ""),
				textarea("q9", "Other requests"),
			},
		},
	}
}
