// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Question types
const (
	QuestionText     = "TEXT"
	QuestionTextarea = "TEXTAREA"
	QuestionRadio    = "RADIO"
	QuestionCheckbox = "CHECKBOX"
)

// Question roles, declared when a form is authored
const (
	RoleContactName     = "contact_name"
	RoleParticipantName = "participant_name"
	RoleInterest        = "interest"
	RoleSchedule        = "schedule"
	RoleEmail           = "email"
)

// User roles
const (
	UserRoleAdmin = "admin"
	UserRoleUser  = "user"
)

// Domain types

type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Role     string   `json:"role,omitempty"`
}

// HasOptions reports whether the question type takes a fixed option list
func (q Question) HasOptions() bool {
	return q.Type == QuestionRadio || q.Type == QuestionCheckbox
}

type Form struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Question returns the question with the given id
func (f Form) Question(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionsWithRole returns the questions declaring role, in form order
func (f Form) QuestionsWithRole(role string) []Question {
	var out []Question
	for _, q := range f.Questions {
		if q.Role == role {
			out = append(out, q)
		}
	}
	return out
}

type Submission struct {
	ID          string            `json:"id"`
	FormID      string            `json:"formId"`
	SubmittedBy string            `json:"submittedBy"`
	Answers     map[string]Answer `json:"answers"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

type Checkin struct {
	ID              string     `json:"id"`
	SubmissionID    string     `json:"submissionId"`
	FormID          string     `json:"formId"`
	ParticipantName string     `json:"participantName"`
	CheckinTime     time.Time  `json:"checkinTime"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

type User struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Request types

type FormRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

type CreateSubmissionRequest struct {
	FormID      string            `json:"formId"`
	SubmittedBy string            `json:"submittedBy"`
	Answers     map[string]Answer `json:"answers"`
}

type CreateCheckinRequest struct {
	SubmissionID    string     `json:"submissionId"`
	FormID          string     `json:"formId"`
	ParticipantName string     `json:"participantName"`
	CheckinTime     *time.Time `json:"checkinTime,omitempty"`
	Notes           string     `json:"notes"`
}

type UpdateCheckinRequest struct {
	Notes string `json:"notes"`
}

type ScanRequest struct {
	Payload string `json:"payload"`
	FormID  string `json:"formId,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

type GenerateReceiptRequest struct {
	FormData       *Form          `json:"formData"`
	SubmissionData *Submission    `json:"submissionData"`
	QRCodeData     map[string]any `json:"qrCodeData,omitempty"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ScanResponse struct {
	Checkin         Checkin `json:"checkin"`
	ParticipantName string  `json:"participantName"`
}

// Returned with 409 when the submission already has a check-in
type ConflictResponse struct {
	Error   string  `json:"error"`
	Checkin Checkin `json:"checkin"`
}

type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GenerateReceiptResponse struct {
	Success  bool   `json:"success"`
	PDFData  string `json:"pdfData"`
	Filename string `json:"filename"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
