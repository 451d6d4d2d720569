// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the browser client.

# Domain Types

  - Form: title, description, ordered questions, author
  - Question: text, type, options, required flag, declared role
  - Submission: one user's answers to a form
  - Answer: a string or a list of strings (CHECKBOX)
  - Checkin: attendance record, at most one per submission
  - User: email and role, carried in session tokens

# Request Types

  - FormRequest: title, description, questions
  - CreateSubmissionRequest: formId, submittedBy, answers
  - CreateCheckinRequest / UpdateCheckinRequest / ScanRequest
  - LoginRequest, SendEmailRequest, GenerateReceiptRequest

# Response Types

  - LoginResponse: token, user
  - ScanResponse: checkin, participantName
  - ConflictResponse: error, checkin (the existing record)
  - SendEmailResponse, GenerateReceiptResponse
  - ErrorResponse: error, message

# Question Roles

Roles tie a question to a meaning other packages rely on:

	RoleContactName     = "contact_name"      // parent / guardian name
	RoleParticipantName = "participant_name"  // child / attendee name
	RoleInterest        = "interest"          // options ordered high to low
	RoleSchedule        = "schedule"          // preferred date/slot
	RoleEmail           = "email"             // confirmation address
*/
package models
