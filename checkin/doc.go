// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package checkin records participant attendance from scanned receipts.

# Scan Protocol

A receipt carries a QR code whose text is a JSON object with at least a
submissionId. Scanning runs:

	Decode → ResolveSubmission → CheckIfAlreadyCheckedIn → ParticipantName → RecordCheckin

Each step aborts the scan with a typed error:

  - ErrInvalidPayload: the text is not a JSON object with a submissionId
  - ErrSubmissionNotFound: no submission has that id (wraps store.ErrNotFound)
  - ErrFormMismatch: the submission belongs to another form than expected
  - *AlreadyCheckedInError: the submission has a check-in; Existing holds it

# Uniqueness

A submission has at most one check-in. The duplicate check before the
insert handles the common case. Concurrent scans that pass the check
together are settled by store.CheckinStore.InsertCheckinIfAbsent, so the
losers also get *AlreadyCheckedInError.

# Participant Names

DeriveParticipantName reads the questions a form declares with the
contact_name and participant_name roles. Forms without declared roles
use the question ids of the bundled seed forms.
*/
package checkin
