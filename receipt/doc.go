// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package receipt renders the PDF receipt a submitter brings to check-in.

The page shows the receipt number, form and answers, plus a QR code whose
text is a checkin.ScanPayload in JSON:

	{"submissionId":"sub-...","formId":"form-1","submittedAt":"2025-05-02T10:30:00Z"}

Answers go into the code (as personalInfo) only when the generator is
built with includeAnswers, set from RECEIPT_INCLUDE_ANSWERS. The code is
not encrypted, so the default keeps personal data out of it.

Files are named receipt_<submissionId>_<YYYY-MM-DD>.pdf.
*/
package receipt
