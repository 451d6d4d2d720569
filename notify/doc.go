// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify sends submission e-mails.

After a submission the Notifier sends a confirmation to the submitter
(the first address answered to an email question, else the submitting
account) and a notice to NOTIFY_ADMIN_EMAIL. Callers log the returned
error and carry on; a mail failure never fails the submission.

Delivery goes through a Mailer. SMTPMailer uses the SMTP_* settings and
bounds each send with SMTP_TIMEOUT; transport failures wrap ErrTransport.
Without SMTP_HOST, LogMailer only logs the message.
*/
package notify
