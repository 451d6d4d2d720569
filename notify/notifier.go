// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/danielhkuo/sgformer/models"
)

const stampLayout = "2006-01-02 15:04"

type answerRow struct {
	Question string
	Answer   string
}

type bodyData struct {
	Form        models.Form
	Submission  models.Submission
	SubmittedAt string
	Answers     []answerRow
}

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: sans-serif; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background-color: #f9fafb; }
    .footer { padding: 20px; text-align: center; color: #6b7280; font-size: 14px; }
    table { width: 100%; border-collapse: collapse; margin: 20px 0; }
    th { background-color: #f3f4f6; padding: 12px; text-align: left; }
    td { padding: 8px; border-bottom: 1px solid #eee; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>Registration received</h1></div>
    <div class="content">
      <p>Thank you for your registration. We received the following.</p>
      <h3>Form</h3>
      <p><strong>Title:</strong> {{.Form.Title}}</p>
      <p><strong>Receipt number:</strong> {{.Submission.ID}}</p>
      <p><strong>Received at:</strong> {{.SubmittedAt}}</p>
      <h3>Answers</h3>
      <table>
        <thead><tr><th style="width: 40%;">Question</th><th style="width: 60%;">Answer</th></tr></thead>
        <tbody>
        {{- range .Answers}}
          <tr><td><strong>{{.Question}}</strong></td><td>{{.Answer}}</td></tr>
        {{- end}}
        </tbody>
      </table>
      <p>Please bring your receipt. It carries the code we scan at check-in.</p>
    </div>
    <div class="footer"><p>This message was sent automatically.</p></div>
  </div>
</body>
</html>
`))

var adminHTML = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: sans-serif; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #DC2626; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background-color: #f9fafb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>New registration</h1></div>
    <div class="content">
      <p>A new submission arrived.</p>
      <p><strong>Form:</strong> {{.Form.Title}}</p>
      <p><strong>Receipt number:</strong> {{.Submission.ID}}</p>
      <p><strong>Submitted by:</strong> {{.Submission.SubmittedBy}}</p>
      <p><strong>Received at:</strong> {{.SubmittedAt}}</p>
    </div>
  </div>
</body>
</html>
`))

// Notifier sends the mails that follow a submission
type Notifier struct {
	mailer     Mailer
	adminEmail string
	loc        *time.Location
}

func NewNotifier(m Mailer, adminEmail string, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.Local
	}
	return &Notifier{mailer: m, adminEmail: adminEmail, loc: loc}
}

// Send delivers a raw message
func (n *Notifier) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	return n.mailer.Send(ctx, msg)
}

// SubmissionReceived sends a confirmation to the submitter and a notice
// to the administrator. Both are attempted; the returned error joins the
// failures.
func (n *Notifier) SubmissionReceived(ctx context.Context, form models.Form, sub models.Submission) error {
	data := n.bodyData(form, sub)
	var errs []error

	if to := Recipient(form, sub); to != "" {
		msg, err := n.confirmation(to, data)
		if err == nil {
			err = n.mailer.Send(ctx, msg)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("confirmation to %s: %w", to, err))
		}
	} else {
		slog.Debug("no recipient for confirmation", "submission_id", sub.ID)
	}

	if n.adminEmail != "" {
		msg, err := n.adminNotice(data)
		if err == nil {
			err = n.mailer.Send(ctx, msg)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("admin notice: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Recipient picks the confirmation address: the first valid answer to an
// email question, then the submitter when it is an address.
func Recipient(form models.Form, sub models.Submission) string {
	for _, q := range form.QuestionsWithRole(models.RoleEmail) {
		if a, ok := sub.Answers[q.ID]; ok && !a.Multi {
			if addr, ok := parseAddress(a.Value); ok {
				return addr
			}
		}
	}
	if addr, ok := parseAddress(sub.SubmittedBy); ok {
		return addr
	}
	return ""
}

func parseAddress(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", false
	}
	return addr.Address, true
}

func (n *Notifier) bodyData(form models.Form, sub models.Submission) bodyData {
	d := bodyData{
		Form:        form,
		Submission:  sub,
		SubmittedAt: sub.SubmittedAt.In(n.loc).Format(stampLayout),
	}
	for _, q := range form.Questions {
		a, ok := sub.Answers[q.ID]
		if !ok || a.IsEmpty() {
			continue
		}
		d.Answers = append(d.Answers, answerRow{Question: q.Text, Answer: a.String()})
	}
	return d
}

func (n *Notifier) confirmation(to string, d bodyData) (Message, error) {
	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, d); err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}
	text := fmt.Sprintf("Registration received\n\nForm: %s\nReceipt number: %s\nReceived at: %s\n",
		d.Form.Title, d.Submission.ID, d.SubmittedAt)
	return Message{
		To:      to,
		Subject: "[Received] " + d.Form.Title,
		HTML:    html.String(),
		Text:    text,
	}, nil
}

func (n *Notifier) adminNotice(d bodyData) (Message, error) {
	var html bytes.Buffer
	if err := adminHTML.Execute(&html, d); err != nil {
		return Message{}, fmt.Errorf("render admin notice: %w", err)
	}
	text := fmt.Sprintf("New registration\n\nForm: %s\nReceipt number: %s\nSubmitted by: %s\nReceived at: %s\n",
		d.Form.Title, d.Submission.ID, d.Submission.SubmittedBy, d.SubmittedAt)
	return Message{
		To:      n.adminEmail,
		Subject: "[New registration] " + d.Form.Title,
		HTML:    html.String(),
		Text:    text,
	}, nil
}
