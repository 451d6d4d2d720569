// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package receipt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"

	"github.com/danielhkuo/sgformer/checkin"
	"github.com/danielhkuo/sgformer/models"
)

var ErrMissingData = errors.New("form and submission are required")

const (
	qrImageName = "scan-code"
	qrPixels    = 512
	dateLayout  = "2006-01-02 15:04"
)

// Receipt is a rendered PDF with its suggested file name
type Receipt struct {
	PDF      []byte
	Filename string
	Payload  checkin.ScanPayload
}

// DataURI returns the PDF as a base64 data URI
func (r Receipt) DataURI() string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(r.PDF)
}

// Generator renders receipts. Answers are printed on the page and only
// embedded in the QR code when IncludeAnswers is set.
type Generator struct {
	IncludeAnswers bool
	Location       *time.Location
	now            func() time.Time
}

func NewGenerator(includeAnswers bool, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.Local
	}
	return &Generator{IncludeAnswers: includeAnswers, Location: loc, now: time.Now}
}

// Payload builds the content of the scan code for sub
func (g *Generator) Payload(form models.Form, sub models.Submission) checkin.ScanPayload {
	p := checkin.ScanPayload{
		SubmissionID: sub.ID,
		FormID:       form.ID,
		SubmittedAt:  sub.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if g.IncludeAnswers && len(sub.Answers) > 0 {
		p.PersonalInfo = make(map[string]models.Answer, len(sub.Answers))
		for k, v := range sub.Answers {
			p.PersonalInfo[k] = v
		}
	}
	return p
}

// Filename returns receipt_<submissionId>_<YYYY-MM-DD>.pdf for today
func (g *Generator) Filename(sub models.Submission) string {
	return fmt.Sprintf("receipt_%s_%s.pdf", sub.ID, g.now().In(g.Location).Format(time.DateOnly))
}

// Generate renders the receipt PDF for sub
func (g *Generator) Generate(form *models.Form, sub *models.Submission) (Receipt, error) {
	if form == nil || sub == nil || sub.ID == "" {
		return Receipt{}, ErrMissingData
	}

	payload := g.Payload(*form, *sub)
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Receipt{}, fmt.Errorf("encode scan payload: %w", err)
	}
	png, err := qrcode.Encode(string(encoded), qrcode.Medium, qrPixels)
	if err != nil {
		return Receipt{}, fmt.Errorf("render scan code: %w", err)
	}

	pdf, err := g.render(*form, *sub, png)
	if err != nil {
		return Receipt{}, err
	}

	r := Receipt{PDF: pdf, Filename: g.Filename(*sub), Payload: payload}
	slog.Info("receipt generated",
		"submission_id", sub.ID,
		"form_id", form.ID,
		"size", humanize.Bytes(uint64(len(pdf))),
		"with_answers", g.IncludeAnswers,
	)
	return r, nil
}

func (g *Generator) render(form models.Form, sub models.Submission, qrPNG []byte) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle("Receipt "+sub.ID, true)
	doc.SetCreationDate(g.now())
	doc.SetAutoPageBreak(true, 20)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 9)
		doc.CellFormat(0, 10, "Please keep this receipt and bring it on the day.", "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	doc.RegisterImageOptionsReader(qrImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	doc.ImageOptions(qrImageName, 150, 15, 45, 45, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.SetFont("Helvetica", "", 8)
	doc.Text(155, 64, "Show at check-in")

	doc.SetXY(15, 20)
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(130, 10, tr("Registration receipt"), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	doc.SetX(15)
	doc.CellFormat(130, 8, tr("Receipt number: "+sub.ID), "", 1, "L", false, 0, "")
	doc.SetX(15)
	doc.CellFormat(130, 8, tr("Received at: "+sub.SubmittedAt.In(g.Location).Format(dateLayout)), "", 1, "L", false, 0, "")

	doc.SetY(72)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Form"), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 6, tr("Title: "+form.Title), "", "L", false)
	if form.Description != "" {
		doc.MultiCell(0, 6, tr("Description: "+form.Description), "", "L", false)
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Answers"), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, q := range form.Questions {
		a, ok := sub.Answers[q.ID]
		if !ok || a.IsEmpty() {
			continue
		}
		doc.MultiCell(0, 6, tr(q.Text+": "+a.String()), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
