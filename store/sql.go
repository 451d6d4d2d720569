// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/danielhkuo/sgformer/db"
	"github.com/danielhkuo/sgformer/models"
)

// SQL persists state through database/sql. The same queries serve SQLite
// and PostgreSQL; placeholders are rebound per dialect.
type SQL struct {
	conn    *sql.DB
	dialect db.Dialect
}

func NewSQL(conn *sql.DB, dialect db.Dialect) *SQL {
	return &SQL{conn: conn, dialect: dialect}
}

func (s *SQL) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *SQL) q(query string) string {
	return db.Rebind(s.dialect, query)
}

// timeLayout is fixed width so text order matches time order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", v, err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Forms

const formColumns = `id, title, description, questions, created_by, created_at, updated_at`

func scanForm(row rowScanner) (models.Form, error) {
	var (
		f                    models.Form
		questions            string
		createdAt, updatedAt string
	)
	if err := row.Scan(&f.ID, &f.Title, &f.Description, &questions, &f.CreatedBy, &createdAt, &updatedAt); err != nil {
		return models.Form{}, err
	}
	if err := json.Unmarshal([]byte(questions), &f.Questions); err != nil {
		return models.Form{}, fmt.Errorf("decode questions for form %s: %w", f.ID, err)
	}
	var err error
	if f.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Form{}, err
	}
	if f.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Form{}, err
	}
	return f, nil
}

func (s *SQL) ListForms(ctx context.Context) ([]models.Form, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+formColumns+` FROM form ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	forms := []models.Form{}
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("list forms: %w", err)
		}
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	return forms, nil
}

func (s *SQL) GetForm(ctx context.Context, id string) (models.Form, error) {
	row := s.conn.QueryRowContext(ctx, s.q(`SELECT `+formColumns+` FROM form WHERE id = ?`), id)
	f, err := scanForm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Form{}, ErrNotFound
	}
	if err != nil {
		return models.Form{}, fmt.Errorf("get form: %w", err)
	}
	return f, nil
}

func (s *SQL) CreateForm(ctx context.Context, form models.Form) error {
	questions, err := json.Marshal(form.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	_, err = s.conn.ExecContext(ctx, s.q(`
		INSERT INTO form (id, title, description, questions, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), form.ID, form.Title, form.Description, string(questions), form.CreatedBy,
		formatTime(form.CreatedAt), formatTime(form.UpdatedAt))
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create form: %w", err)
	}
	return nil
}

func (s *SQL) UpdateForm(ctx context.Context, form models.Form) error {
	questions, err := json.Marshal(form.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	res, err := s.conn.ExecContext(ctx, s.q(`
		UPDATE form
		SET title = ?, description = ?, questions = ?, created_by = ?, updated_at = ?
		WHERE id = ?
	`), form.Title, form.Description, string(questions), form.CreatedBy, formatTime(form.UpdatedAt), form.ID)
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}
	return requireAffected(res)
}

func (s *SQL) DeleteForm(ctx context.Context, id string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete form: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.q(`DELETE FROM form WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, s.q(`
		DELETE FROM checkin
		WHERE form_id = ? OR submission_id IN (SELECT id FROM submission WHERE form_id = ?)
	`), id, id)
	if err != nil {
		return fmt.Errorf("delete form checkins: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM submission WHERE form_id = ?`), id); err != nil {
		return fmt.Errorf("delete form submissions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete form: %w", err)
	}
	return nil
}

// Submissions

const submissionColumns = `id, form_id, submitted_by, answers, submitted_at`

func scanSubmission(row rowScanner) (models.Submission, error) {
	var (
		sub         models.Submission
		answers     string
		submittedAt string
	)
	if err := row.Scan(&sub.ID, &sub.FormID, &sub.SubmittedBy, &answers, &submittedAt); err != nil {
		return models.Submission{}, err
	}
	if err := json.Unmarshal([]byte(answers), &sub.Answers); err != nil {
		return models.Submission{}, fmt.Errorf("decode answers for submission %s: %w", sub.ID, err)
	}
	var err error
	if sub.SubmittedAt, err = parseTime(submittedAt); err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

func (s *SQL) ListSubmissions(ctx context.Context, formID string) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submission`
	var args []any
	if formID != "" {
		query += ` WHERE form_id = ?`
		args = append(args, formID)
	}
	query += ` ORDER BY submitted_at, id`

	rows, err := s.conn.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := []models.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

func (s *SQL) GetSubmission(ctx context.Context, id string) (models.Submission, error) {
	row := s.conn.QueryRowContext(ctx, s.q(`SELECT `+submissionColumns+` FROM submission WHERE id = ?`), id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, ErrNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

func (s *SQL) CreateSubmission(ctx context.Context, sub models.Submission) error {
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.conn.ExecContext(ctx, s.q(`
		INSERT INTO submission (id, form_id, submitted_by, answers, submitted_at)
		VALUES (?, ?, ?, ?, ?)
	`), sub.ID, sub.FormID, sub.SubmittedBy, string(answers), formatTime(sub.SubmittedAt))
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

func (s *SQL) DeleteSubmission(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, s.q(`DELETE FROM submission WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return requireAffected(res)
}

// Check-ins

const checkinColumns = `id, submission_id, form_id, participant_name, checkin_time, notes, created_at, updated_at`

func scanCheckin(row rowScanner) (models.Checkin, error) {
	var (
		c                      models.Checkin
		checkinTime, createdAt string
		updatedAt              sql.NullString
	)
	if err := row.Scan(&c.ID, &c.SubmissionID, &c.FormID, &c.ParticipantName,
		&checkinTime, &c.Notes, &createdAt, &updatedAt); err != nil {
		return models.Checkin{}, err
	}
	var err error
	if c.CheckinTime, err = parseTime(checkinTime); err != nil {
		return models.Checkin{}, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Checkin{}, err
	}
	if updatedAt.Valid {
		t, err := parseTime(updatedAt.String)
		if err != nil {
			return models.Checkin{}, err
		}
		c.UpdatedAt = &t
	}
	return c, nil
}

func (s *SQL) ListCheckins(ctx context.Context, formID string) ([]models.Checkin, error) {
	query := `SELECT ` + checkinColumns + ` FROM checkin`
	var args []any
	if formID != "" {
		query += ` WHERE form_id = ?`
		args = append(args, formID)
	}
	query += ` ORDER BY checkin_time, id`

	rows, err := s.conn.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	checkins := []models.Checkin{}
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, fmt.Errorf("list checkins: %w", err)
		}
		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	return checkins, nil
}

func (s *SQL) getCheckinWhere(ctx context.Context, column, value string) (models.Checkin, error) {
	row := s.conn.QueryRowContext(ctx, s.q(`SELECT `+checkinColumns+` FROM checkin WHERE `+column+` = ?`), value)
	c, err := scanCheckin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Checkin{}, ErrNotFound
	}
	if err != nil {
		return models.Checkin{}, fmt.Errorf("get checkin: %w", err)
	}
	return c, nil
}

func (s *SQL) GetCheckin(ctx context.Context, id string) (models.Checkin, error) {
	return s.getCheckinWhere(ctx, "id", id)
}

func (s *SQL) GetCheckinBySubmission(ctx context.Context, submissionID string) (models.Checkin, error) {
	return s.getCheckinWhere(ctx, "submission_id", submissionID)
}

func (s *SQL) InsertCheckinIfAbsent(ctx context.Context, c models.Checkin) (models.Checkin, error) {
	var updatedAt any
	if c.UpdatedAt != nil {
		updatedAt = formatTime(*c.UpdatedAt)
	}
	_, err := s.conn.ExecContext(ctx, s.q(`
		INSERT INTO checkin (id, submission_id, form_id, participant_name, checkin_time, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), c.ID, c.SubmissionID, c.FormID, c.ParticipantName,
		formatTime(c.CheckinTime), c.Notes, formatTime(c.CreatedAt), updatedAt)
	if isUniqueViolation(err) {
		existing, getErr := s.GetCheckinBySubmission(ctx, c.SubmissionID)
		if getErr != nil {
			return models.Checkin{}, fmt.Errorf("load existing checkin: %w", getErr)
		}
		return existing, ErrAlreadyExists
	}
	if err != nil {
		return models.Checkin{}, fmt.Errorf("insert checkin: %w", err)
	}
	return c, nil
}

func (s *SQL) UpdateCheckin(ctx context.Context, c models.Checkin) error {
	var updatedAt any
	if c.UpdatedAt != nil {
		updatedAt = formatTime(*c.UpdatedAt)
	}
	res, err := s.conn.ExecContext(ctx, s.q(`
		UPDATE checkin
		SET participant_name = ?, checkin_time = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`), c.ParticipantName, formatTime(c.CheckinTime), c.Notes, updatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update checkin: %w", err)
	}
	return requireAffected(res)
}

func (s *SQL) DeleteCheckin(ctx context.Context, id string) (models.Checkin, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.Checkin{}, fmt.Errorf("begin delete checkin: %w", err)
	}
	defer tx.Rollback()

	c, err := scanCheckin(tx.QueryRowContext(ctx, s.q(`SELECT `+checkinColumns+` FROM checkin WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Checkin{}, ErrNotFound
	}
	if err != nil {
		return models.Checkin{}, fmt.Errorf("delete checkin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM checkin WHERE id = ?`), id); err != nil {
		return models.Checkin{}, fmt.Errorf("delete checkin: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Checkin{}, fmt.Errorf("commit delete checkin: %w", err)
	}
	return c, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ Store = (*SQL)(nil)
