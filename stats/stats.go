// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/store"
)

// Response buckets shown per form on the dashboard
const (
	ResponsesNone     = "none"
	ResponsesFew      = "few"
	ResponsesModerate = "moderate"
	ResponsesMany     = "many"
)

// Filter narrows the data a report covers. Days > 0 keeps records from
// the last Days days before Now.
type Filter struct {
	FormID   string
	Days     int
	Now      time.Time
	Location *time.Location
}

type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type FormSummary struct {
	FormID      string  `json:"formId"`
	Title       string  `json:"title"`
	Submissions int     `json:"submissions"`
	Checkins    int     `json:"checkins"`
	Attendance  float64 `json:"attendance"`
	Responses   string  `json:"responses"`
}

type QuestionTrend struct {
	FormID     string  `json:"formId"`
	QuestionID string  `json:"questionId"`
	Text       string  `json:"text"`
	Answers    []Count `json:"answers"`
}

type Interest struct {
	High         int     `json:"high"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
	Distribution []Count `json:"distribution"`
}

type Report struct {
	TotalForms       int             `json:"totalForms"`
	TotalSubmissions int             `json:"totalSubmissions"`
	TotalCheckins    int             `json:"totalCheckins"`
	AttendanceRate   float64         `json:"attendanceRate"`
	Forms            []FormSummary   `json:"forms"`
	TimeOfDay        []Count         `json:"timeOfDay"`
	DayOfWeek        []Count         `json:"dayOfWeek"`
	AnswerTrends     []QuestionTrend `json:"answerTrends"`
	Interest         Interest        `json:"interest"`
	PopularSchedules []Count         `json:"popularSchedules"`
}

// Percent returns part/total as a percentage rounded to one decimal, or 0
// when total is 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}

// ResponseBucket classifies a submission count for the dashboard
func ResponseBucket(n int) string {
	switch {
	case n <= 0:
		return ResponsesNone
	case n < 5:
		return ResponsesFew
	case n < 20:
		return ResponsesModerate
	}
	return ResponsesMany
}

var timeSlots = []struct {
	label    string
	from, to int
}{
	{"0:00-9:00", 0, 9},
	{"9:00-12:00", 9, 12},
	{"12:00-15:00", 12, 15},
	{"15:00-18:00", 15, 18},
	{"18:00-21:00", 18, 21},
	{"21:00-24:00", 21, 24},
}

func timeSlot(hour int) int {
	for i, s := range timeSlots {
		if hour >= s.from && hour < s.to {
			return i
		}
	}
	return 0
}

const maxDays = 100000

// Compute builds a report from already loaded records
func Compute(forms []models.Form, subs []models.Submission, checkins []models.Checkin, f Filter) Report {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	// Windows wider than maxDays reach past any stored record and are
	// treated as unbounded.
	var cutoff time.Time
	if f.Days > 0 && f.Days <= maxDays {
		cutoff = now.AddDate(0, 0, -f.Days)
	}
	inRange := func(formID string, at time.Time) bool {
		if f.FormID != "" && formID != f.FormID {
			return false
		}
		return cutoff.IsZero() || !at.Before(cutoff)
	}

	var selectedForms []models.Form
	byID := make(map[string]models.Form, len(forms))
	for _, form := range forms {
		byID[form.ID] = form
		if f.FormID == "" || form.ID == f.FormID {
			selectedForms = append(selectedForms, form)
		}
	}

	var selectedSubs []models.Submission
	for _, s := range subs {
		if inRange(s.FormID, s.SubmittedAt) {
			selectedSubs = append(selectedSubs, s)
		}
	}
	var selectedCheckins []models.Checkin
	for _, c := range checkins {
		if inRange(c.FormID, c.CheckinTime) {
			selectedCheckins = append(selectedCheckins, c)
		}
	}

	r := Report{
		TotalForms:       len(selectedForms),
		TotalSubmissions: len(selectedSubs),
		TotalCheckins:    len(selectedCheckins),
		AttendanceRate:   Percent(len(selectedCheckins), len(selectedSubs)),
		Forms:            formSummaries(selectedForms, selectedSubs, selectedCheckins),
		TimeOfDay:        timeOfDay(selectedSubs, loc),
		DayOfWeek:        dayOfWeek(selectedSubs, loc),
		AnswerTrends:     answerTrends(selectedForms, selectedSubs),
		Interest:         interest(byID, selectedSubs),
		PopularSchedules: popularSchedules(byID, selectedSubs, 3),
	}
	return r
}

func formSummaries(forms []models.Form, subs []models.Submission, checkins []models.Checkin) []FormSummary {
	subCount := map[string]int{}
	for _, s := range subs {
		subCount[s.FormID]++
	}
	checkinCount := map[string]int{}
	for _, c := range checkins {
		checkinCount[c.FormID]++
	}

	out := make([]FormSummary, 0, len(forms))
	for _, form := range forms {
		n := subCount[form.ID]
		out = append(out, FormSummary{
			FormID:      form.ID,
			Title:       form.Title,
			Submissions: n,
			Checkins:    checkinCount[form.ID],
			Attendance:  Percent(checkinCount[form.ID], n),
			Responses:   ResponseBucket(n),
		})
	}
	return out
}

func timeOfDay(subs []models.Submission, loc *time.Location) []Count {
	out := make([]Count, len(timeSlots))
	for i, s := range timeSlots {
		out[i].Label = s.label
	}
	for _, s := range subs {
		out[timeSlot(s.SubmittedAt.In(loc).Hour())].Count++
	}
	return out
}

func dayOfWeek(subs []models.Submission, loc *time.Location) []Count {
	out := make([]Count, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		out[d].Label = d.String()
	}
	for _, s := range subs {
		out[s.SubmittedAt.In(loc).Weekday()].Count++
	}
	return out
}

// tally counts labels and keeps first-seen order for ties
type tally struct {
	order  []string
	counts map[string]int
}

func newTally(labels ...string) *tally {
	t := &tally{counts: map[string]int{}}
	for _, l := range labels {
		t.add(l, 0)
	}
	return t
}

func (t *tally) add(label string, n int) {
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label] += n
}

func (t *tally) list() []Count {
	out := make([]Count, 0, len(t.order))
	for _, l := range t.order {
		out = append(out, Count{Label: l, Count: t.counts[l]})
	}
	return out
}

func (t *tally) ranked() []Count {
	out := t.list()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func answerTrends(forms []models.Form, subs []models.Submission) []QuestionTrend {
	byForm := map[string][]models.Submission{}
	for _, s := range subs {
		byForm[s.FormID] = append(byForm[s.FormID], s)
	}

	out := []QuestionTrend{}
	for _, form := range forms {
		formSubs := byForm[form.ID]
		if len(formSubs) == 0 {
			continue
		}
		for _, q := range form.Questions {
			t := newTally()
			for _, s := range formSubs {
				a, ok := s.Answers[q.ID]
				if !ok || a.IsEmpty() {
					continue
				}
				t.add(a.String(), 1)
			}
			if len(t.order) == 0 {
				continue
			}
			out = append(out, QuestionTrend{
				FormID:     form.ID,
				QuestionID: q.ID,
				Text:       q.Text,
				Answers:    t.ranked(),
			})
		}
	}
	return out
}

// interest counts answers to interest questions. The first two options of
// a question are the high end of its scale.
func interest(forms map[string]models.Form, subs []models.Submission) Interest {
	var res Interest
	dist := newTally()
	for _, s := range subs {
		form, ok := forms[s.FormID]
		if !ok {
			continue
		}
		for _, q := range form.QuestionsWithRole(models.RoleInterest) {
			for _, o := range q.Options {
				dist.add(o, 0)
			}
			a, ok := s.Answers[q.ID]
			if !ok || a.IsEmpty() {
				continue
			}
			res.Total++
			dist.add(a.String(), 1)
			high := q.Options
			if len(high) > 2 {
				high = high[:2]
			}
			for _, h := range high {
				if a.String() == h {
					res.High++
					break
				}
			}
		}
	}
	res.Percentage = Percent(res.High, res.Total)
	res.Distribution = dist.list()
	return res
}

func popularSchedules(forms map[string]models.Form, subs []models.Submission, limit int) []Count {
	t := newTally()
	for _, s := range subs {
		form, ok := forms[s.FormID]
		if !ok {
			continue
		}
		for _, q := range form.QuestionsWithRole(models.RoleSchedule) {
			a, ok := s.Answers[q.ID]
			if !ok || a.IsEmpty() {
				continue
			}
			if a.Multi {
				for _, v := range a.Values {
					t.add(v, 1)
				}
				continue
			}
			t.add(a.Value, 1)
		}
	}
	out := t.ranked()
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Service computes reports straight from a store
type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

func (s *Service) Report(ctx context.Context, f Filter) (Report, error) {
	forms, err := s.store.ListForms(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load forms: %w", err)
	}
	subs, err := s.store.ListSubmissions(ctx, f.FormID)
	if err != nil {
		return Report{}, fmt.Errorf("load submissions: %w", err)
	}
	checkins, err := s.store.ListCheckins(ctx, f.FormID)
	if err != nil {
		return Report{}, fmt.Errorf("load checkins: %w", err)
	}
	return Compute(forms, subs, checkins, f), nil
}
