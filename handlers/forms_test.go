// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/store"
	"github.com/danielhkuo/sgformer/testutil"
)

func TestGetForms(t *testing.T) {
	env := setupEnv(t)

	w := serve(env.forms.GetForms, testutil.MakeRequest("GET", "/api/forms", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var forms []models.Form
	testutil.AssertJSON(t, w, &forms)
	if len(forms) != 4 {
		t.Errorf("Expected 3 seed forms plus the test form, got %d", len(forms))
	}

	w = serve(env.forms.GetForms, testutil.MakeRequest("GET", "/api/forms?id=form-1", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var form models.Form
	testutil.AssertJSON(t, w, &form)
	if form.ID != "form-1" || len(form.Questions) != 9 {
		t.Errorf("Unexpected form: %s with %d questions", form.ID, len(form.Questions))
	}

	w = serve(env.forms.GetForms, testutil.MakeRequest("GET", "/api/forms?id=missing", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCreateForm(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name: "valid form",
			body: models.FormRequest{
				Title: "Campus Tour",
				Questions: []models.Question{
					{ID: "t1", Text: "Name", Type: models.QuestionText, Required: true, Role: models.RoleContactName},
					{ID: "t2", Text: "Slot", Type: models.QuestionRadio, Options: []string{"AM", "PM"}},
				},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing title",
			body:           models.FormRequest{Questions: []models.Question{{ID: "t1", Text: "Name", Type: models.QuestionText}}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "radio without options",
			body: models.FormRequest{
				Title:     "Broken",
				Questions: []models.Question{{ID: "t1", Text: "Pick", Type: models.QuestionRadio}},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "not an object",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := as(testutil.MakeRequest("POST", "/api/forms", tt.body, nil), models.UserRoleAdmin)
			w := serve(env.forms.CreateForm, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var form models.Form
				testutil.AssertJSON(t, w, &form)
				if form.ID == "" || form.CreatedBy != testutil.AdminEmail {
					t.Errorf("Expected server stamped id and creator, got %+v", form)
				}
				if form.CreatedAt.IsZero() || !form.CreatedAt.Equal(form.UpdatedAt) {
					t.Errorf("Expected matching timestamps, got %v / %v", form.CreatedAt, form.UpdatedAt)
				}
			}
		})
	}
}

func TestUpdateForm(t *testing.T) {
	env := setupEnv(t)
	update := models.FormRequest{
		Title:     "Open Campus (revised)",
		Questions: []models.Question{{ID: "q1", Text: "Guardian name", Type: models.QuestionText, Required: true}},
	}

	req := as(testutil.MakeRequest("PUT", "/api/forms?id="+testFormID, update, nil), models.UserRoleAdmin)
	w := serve(env.forms.UpdateForm, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var form models.Form
	testutil.AssertJSON(t, w, &form)
	if form.Title != update.Title || len(form.Questions) != 1 {
		t.Errorf("Expected updated form, got %+v", form)
	}
	if !form.CreatedAt.Equal(testutil.SeedTime) || !form.UpdatedAt.After(form.CreatedAt) {
		t.Errorf("Expected createdAt kept and updatedAt bumped, got %v / %v", form.CreatedAt, form.UpdatedAt)
	}

	req = as(testutil.MakeRequest("PUT", "/api/forms?id=missing", update, nil), models.UserRoleAdmin)
	testutil.AssertStatus(t, serve(env.forms.UpdateForm, req), http.StatusNotFound)

	req = as(testutil.MakeRequest("PUT", "/api/forms", update, nil), models.UserRoleAdmin)
	testutil.AssertStatus(t, serve(env.forms.UpdateForm, req), http.StatusBadRequest)
}

func TestDeleteForm_Cascades(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	sub := testutil.CreateTestSubmission(t, env.store, testFormID, validAnswers())
	testutil.CreateTestCheckin(t, env.store, sub, "Sato Hanako (Sato Taro)")
	other := testutil.CreateTestSubmission(t, env.store, "form-1", nil)

	req := as(testutil.MakeRequest("DELETE", "/api/forms?id="+testFormID, nil, nil), models.UserRoleAdmin)
	w := serve(env.forms.DeleteForm, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if _, err := env.store.GetForm(ctx, testFormID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected form to be gone, got %v", err)
	}
	if _, err := env.store.GetSubmission(ctx, sub.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected submission to be gone, got %v", err)
	}
	if _, err := env.store.GetCheckinBySubmission(ctx, sub.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected checkin to be gone, got %v", err)
	}
	if _, err := env.store.GetSubmission(ctx, other.ID); err != nil {
		t.Errorf("Expected other form's submission to survive, got %v", err)
	}

	testutil.AssertStatus(t, serve(env.forms.DeleteForm, req), http.StatusNotFound)
}
