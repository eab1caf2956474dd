package handler

import (
	"testing"
	"time"

	"recruiting-crm/internal/model"
)

func patchDatePtr(year int, month time.Month, day int) *model.Date {
	d := model.NewDate(year, month, day)
	return &d
}

func TestApplyApplicationPatchClearsRejectionDate(t *testing.T) {
	app := model.Application{
		Status:        model.StatusRejected,
		RejectionDate: patchDatePtr(2024, time.May, 2),
	}

	body := []byte(`{"status":"in_process","rejection_date":null}`)
	if err := applyApplicationPatch(&app, body); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if app.Status != model.StatusInProcess {
		t.Fatalf("status = %q, want in_process", app.Status)
	}
	if app.RejectionDate != nil {
		t.Fatalf("rejection_date should be cleared, got %v", app.RejectionDate)
	}
}

func TestApplyApplicationPatchLeavesAbsentFields(t *testing.T) {
	contacted := patchDatePtr(2024, time.April, 1)
	note := "replaces an earlier placement"
	app := model.Application{
		Status:          model.StatusNew,
		DateContacted:   contacted,
		ReplacementNote: &note,
	}

	if err := applyApplicationPatch(&app, []byte(`{"is_replacement":true}`)); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !app.IsReplacement {
		t.Fatal("is_replacement should be set")
	}
	if app.DateContacted == nil || !app.DateContacted.Equal(contacted.Time) {
		t.Fatalf("date_contacted should be untouched, got %v", app.DateContacted)
	}
	if app.ReplacementNote == nil || *app.ReplacementNote != note {
		t.Fatalf("replacement_note should be untouched, got %v", app.ReplacementNote)
	}
}

func TestApplyApplicationPatchClearsReplacementLink(t *testing.T) {
	ref := uint(12)
	note := "stale"
	app := model.Application{
		Status:          model.StatusNew,
		IsReplacement:   true,
		ReplacementOfID: &ref,
		ReplacementNote: &note,
	}

	body := []byte(`{"is_replacement":false,"replacement_of_id":null,"replacement_note":null}`)
	if err := applyApplicationPatch(&app, body); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if app.IsReplacement || app.ReplacementOfID != nil || app.ReplacementNote != nil {
		t.Fatalf("replacement fields should be cleared: %+v", app)
	}
}

func TestApplyApplicationPatchRejectsEmptyDate(t *testing.T) {
	app := model.Application{Status: model.StatusNew}
	if err := applyApplicationPatch(&app, []byte(`{"rejection_date":""}`)); err == nil {
		t.Fatal("expected empty-string date to be rejected")
	}
}

func TestApplyApplicationPatchRejectsNullStatus(t *testing.T) {
	app := model.Application{Status: model.StatusNew}
	if err := applyApplicationPatch(&app, []byte(`{"status":null}`)); err == nil {
		t.Fatal("expected null status to be rejected")
	}
}
