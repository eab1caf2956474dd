package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 1)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-01"` {
		t.Fatalf("unexpected encoding: %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: got %v want %v", back, d)
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("expected zero date, got %v", d)
	}
}

func TestDateUnmarshalEmptyString(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`""`), &d); err == nil {
		t.Fatal("expected error for empty-string date")
	}
}

func TestDateEmptyStringRejectedInStruct(t *testing.T) {
	var req struct {
		Status        string `json:"status"`
		RejectionDate *Date  `json:"rejection_date"`
	}
	// An empty string must fail decoding outright; it must never produce a
	// non-nil zero date that would satisfy the presence check while storing
	// NULL in the column.
	err := json.Unmarshal([]byte(`{"status":"rejected","rejection_date":""}`), &req)
	if err == nil {
		t.Fatal("expected empty-string rejection_date to fail decoding")
	}
}

func TestDateUnmarshalInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"01.03.2024"`), &d); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestDateOptionalFieldAbsent(t *testing.T) {
	var row struct {
		StartDate *Date `json:"start_date"`
	}
	if err := json.Unmarshal([]byte(`{}`), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if row.StartDate != nil {
		t.Fatalf("expected nil for absent field, got %v", row.StartDate)
	}
}
