package model

import (
	"testing"
	"time"
)

func datePtr(year int, month time.Month, day int) *Date {
	d := NewDate(year, month, day)
	return &d
}

func TestValidateStatusDates(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		rejectionDate *Date
		startDate     *Date
		wantErr       bool
	}{
		{name: "new without dates", status: StatusNew},
		{name: "in_process without dates", status: StatusInProcess},
		{name: "rejected with date", status: StatusRejected, rejectionDate: datePtr(2024, time.March, 5)},
		{name: "rejected without date", status: StatusRejected, wantErr: true},
		{name: "hired with date", status: StatusHired, startDate: datePtr(2024, time.April, 1)},
		{name: "hired without date", status: StatusHired, wantErr: true},
		{name: "hired with only rejection date", status: StatusHired, rejectionDate: datePtr(2024, time.March, 5), wantErr: true},
		{name: "rejected with zero-value date", status: StatusRejected, rejectionDate: &Date{}, wantErr: true},
		{name: "hired with zero-value date", status: StatusHired, startDate: &Date{}, wantErr: true},
		{name: "unknown status", status: "ghosted", wantErr: true},
		{name: "empty status", status: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatusDates(tt.status, tt.rejectionDate, tt.startDate)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for status %q, got nil", tt.status)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error for status %q: %v", tt.status, err)
			}
		})
	}
}
