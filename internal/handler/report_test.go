package handler

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		year, month int
		wantStart   time.Time
		wantEnd     time.Time
	}{
		{2024, 2, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{2024, 12, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{2023, 1, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		start, end := monthRange(tt.year, tt.month)
		if !start.Equal(tt.wantStart) {
			t.Fatalf("monthRange(%d, %d) start = %v, want %v", tt.year, tt.month, start, tt.wantStart)
		}
		if !end.Equal(tt.wantEnd) {
			t.Fatalf("monthRange(%d, %d) end = %v, want %v", tt.year, tt.month, end, tt.wantEnd)
		}
	}
}

func TestMonthRangeIsHalfOpen(t *testing.T) {
	start, end := monthRange(2024, 2)
	lastDay := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if lastDay.Before(start) || !lastDay.Before(end) {
		t.Fatalf("2024-02-29 should fall inside [%v, %v)", start, end)
	}
	if end.Sub(start) != 29*24*time.Hour {
		t.Fatalf("leap February should span 29 days, got %v", end.Sub(start))
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{800, 800},
		{799.999, 800},
		{123.456, 123.46},
		{-123.456, -123.46},
	}

	for _, tt := range tests {
		if got := roundCents(tt.in); got != tt.want {
			t.Fatalf("roundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
