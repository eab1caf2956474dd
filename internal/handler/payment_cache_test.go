package handler

import (
	"testing"
	"time"

	"recruiting-crm/internal/model"
)

func payment(amount float64, year int, month time.Month, day int) model.Payment {
	return model.Payment{Amount: amount, PaidDate: model.NewDate(year, month, day)}
}

func TestSummarizePaymentsEmpty(t *testing.T) {
	total, last := summarizePayments(nil)
	if total != 0 {
		t.Fatalf("expected zero total, got %v", total)
	}
	if last != nil {
		t.Fatalf("expected nil last paid date, got %v", last)
	}
}

func TestSummarizePaymentsSumAndMaxDate(t *testing.T) {
	payments := []model.Payment{
		payment(500, 2024, time.January, 10),
		payment(300, 2024, time.January, 20),
	}

	total, last := summarizePayments(payments)
	if total != 800 {
		t.Fatalf("expected total 800, got %v", total)
	}
	if last == nil || !last.Equal(model.NewDate(2024, time.January, 20).Time) {
		t.Fatalf("expected last paid date 2024-01-20, got %v", last)
	}

	// Removing the later payment rolls the summary back.
	total, last = summarizePayments(payments[:1])
	if total != 500 {
		t.Fatalf("expected total 500 after removal, got %v", total)
	}
	if last == nil || !last.Equal(model.NewDate(2024, time.January, 10).Time) {
		t.Fatalf("expected last paid date 2024-01-10 after removal, got %v", last)
	}
}

func TestSummarizePaymentsNegativeAmount(t *testing.T) {
	payments := []model.Payment{
		payment(1000, 2024, time.February, 1),
		payment(-1000, 2024, time.February, 15),
	}

	total, last := summarizePayments(payments)
	if total != 0 {
		t.Fatalf("expected total 0, got %v", total)
	}
	// paid flag derives from the sum, so a fully refunded application
	// reads as unpaid even though payment rows exist.
	if total > 0 {
		t.Fatal("fully refunded application must not read as paid")
	}
	if last == nil || !last.Equal(model.NewDate(2024, time.February, 15).Time) {
		t.Fatalf("expected last paid date 2024-02-15, got %v", last)
	}
}

func TestSummarizePaymentsIdempotent(t *testing.T) {
	payments := []model.Payment{
		payment(250.50, 2024, time.March, 3),
		payment(99.49, 2024, time.March, 1),
	}

	total1, last1 := summarizePayments(payments)
	total2, last2 := summarizePayments(payments)
	if total1 != total2 {
		t.Fatalf("totals differ across runs: %v vs %v", total1, total2)
	}
	if !last1.Equal(last2.Time) {
		t.Fatalf("last paid dates differ across runs: %v vs %v", last1, last2)
	}
}
