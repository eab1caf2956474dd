package model

import (
	"fmt"
	"time"
)

// Application statuses. There is no enforced transition graph: any status may
// follow any other, only the date requirements below are validated.
const (
	StatusNew       = "new"
	StatusInProcess = "in_process"
	StatusRejected  = "rejected"
	StatusHired     = "hired"
)

var validStatuses = map[string]bool{
	StatusNew:       true,
	StatusInProcess: true,
	StatusRejected:  true,
	StatusHired:     true,
}

// Application is the pipeline record linking a candidate to a vacancy via a
// recruiter. Paid, PaidDate and PaymentAmount are a derived cache over the
// payment ledger; the payment rows stay authoritative and the cache is only
// written by the recompute path.
type Application struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CandidateID     uint      `json:"candidate_id" gorm:"index;not null"`
	VacancyID       uint      `json:"vacancy_id" gorm:"index;not null"`
	RecruiterID     uint      `json:"recruiter_id" gorm:"index;not null"`
	DateContacted   *Date     `json:"date_contacted,omitempty" gorm:"type:date"`
	Status          string    `json:"status" gorm:"type:varchar(20);not null;default:'new'"`
	RejectionDate   *Date     `json:"rejection_date,omitempty" gorm:"type:date"`
	StartDate       *Date     `json:"start_date,omitempty" gorm:"type:date"`
	IsReplacement   bool      `json:"is_replacement" gorm:"default:false"`
	ReplacementOfID *uint     `json:"replacement_of_id,omitempty"`
	ReplacementNote *string   `json:"replacement_note,omitempty" gorm:"type:text"`
	Paid            bool      `json:"paid" gorm:"default:false"`
	PaidDate        *Date     `json:"paid_date,omitempty" gorm:"type:date"`
	PaymentAmount   float64   `json:"payment_amount" gorm:"type:numeric(12,2);default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ValidateStatusDates checks the field-presence invariant: a rejected
// application needs a rejection date and a hired one a start date. It runs
// on create and again after every partial update, against the merged fields.
func ValidateStatusDates(status string, rejectionDate, startDate *Date) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	if status == StatusRejected && (rejectionDate == nil || rejectionDate.IsZero()) {
		return fmt.Errorf("for status 'rejected' rejection_date is required")
	}
	if status == StatusHired && (startDate == nil || startDate.IsZero()) {
		return fmt.Errorf("for status 'hired' start_date is required")
	}
	return nil
}
