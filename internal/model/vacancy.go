package model

import "time"

// Vacancy is an open position at a client. The fee amount is the default
// payment amount when a payment is recorded without an explicit one.
type Vacancy struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ClientID  uint      `json:"client_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(200);not null"`
	FeeAmount float64   `json:"fee_amount" gorm:"type:numeric(12,2);default:0"`
	City      *string   `json:"city,omitempty" gorm:"type:varchar(120)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
