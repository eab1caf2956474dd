package model

import "time"

// Payment is one recorded receipt against an application's fee. Negative
// amounts are permitted by convention (corrections) and flow into the cached
// sum like any other row.
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ApplicationID uint      `json:"application_id" gorm:"index;not null"`
	PaidDate      Date      `json:"paid_date" gorm:"type:date;not null"`
	Amount        float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	Note          *string   `json:"note,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}
