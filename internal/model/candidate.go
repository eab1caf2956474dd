package model

import "time"

// Candidate is a person in the shared pool, not scoped to any recruiter.
type Candidate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"type:varchar(200);not null;index"`
	Phone     *string   `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Email     *string   `json:"email,omitempty" gorm:"type:varchar(200)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
