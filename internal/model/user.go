package model

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a login account. Non-admin users must be linked to a recruiter;
// the link drives all scoping of recruiter-owned data.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	PasswordSalt string    `json:"-" gorm:"type:varchar(64);not null"`
	Role         string    `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	RecruiterID  *uint     `json:"recruiter_id,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanActOnRecruiter is the single scope predicate applied before every read
// or write of recruiter-owned data: admins act anywhere, everyone else only
// on their own recruiter.
func (u *User) CanActOnRecruiter(recruiterID *uint) bool {
	if u.IsAdmin() {
		return true
	}
	if recruiterID == nil || u.RecruiterID == nil {
		return false
	}
	return *u.RecruiterID == *recruiterID
}
