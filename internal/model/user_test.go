package model

import "testing"

func uintPtr(v uint) *uint { return &v }

func TestCanActOnRecruiter(t *testing.T) {
	tests := []struct {
		name        string
		user        User
		recruiterID *uint
		want        bool
	}{
		{name: "admin on any recruiter", user: User{Role: RoleAdmin}, recruiterID: uintPtr(3), want: true},
		{name: "admin without link on any recruiter", user: User{Role: RoleAdmin, RecruiterID: nil}, recruiterID: uintPtr(9), want: true},
		{name: "user on own recruiter", user: User{Role: RoleUser, RecruiterID: uintPtr(7)}, recruiterID: uintPtr(7), want: true},
		{name: "user on other recruiter", user: User{Role: RoleUser, RecruiterID: uintPtr(7)}, recruiterID: uintPtr(3), want: false},
		{name: "user without link", user: User{Role: RoleUser}, recruiterID: uintPtr(7), want: false},
		{name: "user on nil target", user: User{Role: RoleUser, RecruiterID: uintPtr(7)}, recruiterID: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanActOnRecruiter(tt.recruiterID); got != tt.want {
				t.Fatalf("CanActOnRecruiter() = %v, want %v", got, tt.want)
			}
		})
	}
}
