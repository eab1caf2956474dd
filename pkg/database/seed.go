package database

import (
	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/password"

	"gorm.io/gorm"
)

// Seed creates the default reference rows and demo accounts when absent.
// Every step is guarded by an existence check so the routine is safe to run
// on every startup.
func Seed(db *gorm.DB) error {
	var clientCount int64
	if err := db.Model(&model.Client{}).Count(&clientCount).Error; err != nil {
		return err
	}
	if clientCount == 0 {
		clients := []model.Client{{Name: "Client A"}, {Name: "Client B"}, {Name: "Client C"}}
		if err := db.Create(&clients).Error; err != nil {
			return err
		}
	}

	kim, err := ensureRecruiter(db, "Kim")
	if err != nil {
		return err
	}
	julia, err := ensureRecruiter(db, "Julia")
	if err != nil {
		return err
	}

	if err := ensureUser(db, "Kim", "12345", model.RoleAdmin, &kim.ID); err != nil {
		return err
	}
	return ensureUser(db, "Julia", "qwerty", model.RoleUser, &julia.ID)
}

func ensureRecruiter(db *gorm.DB, name string) (*model.Recruiter, error) {
	var recruiter model.Recruiter
	err := db.Where(model.Recruiter{Name: name}).FirstOrCreate(&recruiter).Error
	if err != nil {
		return nil, err
	}
	return &recruiter, nil
}

func ensureUser(db *gorm.DB, username, plaintext, role string, recruiterID *uint) error {
	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	salt, hash, err := password.Hash(plaintext)
	if err != nil {
		return err
	}
	user := model.User{
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         role,
		RecruiterID:  recruiterID,
	}
	return db.Create(&user).Error
}
