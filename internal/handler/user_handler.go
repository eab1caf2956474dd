package handler

import (
	"net/http"
	"time"

	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/database"
	"recruiting-crm/pkg/logger"
	"recruiting-crm/pkg/password"
	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListUsers returns all accounts ordered by username. Admin only.
func ListUsers(c echo.Context) error {
	prometheus.RecordOperation("user", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var users []model.User
	if result := database.GetDB().Order("username").Find(&users); result.Error != nil {
		logger.FromContext(c).Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list users"})
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser creates a login account. Admin only.
func CreateUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("user", "create")

	var req struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		Role        string `json:"role"`
		RecruiterID *uint  `json:"recruiter_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleUser {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role: " + req.Role})
	}

	db := database.GetDB()
	var count int64
	db.Model(&model.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		log.Warn("Username already exists", zap.String("username", req.Username))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already exists"})
	}
	if req.Role != model.RoleAdmin && req.RecruiterID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recruiter is required for non-admin users"})
	}
	if req.RecruiterID != nil {
		var recruiter model.Recruiter
		if result := db.First(&recruiter, *req.RecruiterID); result.Error != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "recruiter not found"})
		}
	}

	salt, hash, err := password.Hash(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	user := model.User{
		Username:     req.Username,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         req.Role,
		RecruiterID:  req.RecruiterID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	log.Info("User created", zap.String("username", user.Username), zap.String("role", user.Role))
	return c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update to an account. Admin only.
func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("user", "update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	var req struct {
		Username    *string `json:"username"`
		Password    *string `json:"password"`
		Role        *string `json:"role"`
		RecruiterID *uint   `json:"recruiter_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	db := database.GetDB()
	var user model.User
	if result := db.First(&user, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if req.Username != nil && *req.Username != "" {
		var count int64
		db.Model(&model.User{}).Where("username = ? AND id != ?", *req.Username, id).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already exists"})
		}
		user.Username = *req.Username
	}
	if req.RecruiterID != nil {
		var recruiter model.Recruiter
		if result := db.First(&recruiter, *req.RecruiterID); result.Error != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "recruiter not found"})
		}
		user.RecruiterID = req.RecruiterID
	}
	if req.Role != nil {
		if *req.Role != model.RoleAdmin && *req.Role != model.RoleUser {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role: " + *req.Role})
		}
		user.Role = *req.Role
	}
	// Re-check the role/recruiter invariant against the merged fields.
	if user.Role != model.RoleAdmin && user.RecruiterID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recruiter is required for non-admin users"})
	}
	if req.Password != nil && *req.Password != "" {
		salt, hash, err := password.Hash(*req.Password)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
		}
		user.PasswordSalt = salt
		user.PasswordHash = hash
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := db.Save(&user); result.Error != nil {
		log.Error("Failed to update user", zap.Uint("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}

	log.Info("User updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account. Admin only.
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("user", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	db := database.GetDB()
	var user model.User
	if result := db.First(&user, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := db.Delete(&user); result.Error != nil {
		log.Error("Failed to delete user", zap.Uint("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}

	log.Info("User deleted", zap.Uint("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
