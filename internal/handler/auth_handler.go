package handler

import (
	"net/http"
	"time"

	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/database"
	"recruiting-crm/pkg/jwtutil"
	"recruiting-crm/pkg/logger"
	"recruiting-crm/pkg/password"
	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Login verifies credentials and issues a session token.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("username = ?", req.Username).First(&user)
	if result.Error != nil || !password.Verify(req.Password, user.PasswordSalt, user.PasswordHash) {
		log.Warn("Login failed", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user.
func Me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}
