package handler

import (
	"net/http"
	"strings"
	"time"

	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/database"
	"recruiting-crm/pkg/logger"
	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListCandidates returns the candidate pool ordered by name, with an
// optional free-text filter over name, phone and email. Non-admins only see
// candidates that have at least one application owned by their recruiter.
func ListCandidates(c echo.Context) error {
	prometheus.RecordOperation("candidate", "list")
	user := currentUser(c)

	query := database.GetDB().Model(&model.Candidate{})
	if !user.IsAdmin() {
		if user.RecruiterID == nil {
			return c.JSON(http.StatusOK, []model.Candidate{})
		}
		query = query.
			Joins("JOIN applications ON applications.candidate_id = candidates.id").
			Where("applications.recruiter_id = ?", *user.RecruiterID).
			Distinct("candidates.*")
	}
	query = query.Order("candidates.full_name")

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"candidates.full_name ILIKE ? OR candidates.phone ILIKE ? OR candidates.email ILIKE ?",
			like, like, like,
		)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var candidates []model.Candidate
	if result := query.Find(&candidates); result.Error != nil {
		logger.FromContext(c).Error("Failed to list candidates", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list candidates"})
	}
	return c.JSON(http.StatusOK, candidates)
}

// CreateCandidate registers a person in the shared pool. Open to any
// authenticated principal, since any recruiter may register a new candidate.
func CreateCandidate(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("candidate", "create")

	var req struct {
		FullName string  `json:"full_name"`
		Phone    *string `json:"phone"`
		Email    *string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse candidate request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
	}

	candidate := model.Candidate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&candidate); result.Error != nil {
		log.Error("Failed to create candidate", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create candidate"})
	}

	log.Info("Candidate created",
		zap.Uint("candidate_id", candidate.ID),
		zap.String("full_name", candidate.FullName))
	return c.JSON(http.StatusOK, candidate)
}
