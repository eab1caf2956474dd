package handler

import (
	"net/http"
	"time"

	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/database"
	"recruiting-crm/pkg/logger"
	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListRecruiters returns recruiters ordered by name. Non-admins only see
// their own linked recruiter, or an empty list when they have none.
func ListRecruiters(c echo.Context) error {
	prometheus.RecordOperation("recruiter", "list")
	user := currentUser(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	if !user.IsAdmin() {
		if user.RecruiterID == nil {
			return c.JSON(http.StatusOK, []model.Recruiter{})
		}
		var recruiter model.Recruiter
		if result := database.GetDB().First(&recruiter, *user.RecruiterID); result.Error != nil {
			return c.JSON(http.StatusOK, []model.Recruiter{})
		}
		return c.JSON(http.StatusOK, []model.Recruiter{recruiter})
	}

	var recruiters []model.Recruiter
	if result := database.GetDB().Order("name").Find(&recruiters); result.Error != nil {
		logger.FromContext(c).Error("Failed to list recruiters", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list recruiters"})
	}
	return c.JSON(http.StatusOK, recruiters)
}

// CreateRecruiter creates a recruiter with a globally unique name. Admin only.
func CreateRecruiter(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("recruiter", "create")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse recruiter request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	db := database.GetDB()
	var count int64
	db.Model(&model.Recruiter{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Recruiter name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recruiter name already exists"})
	}

	recruiter := model.Recruiter{Name: req.Name}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&recruiter); result.Error != nil {
		log.Error("Failed to create recruiter", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create recruiter"})
	}

	log.Info("Recruiter created", zap.Uint("recruiter_id", recruiter.ID), zap.String("name", recruiter.Name))
	return c.JSON(http.StatusOK, recruiter)
}

// UpdateRecruiter renames a recruiter. Admin only.
func UpdateRecruiter(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("recruiter", "update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recruiter ID"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse recruiter request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	db := database.GetDB()
	var recruiter model.Recruiter
	if result := db.First(&recruiter, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "recruiter not found"})
	}

	var count int64
	db.Model(&model.Recruiter{}).Where("name = ? AND id != ?", req.Name, id).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recruiter name already exists"})
	}

	recruiter.Name = req.Name
	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := db.Save(&recruiter); result.Error != nil {
		log.Error("Failed to update recruiter", zap.Uint("recruiter_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update recruiter"})
	}

	return c.JSON(http.StatusOK, recruiter)
}

// DeleteRecruiter removes a recruiter. Admin only.
func DeleteRecruiter(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("recruiter", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recruiter ID"})
	}

	db := database.GetDB()
	var recruiter model.Recruiter
	if result := db.First(&recruiter, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "recruiter not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := db.Delete(&recruiter); result.Error != nil {
		log.Error("Failed to delete recruiter", zap.Uint("recruiter_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete recruiter"})
	}

	log.Info("Recruiter deleted", zap.Uint("recruiter_id", id))
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
