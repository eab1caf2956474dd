package handler

import (
	"net/http"
	"strconv"
	"time"

	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/database"
	"recruiting-crm/pkg/logger"
	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListVacancies returns vacancies ordered by title, optionally filtered by
// the owning client.
func ListVacancies(c echo.Context) error {
	prometheus.RecordOperation("vacancy", "list")

	query := database.GetDB().Order("title")
	if raw := c.QueryParam("client_id"); raw != "" {
		clientID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
		}
		query = query.Where("client_id = ?", clientID)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var vacancies []model.Vacancy
	if result := query.Find(&vacancies); result.Error != nil {
		logger.FromContext(c).Error("Failed to list vacancies", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list vacancies"})
	}
	return c.JSON(http.StatusOK, vacancies)
}

// CreateVacancy creates a vacancy under an existing client. Admin only.
func CreateVacancy(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("vacancy", "create")

	var req struct {
		ClientID  uint     `json:"client_id"`
		Title     string   `json:"title"`
		FeeAmount *float64 `json:"fee_amount"`
		City      *string  `json:"city"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse vacancy request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	db := database.GetDB()
	var client model.Client
	if result := db.First(&client, req.ClientID); result.Error != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client not found"})
	}

	vacancy := model.Vacancy{
		ClientID: req.ClientID,
		Title:    req.Title,
		City:     req.City,
	}
	if req.FeeAmount != nil {
		vacancy.FeeAmount = *req.FeeAmount
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&vacancy); result.Error != nil {
		log.Error("Failed to create vacancy", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create vacancy"})
	}

	log.Info("Vacancy created",
		zap.Uint("vacancy_id", vacancy.ID),
		zap.String("title", vacancy.Title),
		zap.Uint("client_id", vacancy.ClientID))
	return c.JSON(http.StatusOK, vacancy)
}

// UpdateVacancy applies a partial update to a vacancy. Admin only.
func UpdateVacancy(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("vacancy", "update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vacancy ID"})
	}

	var req struct {
		ClientID  *uint    `json:"client_id"`
		Title     *string  `json:"title"`
		FeeAmount *float64 `json:"fee_amount"`
		City      *string  `json:"city"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse vacancy request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	db := database.GetDB()
	var vacancy model.Vacancy
	if result := db.First(&vacancy, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vacancy not found"})
	}

	if req.ClientID != nil {
		var client model.Client
		if result := db.First(&client, *req.ClientID); result.Error != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "client not found"})
		}
		vacancy.ClientID = *req.ClientID
	}
	if req.Title != nil {
		vacancy.Title = *req.Title
	}
	if req.FeeAmount != nil {
		vacancy.FeeAmount = *req.FeeAmount
	}
	if req.City != nil {
		vacancy.City = req.City
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := db.Save(&vacancy); result.Error != nil {
		log.Error("Failed to update vacancy", zap.Uint("vacancy_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update vacancy"})
	}

	return c.JSON(http.StatusOK, vacancy)
}

// DeleteVacancy removes a vacancy. Admin only.
func DeleteVacancy(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("vacancy", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vacancy ID"})
	}

	db := database.GetDB()
	var vacancy model.Vacancy
	if result := db.First(&vacancy, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vacancy not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := db.Delete(&vacancy); result.Error != nil {
		log.Error("Failed to delete vacancy", zap.Uint("vacancy_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete vacancy"})
	}

	log.Info("Vacancy deleted", zap.Uint("vacancy_id", id))
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
