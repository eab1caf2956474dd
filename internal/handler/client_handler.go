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

// ListClients returns all clients ordered by name.
func ListClients(c echo.Context) error {
	prometheus.RecordOperation("client", "list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var clients []model.Client
	if result := database.GetDB().Order("name").Find(&clients); result.Error != nil {
		logger.FromContext(c).Error("Failed to list clients", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list clients"})
	}
	return c.JSON(http.StatusOK, clients)
}

// CreateClient creates a client with a globally unique name. Admin only.
func CreateClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("client", "create")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse client request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	db := database.GetDB()
	var count int64
	db.Model(&model.Client{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Client name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client name already exists"})
	}

	client := model.Client{Name: req.Name}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&client); result.Error != nil {
		log.Error("Failed to create client", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create client"})
	}

	log.Info("Client created", zap.Uint("client_id", client.ID), zap.String("name", client.Name))
	return c.JSON(http.StatusOK, client)
}

// UpdateClient renames a client. Admin only.
func UpdateClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("client", "update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client ID"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse client request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	db := database.GetDB()
	var client model.Client
	if result := db.First(&client, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	var count int64
	db.Model(&model.Client{}).Where("name = ? AND id != ?", req.Name, id).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client name already exists"})
	}

	client.Name = req.Name
	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := db.Save(&client); result.Error != nil {
		log.Error("Failed to update client", zap.Uint("client_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update client"})
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client. Admin only.
func DeleteClient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("client", "delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client ID"})
	}

	db := database.GetDB()
	var client model.Client
	if result := db.First(&client, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := db.Delete(&client); result.Error != nil {
		log.Error("Failed to delete client", zap.Uint("client_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete client"})
	}

	log.Info("Client deleted", zap.Uint("client_id", id))
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
