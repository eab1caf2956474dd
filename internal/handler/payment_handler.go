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

// ListPayments returns an application's ledger, most recently paid first,
// ties broken by most recently recorded.
func ListPayments(c echo.Context) error {
	prometheus.RecordOperation("payment", "list")
	user := currentUser(c)

	appID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid application ID"})
	}

	db := database.GetDB()
	var application model.Application
	if result := db.First(&application, appID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
	}
	if !user.CanActOnRecruiter(&application.RecruiterID) {
		prometheus.RecordAuthError("forbidden")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var payments []model.Payment
	result := db.Where("application_id = ?", appID).
		Order("paid_date DESC, created_at DESC").
		Find(&payments)
	if result.Error != nil {
		logger.FromContext(c).Error("Failed to list payments",
			zap.Uint("application_id", appID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list payments"})
	}
	return c.JSON(http.StatusOK, payments)
}

// AddPayment appends a payment to an application's ledger and synchronously
// recomputes the cached summary.
func AddPayment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("payment", "create")
	user := currentUser(c)

	appID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid application ID"})
	}

	var req struct {
		PaidDate *model.Date `json:"paid_date"`
		Amount   float64     `json:"amount"`
		Note     *string     `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse payment request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.PaidDate == nil || req.PaidDate.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "paid_date is required"})
	}

	db := database.GetDB()
	var application model.Application
	if result := db.First(&application, appID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
	}
	if !user.CanActOnRecruiter(&application.RecruiterID) {
		prometheus.RecordAuthError("forbidden")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	payment := model.Payment{
		ApplicationID: appID,
		PaidDate:      *req.PaidDate,
		Amount:        req.Amount,
		Note:          req.Note,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&payment); result.Error != nil {
		log.Error("Failed to create payment", zap.Uint("application_id", appID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create payment"})
	}

	if err := recomputePaymentCache(db, appID); err != nil {
		log.Error("Failed to recompute payment cache",
			zap.Uint("application_id", appID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment summary"})
	}

	log.Info("Payment recorded",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("application_id", appID),
		zap.Float64("amount", payment.Amount))
	return c.JSON(http.StatusOK, payment)
}

// DeletePayment removes a payment and recomputes the owning application's
// cached summary.
func DeletePayment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("payment", "delete")
	user := currentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment ID"})
	}

	db := database.GetDB()
	var payment model.Payment
	if result := db.First(&payment, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
	}
	var application model.Application
	if result := db.First(&application, payment.ApplicationID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
	}
	if !user.CanActOnRecruiter(&application.RecruiterID) {
		prometheus.RecordAuthError("forbidden")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := db.Delete(&payment); result.Error != nil {
		log.Error("Failed to delete payment", zap.Uint("payment_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete payment"})
	}

	if err := recomputePaymentCache(db, payment.ApplicationID); err != nil {
		log.Error("Failed to recompute payment cache",
			zap.Uint("application_id", payment.ApplicationID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment summary"})
	}

	log.Info("Payment deleted",
		zap.Uint("payment_id", id),
		zap.Uint("application_id", payment.ApplicationID))
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
