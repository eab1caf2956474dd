package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/database"
	"recruiting-crm/pkg/logger"
	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const initialPaymentNote = "initial payment"

// CreateApplication creates a pipeline record. All three referenced entities
// must exist and the caller must be allowed to act on the target recruiter.
// When the caller marks the application paid up front, an initial payment is
// synthesized and the cache recomputed immediately.
func CreateApplication(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("application", "create")
	user := currentUser(c)

	var req struct {
		CandidateID     uint        `json:"candidate_id"`
		VacancyID       uint        `json:"vacancy_id"`
		RecruiterID     uint        `json:"recruiter_id"`
		DateContacted   *model.Date `json:"date_contacted"`
		Status          string      `json:"status"`
		RejectionDate   *model.Date `json:"rejection_date"`
		StartDate       *model.Date `json:"start_date"`
		IsReplacement   bool        `json:"is_replacement"`
		ReplacementOfID *uint       `json:"replacement_of_id"`
		ReplacementNote *string     `json:"replacement_note"`
		Paid            bool        `json:"paid"`
		PaidDate        *model.Date `json:"paid_date"`
		PaymentAmount   *float64    `json:"payment_amount"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse application request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Status == "" {
		req.Status = model.StatusNew
	}

	db := database.GetDB()
	var candidate model.Candidate
	if result := db.First(&candidate, req.CandidateID); result.Error != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "candidate not found"})
	}
	var vacancy model.Vacancy
	if result := db.First(&vacancy, req.VacancyID); result.Error != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vacancy not found"})
	}
	var recruiter model.Recruiter
	if result := db.First(&recruiter, req.RecruiterID); result.Error != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recruiter not found"})
	}

	if !user.CanActOnRecruiter(&req.RecruiterID) {
		log.Warn("Recruiter scope violation on application create",
			zap.Uint("user_id", user.ID),
			zap.Uint("target_recruiter_id", req.RecruiterID))
		prometheus.RecordAuthError("forbidden")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := model.ValidateStatusDates(req.Status, req.RejectionDate, req.StartDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	application := model.Application{
		CandidateID:     req.CandidateID,
		VacancyID:       req.VacancyID,
		RecruiterID:     req.RecruiterID,
		DateContacted:   req.DateContacted,
		Status:          req.Status,
		RejectionDate:   req.RejectionDate,
		StartDate:       req.StartDate,
		IsReplacement:   req.IsReplacement,
		ReplacementOfID: req.ReplacementOfID,
		ReplacementNote: req.ReplacementNote,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&application); result.Error != nil {
		log.Error("Failed to create application", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create application"})
	}

	// Synthesize the initial payment when the application arrives already
	// paid. The vacancy fee is the fallback amount.
	if req.Paid && req.PaidDate != nil && !req.PaidDate.IsZero() {
		amount := vacancy.FeeAmount
		if req.PaymentAmount != nil && *req.PaymentAmount > 0 {
			amount = *req.PaymentAmount
		}
		note := initialPaymentNote
		payment := model.Payment{
			ApplicationID: application.ID,
			PaidDate:      *req.PaidDate,
			Amount:        amount,
			Note:          &note,
		}
		if result := db.Create(&payment); result.Error != nil {
			log.Error("Failed to create initial payment",
				zap.Uint("application_id", application.ID),
				zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create initial payment"})
		}
		if err := recomputePaymentCache(db, application.ID); err != nil {
			log.Error("Failed to recompute payment cache",
				zap.Uint("application_id", application.ID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment summary"})
		}
		if result := db.First(&application, application.ID); result.Error != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reload application"})
		}
	}

	log.Info("Application created",
		zap.Uint("application_id", application.ID),
		zap.Uint("candidate_id", application.CandidateID),
		zap.Uint("vacancy_id", application.VacancyID),
		zap.Uint("recruiter_id", application.RecruiterID),
		zap.String("status", application.Status))
	return c.JSON(http.StatusOK, application)
}

// UpdateApplication applies a partial update. Authorization is checked
// against the existing owning recruiter, and the status/date invariant is
// re-validated against the merged fields, so updating unrelated fields can
// never leave a rejected row without a rejection date or a hired row without
// a start date.
func UpdateApplication(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("application", "update")
	user := currentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid application ID"})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Error("Failed to read application request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	db := database.GetDB()
	var application model.Application
	if result := db.First(&application, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
	}

	if !user.CanActOnRecruiter(&application.RecruiterID) {
		prometheus.RecordAuthError("forbidden")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := applyApplicationPatch(&application, body); err != nil {
		log.Warn("Rejected application patch", zap.Uint("application_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := model.ValidateStatusDates(application.Status, application.RejectionDate, application.StartDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Update only the lifecycle fields; the cache columns stay owned by the
	// recompute path.
	defer prometheus.TrackDBOperation("update")(time.Now())
	result := db.Model(&application).
		Select("date_contacted", "status", "rejection_date", "start_date",
			"is_replacement", "replacement_of_id", "replacement_note").
		Updates(application)
	if result.Error != nil {
		log.Error("Failed to update application", zap.Uint("application_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update application"})
	}

	log.Info("Application updated",
		zap.Uint("application_id", application.ID),
		zap.String("status", application.Status))
	return c.JSON(http.StatusOK, application)
}

// applicationPatch captures the raw PATCH body. Raw messages distinguish an
// absent field (nil) from an explicit null, so callers can clear the
// nullable fields the way they can set them.
type applicationPatch struct {
	DateContacted   json.RawMessage `json:"date_contacted"`
	Status          json.RawMessage `json:"status"`
	RejectionDate   json.RawMessage `json:"rejection_date"`
	StartDate       json.RawMessage `json:"start_date"`
	IsReplacement   json.RawMessage `json:"is_replacement"`
	ReplacementOfID json.RawMessage `json:"replacement_of_id"`
	ReplacementNote json.RawMessage `json:"replacement_note"`
}

// applyApplicationPatch merges a partial update into the application: absent
// fields stay untouched, explicit nulls clear. Status itself is not nullable.
func applyApplicationPatch(application *model.Application, body []byte) error {
	var patch applicationPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		return errors.New("invalid request")
	}

	if patch.Status != nil {
		if isJSONNull(patch.Status) {
			return errors.New("status cannot be null")
		}
		if err := json.Unmarshal(patch.Status, &application.Status); err != nil {
			return errors.New("invalid status")
		}
	}

	var err error
	if application.DateContacted, err = patchDate(patch.DateContacted, application.DateContacted, "date_contacted"); err != nil {
		return err
	}
	if application.RejectionDate, err = patchDate(patch.RejectionDate, application.RejectionDate, "rejection_date"); err != nil {
		return err
	}
	if application.StartDate, err = patchDate(patch.StartDate, application.StartDate, "start_date"); err != nil {
		return err
	}

	if patch.IsReplacement != nil && !isJSONNull(patch.IsReplacement) {
		if err := json.Unmarshal(patch.IsReplacement, &application.IsReplacement); err != nil {
			return errors.New("invalid is_replacement")
		}
	}
	if patch.ReplacementOfID != nil {
		if isJSONNull(patch.ReplacementOfID) {
			application.ReplacementOfID = nil
		} else {
			var ref uint
			if err := json.Unmarshal(patch.ReplacementOfID, &ref); err != nil {
				return errors.New("invalid replacement_of_id")
			}
			application.ReplacementOfID = &ref
		}
	}
	if patch.ReplacementNote != nil {
		if isJSONNull(patch.ReplacementNote) {
			application.ReplacementNote = nil
		} else {
			var note string
			if err := json.Unmarshal(patch.ReplacementNote, &note); err != nil {
				return errors.New("invalid replacement_note")
			}
			application.ReplacementNote = &note
		}
	}
	return nil
}

func patchDate(raw json.RawMessage, current *model.Date, field string) (*model.Date, error) {
	if raw == nil {
		return current, nil
	}
	if isJSONNull(raw) {
		return nil, nil
	}
	var d model.Date
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("invalid %s", field)
	}
	return &d, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// DeleteApplication removes an application together with its payments.
func DeleteApplication(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("application", "delete")
	user := currentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid application ID"})
	}

	db := database.GetDB()
	var application model.Application
	if result := db.First(&application, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
	}

	if !user.CanActOnRecruiter(&application.RecruiterID) {
		prometheus.RecordAuthError("forbidden")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := db.Where("application_id = ?", id).Delete(&model.Payment{}); result.Error != nil {
		log.Error("Failed to delete application payments", zap.Uint("application_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete application"})
	}
	if result := db.Delete(&application); result.Error != nil {
		log.Error("Failed to delete application", zap.Uint("application_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete application"})
	}

	log.Info("Application deleted", zap.Uint("application_id", id))
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
