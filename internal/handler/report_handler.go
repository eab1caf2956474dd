package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recruiting-crm/internal/model"
	"recruiting-crm/pkg/database"
	"recruiting-crm/pkg/logger"
	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	pipelineDefaultLimit = 500
	pipelineMaxLimit     = 2000
)

// PipelineRow is one flattened application row for the pipeline view.
type PipelineRow struct {
	ID              uint        `json:"id"`
	DateContacted   *model.Date `json:"date_contacted,omitempty"`
	Status          string      `json:"status"`
	RejectionDate   *model.Date `json:"rejection_date,omitempty"`
	StartDate       *model.Date `json:"start_date,omitempty"`
	Paid            bool        `json:"paid"`
	PaidDate        *model.Date `json:"paid_date,omitempty"`
	PaymentAmount   float64     `json:"payment_amount"`
	IsReplacement   bool        `json:"is_replacement"`
	ReplacementOfID *uint       `json:"replacement_of_id,omitempty"`
	ReplacementNote *string     `json:"replacement_note,omitempty"`
	CandidateID     uint        `json:"candidate_id"`
	CandidateName   string      `json:"candidate_name"`
	RecruiterID     uint        `json:"recruiter_id"`
	RecruiterName   string      `json:"recruiter_name"`
	VacancyID       uint        `json:"vacancy_id"`
	VacancyTitle    string      `json:"vacancy_title"`
	VacancyFee      float64     `json:"vacancy_fee"`
	ClientID        uint        `json:"client_id"`
	ClientName      string      `json:"client_name"`
}

// EarningsItem is one payment line in the monthly earnings report.
type EarningsItem struct {
	PaymentID     uint       `json:"payment_id"`
	PaidDate      model.Date `json:"paid_date"`
	Amount        float64    `json:"amount"`
	CandidateName string     `json:"candidate_name"`
	ClientName    string     `json:"client_name"`
	VacancyTitle  string     `json:"vacancy_title"`
	RecruiterName string     `json:"recruiter_name"`
	ApplicationID uint       `json:"application_id"`
}

// EarningsReport is the monthly rollup: line items plus their rounded total.
type EarningsReport struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Total float64        `json:"total"`
	Items []EarningsItem `json:"items"`
}

// Pipeline returns flattened application rows joined with candidate,
// recruiter, vacancy and client, newest applications first. Non-admin
// callers are always restricted to their own recruiter, overriding any
// recruiter_id filter they supply.
func Pipeline(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("pipeline", "list")
	user := currentUser(c)

	limit := pipelineDefaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > pipelineMaxLimit {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be 1..2000"})
		}
		limit = parsed
	}

	query := database.GetDB().Table("applications").
		Select(`applications.id, applications.date_contacted, applications.status,
			applications.rejection_date, applications.start_date, applications.paid,
			applications.paid_date, applications.payment_amount, applications.is_replacement,
			applications.replacement_of_id, applications.replacement_note,
			candidates.id AS candidate_id, candidates.full_name AS candidate_name,
			recruiters.id AS recruiter_id, recruiters.name AS recruiter_name,
			vacancies.id AS vacancy_id, vacancies.title AS vacancy_title, vacancies.fee_amount AS vacancy_fee,
			clients.id AS client_id, clients.name AS client_name`).
		Joins("JOIN candidates ON candidates.id = applications.candidate_id").
		Joins("JOIN recruiters ON recruiters.id = applications.recruiter_id").
		Joins("JOIN vacancies ON vacancies.id = applications.vacancy_id").
		Joins("JOIN clients ON clients.id = vacancies.client_id")

	if raw := c.QueryParam("client_id"); raw != "" {
		clientID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
		}
		query = query.Where("clients.id = ?", clientID)
	}

	// Non-admins always see their own recruiter's rows, regardless of any
	// recruiter_id they pass.
	var recruiterID *uint
	if !user.IsAdmin() {
		recruiterID = user.RecruiterID
		if recruiterID == nil {
			return c.JSON(http.StatusOK, []PipelineRow{})
		}
	} else if raw := c.QueryParam("recruiter_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recruiter_id"})
		}
		id := uint(parsed)
		recruiterID = &id
	}
	if recruiterID != nil {
		query = query.Where("recruiters.id = ?", *recruiterID)
	}

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("applications.status = ?", status)
	}
	if search := strings.TrimSpace(c.QueryParam("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"candidates.full_name ILIKE ? OR vacancies.title ILIKE ? OR clients.name ILIKE ? OR recruiters.name ILIKE ?",
			like, like, like, like,
		)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	rows := make([]PipelineRow, 0, limit)
	result := query.Order("applications.created_at DESC").Limit(limit).Scan(&rows)
	if result.Error != nil {
		log.Error("Failed to load pipeline", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load pipeline"})
	}

	return c.JSON(http.StatusOK, rows)
}

// Earnings returns the monthly earnings rollup: all payments with a paid
// date inside the requested calendar month, joined with their pipeline
// context, plus the rounded total.
func Earnings(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("earnings", "list")
	user := currentUser(c)

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year is required"})
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month is required"})
	}
	if month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be 1..12"})
	}

	report := EarningsReport{Year: year, Month: month, Items: []EarningsItem{}}

	// Non-admins without a linked recruiter get an empty zero-total report.
	if !user.IsAdmin() && user.RecruiterID == nil {
		return c.JSON(http.StatusOK, report)
	}

	start, end := monthRange(year, month)
	query := database.GetDB().Table("payments").
		Select(`payments.id AS payment_id, payments.paid_date, payments.amount,
			candidates.full_name AS candidate_name,
			clients.name AS client_name,
			vacancies.title AS vacancy_title,
			recruiters.name AS recruiter_name,
			applications.id AS application_id`).
		Joins("JOIN applications ON applications.id = payments.application_id").
		Joins("JOIN candidates ON candidates.id = applications.candidate_id").
		Joins("JOIN recruiters ON recruiters.id = applications.recruiter_id").
		Joins("JOIN vacancies ON vacancies.id = applications.vacancy_id").
		Joins("JOIN clients ON clients.id = vacancies.client_id").
		Where("payments.paid_date >= ? AND payments.paid_date < ?", start, end).
		Order("payments.paid_date DESC, payments.created_at DESC")

	if !user.IsAdmin() {
		query = query.Where("recruiters.id = ?", *user.RecruiterID)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	if result := query.Scan(&report.Items); result.Error != nil {
		log.Error("Failed to load earnings report", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load earnings report"})
	}

	var total float64
	for _, item := range report.Items {
		total += item.Amount
	}
	report.Total = roundCents(total)

	return c.JSON(http.StatusOK, report)
}

// monthRange returns the half-open [start, end) boundary spanning exactly
// one calendar month; December rolls into the next year.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var end time.Time
	if month == 12 {
		end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	} else {
		end = time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	}
	return start, end
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
