package handler

import (
	"recruiting-crm/internal/model"
	"recruiting-crm/prometheus"

	"gorm.io/gorm"
)

// recomputePaymentCache restores the application's cached payment summary
// from the authoritative payment rows. It is idempotent and total: it reads
// the full current payment set and overwrites the cache, never increments,
// so any drift is healed by the next call. This is the only code path that
// writes the cache fields.
func recomputePaymentCache(db *gorm.DB, applicationID uint) error {
	prometheus.PaymentCacheRecomputeCounter.Inc()

	var payments []model.Payment
	if err := db.Where("application_id = ?", applicationID).Find(&payments).Error; err != nil {
		return err
	}

	total, last := summarizePayments(payments)
	var paidDate interface{}
	if last != nil {
		paidDate = *last
	}

	return db.Model(&model.Application{}).
		Where("id = ?", applicationID).
		Updates(map[string]interface{}{
			"payment_amount": total,
			"paid_date":      paidDate,
			"paid":           total > 0,
		}).Error
}

// summarizePayments derives the cache values from a payment set: the sum of
// amounts and the most recent paid date. Negative amounts count into the sum.
func summarizePayments(payments []model.Payment) (float64, *model.Date) {
	var total float64
	var last *model.Date
	for i := range payments {
		total += payments[i].Amount
		if last == nil || payments[i].PaidDate.After(last.Time) {
			last = &payments[i].PaidDate
		}
	}
	return total, last
}
