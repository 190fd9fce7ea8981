package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	"github.com/alphaclinic/clinic-manager/internal/timezone"
)

type AnalyticsHandler struct {
	db *gorm.DB
	tz string
}

func NewAnalyticsHandler(db *gorm.DB, tz string) *AnalyticsHandler {
	return &AnalyticsHandler{db: db, tz: tz}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type revenueSummary struct {
	Charged decimal.Decimal `json:"charged"`
	Paid    decimal.Decimal `json:"paid"`
	Visits  int64           `json:"visits"`
}

// Dashboard aggregates a single day: appointment counts by status plus
// charged versus collected revenue for the visits of that day.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = timezone.NowIn(h.tz).Format("2006-01-02")
	}

	day, err := parseClinicDate(h.tz, date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}
	dayStart, dayEnd := dayBounds(day)

	var statuses []statusCount
	err = h.db.
		Table("appointments").
		Select("status, COUNT(*) AS count").
		Where("start >= ? AND start < ?", dayStart, dayEnd).
		Group("status").
		Scan(&statuses).Error
	if err != nil {
		httperr.Internal(c, "failed_to_aggregate", "Failed to build the dashboard.")
		return
	}

	var revenue revenueSummary
	err = h.db.
		Table("visits").
		Select("COALESCE(SUM(charge_amount), 0) AS charged, COALESCE(SUM(paid_amount), 0) AS paid, COUNT(*) AS visits").
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Scan(&revenue).Error
	if err != nil {
		httperr.Internal(c, "failed_to_aggregate", "Failed to build the dashboard.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":     date,
		"statuses": statuses,
		"revenue":  revenue,
	})
}
