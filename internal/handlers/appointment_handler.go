package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/appointment"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	"github.com/alphaclinic/clinic-manager/internal/middleware"
	"github.com/alphaclinic/clinic-manager/internal/timezone"
	ucAppointment "github.com/alphaclinic/clinic-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC   *ucAppointment.BookAppointment
	statusUC *ucAppointment.ChangeStatus
	repo     domain.Repository
	tz       string
}

func NewAppointmentHandler(
	bookUC *ucAppointment.BookAppointment,
	statusUC *ucAppointment.ChangeStatus,
	repo domain.Repository,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:   bookUC,
		statusUC: statusUC,
		repo:     repo,
		tz:       tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	ClientID  uint  `json:"client_id" binding:"required"`
	ServiceID uint  `json:"service_id" binding:"required"`
	StaffID   uint  `json:"staff_id" binding:"required"`
	RoomID    uint  `json:"room_id" binding:"required"`
	MachineID *uint `json:"machine_id"`

	Date string `json:"date" binding:"required"` // 2006-01-02
	Time string `json:"time" binding:"required"` // 15:04

	Notes         string           `json:"notes"`
	PriceOverride *decimal.Decimal `json:"price_override"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var appointmentErrorMessages = map[string]string{
	"invalid_date_or_time":  "Invalid date or time.",
	"service_not_found":     "Service not found.",
	"client_not_found":      "Client not found.",
	"appointment_not_found": "Appointment not found.",
	"time_conflict":         "The staff member or room is already booked for this time.",
	"invalid_status":        "Unknown appointment status.",
	"no_remaining_sessions": "The linked package has no remaining sessions.",
}

func writeAppointmentError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		msg := appointmentErrorMessages[code]
		if msg == "" {
			msg = "Request rejected."
		}
		switch code {
		case "appointment_not_found", "service_not_found", "client_not_found":
			httperr.NotFound(c, code, msg)
		case "time_conflict":
			httperr.Conflict(c, code, msg)
		default:
			httperr.BadRequest(c, code, msg)
		}
		return
	}
	httperr.Internal(c, "appointment_error", "Failed to process appointment.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		ClientID:      req.ClientID,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		RoomID:        req.RoomID,
		MachineID:     req.MachineID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		PriceOverride: req.PriceOverride,
		CreatedByID:   userID,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// GET / LIST
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, ap)
}

// List returns the appointments for a single day, or for an explicit
// from/to window when both are given.
func (h *AppointmentHandler) List(c *gin.Context) {
	loc := timezone.Location(h.tz)

	from := c.Query("from")
	to := c.Query("to")
	if from == "" {
		from = c.Query("date")
	}
	if from == "" {
		from = timezone.NowIn(h.tz).Format("2006-01-02")
	}

	start, err := parseClinicDate(h.tz, from)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	var end = start
	if to != "" {
		end, err = parseClinicDate(h.tz, to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
	}

	dayStart, _ := dayBounds(start.In(loc))
	_, dayEnd := dayBounds(end.In(loc))

	appointments, err := h.repo.ListForPeriod(c.Request.Context(), dayStart, dayEnd)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, appointments)
}

// ======================================================
// STATUS CHANGE
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	result, err := h.statusUC.Execute(c.Request.Context(), userID, uint(id), req.Status)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, result)
}
