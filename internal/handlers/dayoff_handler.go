package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/leave"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	"github.com/alphaclinic/clinic-manager/internal/middleware"
	"github.com/alphaclinic/clinic-manager/internal/timezone"
	ucDayoff "github.com/alphaclinic/clinic-manager/internal/usecase/dayoff"
)

// ======================================================
// HANDLER
// ======================================================

type DayOffHandler struct {
	createUC  *ucDayoff.CreateDayOff
	updateUC  *ucDayoff.UpdateDayOff
	decideUC  *ucDayoff.DecideDayOff
	balanceUC *ucDayoff.QueryLeaveBalance
	repo      domain.Repository
	tz        string
}

func NewDayOffHandler(
	createUC *ucDayoff.CreateDayOff,
	updateUC *ucDayoff.UpdateDayOff,
	decideUC *ucDayoff.DecideDayOff,
	balanceUC *ucDayoff.QueryLeaveBalance,
	repo domain.Repository,
	tz string,
) *DayOffHandler {
	return &DayOffHandler{
		createUC:  createUC,
		updateUC:  updateUC,
		decideUC:  decideUC,
		balanceUC: balanceUC,
		repo:      repo,
		tz:        tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDayOffRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Reason    string `json:"reason"`
}

type UpdateDayOffRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Reason    string `json:"reason"`
}

type RejectDayOffRequest struct {
	Notes string `json:"notes"`
}

var dayOffErrorMessages = map[string]string{
	"end_before_start":            "End date must be after start date.",
	"invalid_category":            "Unknown day-off category.",
	"half_day_must_be_single_day": "Half day leave must be for a single day.",
	"overlapping_day_off":         "This overlaps with an existing approved day off.",
	"dayoff_not_found":            "Day off not found.",
	"staff_not_found":             "Staff member not found.",
}

func writeDayOffError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		msg := dayOffErrorMessages[code]
		if msg == "" {
			msg = "Request rejected."
		}
		if code == "dayoff_not_found" || code == "staff_not_found" {
			httperr.NotFound(c, code, msg)
			return
		}
		httperr.BadRequest(c, code, msg)
		return
	}
	httperr.Internal(c, "dayoff_error", "Failed to process day off.")
}

// ======================================================
// CREATE
// ======================================================

func (h *DayOffHandler) Create(c *gin.Context) {
	var req CreateDayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseClinicDate(h.tz, req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid start date.")
		return
	}
	end, err := parseClinicDate(h.tz, req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid end date.")
		return
	}

	d, err := h.createUC.Execute(c.Request.Context(), ucDayoff.CreateDayOffInput{
		StaffID:   req.StaffID,
		StartDate: start,
		EndDate:   end,
		Category:  req.Category,
		Reason:    req.Reason,
	})
	if err != nil {
		writeDayOffError(c, err)
		return
	}

	httpresp.Created(c, d)
}

// ======================================================
// UPDATE
// ======================================================

func (h *DayOffHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid day off id.")
		return
	}

	var req UpdateDayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseClinicDate(h.tz, req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid start date.")
		return
	}
	end, err := parseClinicDate(h.tz, req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid end date.")
		return
	}

	d, err := h.updateUC.Execute(c.Request.Context(), uint(id), ucDayoff.UpdateDayOffInput{
		StartDate: start,
		EndDate:   end,
		Category:  req.Category,
		Reason:    req.Reason,
	})
	if err != nil {
		writeDayOffError(c, err)
		return
	}

	httpresp.OK(c, d)
}

// ======================================================
// LIST
// ======================================================

func (h *DayOffHandler) List(c *gin.Context) {
	var staffID uint
	if s := c.Query("staff_id"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			staffID = uint(v)
		}
	}
	status := c.Query("status")

	dayoffs, err := h.repo.ListDayOffs(c.Request.Context(), staffID, status)
	if err != nil {
		httperr.Internal(c, "failed_to_list_dayoffs", "Failed to list day offs.")
		return
	}

	httpresp.List(c, dayoffs)
}

// ======================================================
// APPROVE / REJECT
// ======================================================

func (h *DayOffHandler) Approve(c *gin.Context) {
	approverID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid day off id.")
		return
	}

	d, err := h.decideUC.Approve(c.Request.Context(), uint(id), approverID)
	if err != nil {
		writeDayOffError(c, err)
		return
	}

	httpresp.OK(c, d)
}

func (h *DayOffHandler) Reject(c *gin.Context) {
	approverID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid day off id.")
		return
	}

	var req RejectDayOffRequest
	_ = c.ShouldBindJSON(&req)

	d, err := h.decideUC.Reject(c.Request.Context(), uint(id), approverID, req.Notes)
	if err != nil {
		writeDayOffError(c, err)
		return
	}

	httpresp.OK(c, d)
}

// ======================================================
// DELETE
// ======================================================

func (h *DayOffHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid day off id.")
		return
	}

	if err := h.repo.DeleteDayOff(c.Request.Context(), uint(id)); err != nil {
		httperr.Internal(c, "failed_to_delete_dayoff", "Failed to delete day off.")
		return
	}

	c.Status(204)
}

// ======================================================
// LEAVE BALANCE
// ======================================================

func (h *DayOffHandler) LeaveBalance(c *gin.Context) {
	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid staff id.")
		return
	}

	year := 0
	if y := c.Query("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			year = v
		}
	}
	if year == 0 {
		year = timezone.NowIn(h.tz).Year()
	}

	result, err := h.balanceUC.Execute(c.Request.Context(), uint(staffID), year, c.Query("category"))
	if err != nil {
		writeDayOffError(c, err)
		return
	}

	httpresp.OK(c, result)
}
