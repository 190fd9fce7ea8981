package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/alphaclinic/clinic-manager/internal/cache"
	domain "github.com/alphaclinic/clinic-manager/internal/domain/visit"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	ucVisit "github.com/alphaclinic/clinic-manager/internal/usecase/visit"
)

// ======================================================
// HANDLER
// ======================================================

type VisitHandler struct {
	createUC *ucVisit.CreateVisit
	updateUC *ucVisit.UpdateVisit
	feedUC   *ucVisit.IncompleteFeed
	repo     domain.Repository
	cache    *cache.IncompleteFeedCache
}

func NewVisitHandler(
	createUC *ucVisit.CreateVisit,
	updateUC *ucVisit.UpdateVisit,
	feedUC *ucVisit.IncompleteFeed,
	repo domain.Repository,
	feedCache *cache.IncompleteFeedCache,
) *VisitHandler {
	return &VisitHandler{
		createUC: createUC,
		updateUC: updateUC,
		feedUC:   feedUC,
		repo:     repo,
		cache:    feedCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateVisitRequest struct {
	AppointmentID uint  `json:"appointment_id" binding:"required"`
	StaffID       *uint `json:"staff_id"`
	MachineID     *uint `json:"machine_id"`

	Area        string           `json:"area"`
	SpotSizeMM  *decimal.Decimal `json:"spot_size_mm"`
	FluenceJCm2 *decimal.Decimal `json:"fluence_j_cm2"`
	PulseCount  *int             `json:"pulse_count"`
	Remarks     string           `json:"remarks"`

	ChargeAmount  *decimal.Decimal `json:"charge_amount"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
	PaymentMethod string           `json:"payment_method"`

	ClientPackageItemID *uint `json:"client_package_item_id"`
}

type UpdateVisitRequest struct {
	Area        string           `json:"area"`
	SpotSizeMM  *decimal.Decimal `json:"spot_size_mm"`
	FluenceJCm2 *decimal.Decimal `json:"fluence_j_cm2"`
	PulseCount  *int             `json:"pulse_count"`
	Remarks     string           `json:"remarks"`

	ChargeAmount  *decimal.Decimal `json:"charge_amount"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
	PaymentMethod string           `json:"payment_method"`
}

var visitErrorMessages = map[string]string{
	"visit_not_found":          "Visit not found.",
	"appointment_not_found":    "Appointment not found.",
	"package_item_not_found":   "Package item not found.",
	"package_service_mismatch": "The package does not cover this service.",
	"no_remaining_sessions":    "The linked package has no remaining sessions.",
	"visit_already_exists":     "A visit already exists for this appointment.",
}

func writeVisitError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		msg := visitErrorMessages[code]
		if msg == "" {
			msg = "Request rejected."
		}
		switch code {
		case "visit_not_found", "appointment_not_found", "package_item_not_found":
			httperr.NotFound(c, code, msg)
		case "visit_already_exists":
			httperr.Conflict(c, code, msg)
		default:
			httperr.BadRequest(c, code, msg)
		}
		return
	}
	httperr.Internal(c, "visit_error", "Failed to process visit.")
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *VisitHandler) Create(c *gin.Context) {
	var req CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	v, err := h.createUC.Execute(c.Request.Context(), ucVisit.CreateVisitInput{
		AppointmentID:       req.AppointmentID,
		StaffID:             req.StaffID,
		MachineID:           req.MachineID,
		Area:                req.Area,
		SpotSizeMM:          req.SpotSizeMM,
		FluenceJCm2:         req.FluenceJCm2,
		PulseCount:          req.PulseCount,
		Remarks:             req.Remarks,
		ChargeAmount:        req.ChargeAmount,
		PaidAmount:          req.PaidAmount,
		PaymentMethod:       req.PaymentMethod,
		ClientPackageItemID: req.ClientPackageItemID,
	})
	if err != nil {
		writeVisitError(c, err)
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}

	httpresp.Created(c, v)
}

func (h *VisitHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid visit id.")
		return
	}

	var req UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	v, err := h.updateUC.Execute(c.Request.Context(), uint(id), ucVisit.UpdateVisitInput{
		Area:          req.Area,
		SpotSizeMM:    req.SpotSizeMM,
		FluenceJCm2:   req.FluenceJCm2,
		PulseCount:    req.PulseCount,
		Remarks:       req.Remarks,
		ChargeAmount:  req.ChargeAmount,
		PaidAmount:    req.PaidAmount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeVisitError(c, err)
		return
	}

	// Completing the record may clear it off the attention feed.
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}

	httpresp.OK(c, v)
}

// ======================================================
// GET / LIST
// ======================================================

func (h *VisitHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid visit id.")
		return
	}

	v, err := h.repo.GetVisit(c.Request.Context(), uint(id))
	if err != nil {
		httperr.NotFound(c, "visit_not_found", "Visit not found.")
		return
	}

	httpresp.OK(c, v)
}

func (h *VisitHandler) List(c *gin.Context) {
	visits, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_visits", "Failed to list visits.")
		return
	}

	httpresp.List(c, visits)
}

func (h *VisitHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid visit id.")
		return
	}

	if err := h.repo.DeleteVisit(c.Request.Context(), uint(id)); err != nil {
		httperr.Internal(c, "failed_to_delete_visit", "Failed to delete visit.")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context())
	}

	c.Status(204)
}

// ======================================================
// INCOMPLETE FEED
// ======================================================

func (h *VisitHandler) IncompleteFeed(c *gin.Context) {
	result, err := h.feedUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_build_feed", "Failed to build the feed.")
		return
	}

	httpresp.OK(c, result)
}

func (h *VisitHandler) IncompleteCount(c *gin.Context) {
	count, err := h.feedUC.Count(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_count_feed", "Failed to count incomplete visits.")
		return
	}

	httpresp.OK(c, gin.H{"count": count})
}
