package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`

	ReceiveBookingSMS    *bool `json:"receive_booking_sms"`
	ReceiveBookingEmail  *bool `json:"receive_booking_email"`
	ReceiveReminderSMS   *bool `json:"receive_reminder_sms"`
	ReceiveReminderEmail *bool `json:"receive_reminder_email"`
}

func (req *ClientRequest) apply(client *models.Client) {
	client.FullName = req.FullName
	client.Phone = req.Phone
	client.Email = req.Email
	client.Notes = req.Notes

	if req.ReceiveBookingSMS != nil {
		client.ReceiveBookingSMS = *req.ReceiveBookingSMS
	}
	if req.ReceiveBookingEmail != nil {
		client.ReceiveBookingEmail = *req.ReceiveBookingEmail
	}
	if req.ReceiveReminderSMS != nil {
		client.ReceiveReminderSMS = *req.ReceiveReminderSMS
	}
	if req.ReceiveReminderEmail != nil {
		client.ReceiveReminderEmail = *req.ReceiveReminderEmail
	}
}

// ======================================================
// CRUD
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	q := h.db.Order("full_name")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Failed to list clients.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid client id.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, uint(id)).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	client := models.Client{
		ReceiveBookingSMS:    true,
		ReceiveBookingEmail:  true,
		ReceiveReminderSMS:   true,
		ReceiveReminderEmail: true,
	}
	req.apply(&client)

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Failed to create client.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid client id.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, uint(id)).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	req.apply(&client)

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Failed to update client.")
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// CLIENT PACKAGES
// ======================================================

func (h *ClientHandler) ListPackages(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid client id.")
		return
	}

	var packages []models.ClientPackage
	err = h.db.
		Preload("Package").
		Preload("Items.PackageItem.Service").
		Where("client_id = ?", uint(id)).
		Order("purchased_at DESC").
		Find(&packages).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_packages", "Failed to list client packages.")
		return
	}

	httpresp.List(c, packages)
}
