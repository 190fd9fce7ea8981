package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	"github.com/alphaclinic/clinic-manager/internal/middleware"
	"github.com/alphaclinic/clinic-manager/internal/models"
	"github.com/alphaclinic/clinic-manager/internal/notify"
)

// ======================================================
// HANDLER
// ======================================================

type NotificationHandler struct {
	db      *gorm.DB
	service *notify.Service
}

func NewNotificationHandler(db *gorm.DB, service *notify.Service) *NotificationHandler {
	return &NotificationHandler{db: db, service: service}
}

// ======================================================
// LOGS
// ======================================================

func (h *NotificationHandler) ListLogs(c *gin.Context) {
	q := h.db.Preload("Client").Order("created_at DESC").Limit(200)

	if clientID := c.Query("client_id"); clientID != "" {
		if v, err := strconv.ParseUint(clientID, 10, 64); err == nil {
			q = q.Where("client_id = ?", uint(v))
		}
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var logs []models.NotificationLog
	if err := q.Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_logs", "Failed to list notification logs.")
		return
	}

	httpresp.List(c, logs)
}

// ======================================================
// TEMPLATES
// ======================================================

func (h *NotificationHandler) ListTemplates(c *gin.Context) {
	var templates []models.NotificationTemplate
	if err := h.db.Order("name").Find(&templates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_templates", "Failed to list templates.")
		return
	}
	httpresp.List(c, templates)
}

type TemplateRequest struct {
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type"`
	SMSBody      string `json:"sms_body"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
	IsActive     *bool  `json:"is_active"`
}

func (h *NotificationHandler) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	tmpl := models.NotificationTemplate{
		Name:         req.Name,
		Type:         req.Type,
		SMSBody:      req.SMSBody,
		EmailSubject: req.EmailSubject,
		EmailBody:    req.EmailBody,
		IsActive:     true,
	}
	if tmpl.Type == "" {
		tmpl.Type = "custom"
	}
	if req.IsActive != nil {
		tmpl.IsActive = *req.IsActive
	}

	if err := h.db.Create(&tmpl).Error; err != nil {
		httperr.Internal(c, "failed_to_create_template", "Failed to create template.")
		return
	}

	httpresp.Created(c, tmpl)
}

// ======================================================
// MANUAL SEND
// ======================================================

type SendNotificationRequest struct {
	ClientIDs []uint `json:"client_ids" binding:"required,min=1"`
	Channel   string `json:"channel" binding:"required,oneof=sms email"`
	Subject   string `json:"subject"`
	Body      string `json:"body" binding:"required"`
}

// Send enqueues a manually composed message to one or more clients.
// Delivery is asynchronous; the response only confirms the enqueue.
func (h *NotificationHandler) Send(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var clients []models.Client
	if err := h.db.Where("id IN ?", req.ClientIDs).Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_load_clients", "Failed to load clients.")
		return
	}
	if len(clients) == 0 {
		httperr.NotFound(c, "clients_not_found", "No matching clients.")
		return
	}

	for i := range clients {
		h.service.SendCustom(&clients[i], req.Channel, req.Subject, req.Body, &userID)
	}

	httpresp.OK(c, gin.H{"queued": len(clients)})
}
