package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	"github.com/alphaclinic/clinic-manager/internal/models"
	"github.com/alphaclinic/clinic-manager/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

type StaffHandler struct {
	db      *gorm.DB
	avatars *storage.AvatarStore
}

func NewStaffHandler(db *gorm.DB, avatars *storage.AvatarStore) *StaffHandler {
	return &StaffHandler{db: db, avatars: avatars}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStaffProfileRequest struct {
	Position       string `json:"position"`
	EmploymentType string `json:"employment_type"`
	HireDate       string `json:"hire_date"`
	EmployeeID     string `json:"employee_id"`
	Certifications string `json:"certifications"`
	Bio            string `json:"bio"`
	IsActiveStaff  *bool  `json:"is_active_staff"`
	CanBeBooked    *bool  `json:"can_be_booked"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *StaffHandler) List(c *gin.Context) {
	var profiles []models.StaffProfile
	q := h.db.Preload("User").Order("id")

	if c.Query("active") == "true" {
		q = q.Where("is_active_staff = ?", true)
	}
	if c.Query("bookable") == "true" {
		q = q.Where("can_be_booked = ?", true)
	}

	if err := q.Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Failed to list staff.")
		return
	}

	httpresp.List(c, profiles)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid staff id.")
		return
	}

	var profile models.StaffProfile
	if err := h.db.Preload("User").First(&profile, uint(id)).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	httpresp.OK(c, profile)
}

// ======================================================
// UPDATE PROFILE
// ======================================================

func (h *StaffHandler) UpdateProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid staff id.")
		return
	}

	var profile models.StaffProfile
	if err := h.db.First(&profile, uint(id)).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	var req UpdateStaffProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	profile.Position = req.Position
	profile.EmploymentType = req.EmploymentType
	profile.EmployeeID = req.EmployeeID
	profile.Certifications = req.Certifications
	profile.Bio = req.Bio

	if req.HireDate != "" {
		hd, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid hire date.")
			return
		}
		profile.HireDate = &hd
	}
	if req.IsActiveStaff != nil {
		profile.IsActiveStaff = *req.IsActiveStaff
	}
	if req.CanBeBooked != nil {
		profile.CanBeBooked = *req.CanBeBooked
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Failed to update profile.")
		return
	}

	httpresp.OK(c, profile)
}

// ======================================================
// AVATAR UPLOAD
// ======================================================

func (h *StaffHandler) UploadAvatar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid staff id.")
		return
	}

	var profile models.StaffProfile
	if err := h.db.First(&profile, uint(id)).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "An avatar file is required.")
		return
	}
	defer file.Close()

	url, err := h.avatars.Upload(c.Request.Context(), file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The uploaded file is not a supported image.")
		return
	}

	profile.AvatarURL = url
	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Failed to save avatar.")
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}
