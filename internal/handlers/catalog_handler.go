package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ======================================================
// CATEGORIES
// ======================================================

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := h.db.Order("name").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Failed to list categories.")
		return
	}
	httpresp.List(c, categories)
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	category := models.ServiceCategory{Name: req.Name}
	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "Failed to create category.")
		return
	}

	httpresp.Created(c, category)
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	q := h.db.Preload("Category").Order("name")

	if cat := c.Query("category_id"); cat != "" {
		if v, err := strconv.ParseUint(cat, 10, 64); err == nil {
			q = q.Where("category_id = ?", uint(v))
		}
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

type ServiceRequest struct {
	CategoryID   uint            `json:"category_id" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Gender       string          `json:"gender"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	DurationMin  int             `json:"duration_min"`
	Notes        string          `json:"notes"`
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	svc := models.Service{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Gender:       req.Gender,
		DefaultPrice: req.DefaultPrice,
		DurationMin:  req.DurationMin,
		Notes:        req.Notes,
	}
	if svc.Gender == "" {
		svc.Gender = "any"
	}
	if svc.DurationMin == 0 {
		svc.DurationMin = 30
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	svc.CategoryID = req.CategoryID
	svc.Name = req.Name
	svc.Gender = req.Gender
	svc.DefaultPrice = req.DefaultPrice
	svc.DurationMin = req.DurationMin
	svc.Notes = req.Notes

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	httpresp.OK(c, svc)
}

// ======================================================
// PACKAGES
// ======================================================

func (h *CatalogHandler) ListPackages(c *gin.Context) {
	var packages []models.Package
	if err := h.db.Preload("Items.Service").Order("name").Find(&packages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_packages", "Failed to list packages.")
		return
	}
	httpresp.List(c, packages)
}

type PackageItemRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Sessions  int  `json:"sessions" binding:"required,min=1"`
}

type PackageRequest struct {
	Name  string               `json:"name" binding:"required"`
	Price decimal.Decimal      `json:"price"`
	Notes string               `json:"notes"`
	Items []PackageItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	pkg := models.Package{
		Name:  req.Name,
		Price: req.Price,
		Notes: req.Notes,
	}
	for _, it := range req.Items {
		pkg.Items = append(pkg.Items, models.PackageItem{
			ServiceID: it.ServiceID,
			Sessions:  it.Sessions,
		})
	}

	if err := h.db.Create(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_create_package", "Failed to create package.")
		return
	}

	httpresp.Created(c, pkg)
}

// ======================================================
// PACKAGE PURCHASE
// ======================================================

type PurchasePackageRequest struct {
	ClientID  uint             `json:"client_id" binding:"required"`
	PackageID uint             `json:"package_id" binding:"required"`
	PricePaid *decimal.Decimal `json:"price_paid"`
	Notes     string           `json:"notes"`
}

// PurchasePackage sells a package to a client. Each package line is
// copied into a client package item carrying its full session count.
func (h *CatalogHandler) PurchasePackage(c *gin.Context) {
	var req PurchasePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var pkg models.Package
	if err := h.db.Preload("Items").First(&pkg, req.PackageID).Error; err != nil {
		httperr.NotFound(c, "package_not_found", "Package not found.")
		return
	}

	pricePaid := pkg.Price
	if req.PricePaid != nil {
		pricePaid = *req.PricePaid
	}

	cp := models.ClientPackage{
		ClientID:  req.ClientID,
		PackageID: req.PackageID,
		PricePaid: pricePaid,
		Notes:     req.Notes,
		Active:    true,
	}
	for _, it := range pkg.Items {
		cp.Items = append(cp.Items, models.ClientPackageItem{
			PackageItemID:     it.ID,
			RemainingSessions: it.Sessions,
		})
	}

	if err := h.db.Create(&cp).Error; err != nil {
		httperr.Internal(c, "failed_to_purchase_package", "Failed to purchase package.")
		return
	}

	httpresp.Created(c, cp)
}
