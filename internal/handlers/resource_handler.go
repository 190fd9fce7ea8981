package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/httpresp"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

type ResourceHandler struct {
	db *gorm.DB
}

func NewResourceHandler(db *gorm.DB) *ResourceHandler {
	return &ResourceHandler{db: db}
}

// ======================================================
// ROOMS
// ======================================================

type RoomRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

func (h *ResourceHandler) ListRooms(c *gin.Context) {
	var rooms []models.Room
	if err := h.db.Order("name").Find(&rooms).Error; err != nil {
		httperr.Internal(c, "failed_to_list_rooms", "Failed to list rooms.")
		return
	}
	httpresp.List(c, rooms)
}

func (h *ResourceHandler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	room := models.Room{Name: req.Name, Active: true}
	if req.Active != nil {
		room.Active = *req.Active
	}

	if err := h.db.Create(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_create_room", "Failed to create room.")
		return
	}

	httpresp.Created(c, room)
}

func (h *ResourceHandler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid room id.")
		return
	}

	var room models.Room
	if err := h.db.First(&room, uint(id)).Error; err != nil {
		httperr.NotFound(c, "room_not_found", "Room not found.")
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	room.Name = req.Name
	if req.Active != nil {
		room.Active = *req.Active
	}

	if err := h.db.Save(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_update_room", "Failed to update room.")
		return
	}

	httpresp.OK(c, room)
}

// ======================================================
// MACHINES
// ======================================================

type MachineRequest struct {
	Name         string `json:"name" binding:"required"`
	Manufacturer string `json:"manufacturer"`
	SerialNumber string `json:"serial_number"`
	Active       *bool  `json:"active"`
}

func (h *ResourceHandler) ListMachines(c *gin.Context) {
	var machines []models.Machine
	if err := h.db.Order("name").Find(&machines).Error; err != nil {
		httperr.Internal(c, "failed_to_list_machines", "Failed to list machines.")
		return
	}
	httpresp.List(c, machines)
}

func (h *ResourceHandler) CreateMachine(c *gin.Context) {
	var req MachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	machine := models.Machine{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		SerialNumber: req.SerialNumber,
		Active:       true,
	}
	if req.Active != nil {
		machine.Active = *req.Active
	}

	if err := h.db.Create(&machine).Error; err != nil {
		httperr.Internal(c, "failed_to_create_machine", "Failed to create machine.")
		return
	}

	httpresp.Created(c, machine)
}

func (h *ResourceHandler) UpdateMachine(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid machine id.")
		return
	}

	var machine models.Machine
	if err := h.db.First(&machine, uint(id)).Error; err != nil {
		httperr.NotFound(c, "machine_not_found", "Machine not found.")
		return
	}

	var req MachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	machine.Name = req.Name
	machine.Manufacturer = req.Manufacturer
	machine.SerialNumber = req.SerialNumber
	if req.Active != nil {
		machine.Active = *req.Active
	}

	if err := h.db.Save(&machine).Error; err != nil {
		httperr.Internal(c, "failed_to_update_machine", "Failed to update machine.")
		return
	}

	httpresp.OK(c, machine)
}
