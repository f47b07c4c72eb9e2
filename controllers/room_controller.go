package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"luxury-stay-backend/models"
	"luxury-stay-backend/services"
	"luxury-stay-backend/utils"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Rooms: svc}
}

// List handles GET /api/rooms. Maintenance and cleaning rooms never
// appear; with checkInDate/checkOutDate query params the result is
// narrowed to rooms free for that range.
func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Rooms.List(services.RoomFilter{
		Status:       c.Query("status"),
		Type:         c.Query("type"),
		CheckInDate:  c.Query("checkInDate"),
		CheckOutDate: c.Query("checkOutDate"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// Create handles POST /api/rooms (staff).
func (rc *RoomController) Create(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	if err := rc.Rooms.Create(&room); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// Update handles PUT /api/rooms/:id (staff).
func (rc *RoomController) Update(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	var updates models.Room
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	room, err := rc.Rooms.Update(id, &updates)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /api/rooms/:id (staff).
func (rc *RoomController) Delete(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}

	if err := rc.Rooms.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room deleted")
}

func roomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, utils.NewValidationError("Invalid room id"))
		return 0, false
	}
	return uint(id), true
}
