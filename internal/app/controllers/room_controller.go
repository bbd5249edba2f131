package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/services"
	"github.com/yigit/hostel/internal/middleware"
)

// RoomController handles room endpoints
type RoomController struct {
	roomService *services.RoomService
	logger      zerolog.Logger
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService *services.RoomService, logger zerolog.Logger) *RoomController {
	return &RoomController{
		roomService: roomService,
		logger:      logger,
	}
}

// ListRooms lists rooms, optionally of one type
// @Summary List rooms
// @Description Lists rooms ordered by number. type=All or no type lists every room.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param type query string false "Room type"
// @Success 200 {object} dto.APIResponse{data=[]models.Room}
// @Router /rooms [get]
func (c *RoomController) ListRooms(ctx *gin.Context) {
	rooms, err := c.roomService.ListRooms(ctx.Request.Context(), ctx.Query("type"))
	if err != nil {
		c.logger.Error().Err(err).Msg("Returning empty room list")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(rooms))
}

// ListRoomTypes lists distinct room types
func (c *RoomController) ListRoomTypes(ctx *gin.Context) {
	types, err := c.roomService.ListRoomTypes(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Returning empty room type list")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(types))
}

// ListAvailableRooms lists room numbers that accept students
func (c *RoomController) ListAvailableRooms(ctx *gin.Context) {
	rooms, err := c.roomService.ListAvailableRooms(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Returning empty available room list")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(rooms))
}

// GetRoom returns one room
func (c *RoomController) GetRoom(ctx *gin.Context) {
	room, err := c.roomService.GetRoom(ctx.Request.Context(), ctx.Param("roomNo"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(room))
}

// CreateRoom adds a room
// @Summary Add a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room"
// @Success 201 {object} dto.APIResponse{data=models.Room}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Room number already exists"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	room, err := c.roomService.AddRoom(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Room added successfully.", room))
}

// UpdateRoom edits a room's attributes
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roomNo path string true "Room number"
// @Param request body dto.UpdateRoomRequest true "Room attributes"
// @Success 200 {object} dto.APIResponse{data=models.Room}
// @Router /rooms/{roomNo} [put]
func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	var req dto.UpdateRoomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	room, err := c.roomService.UpdateRoom(ctx.Request.Context(), ctx.Param("roomNo"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Room updated successfully.", room))
}

// DeleteRoom removes an empty room
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param roomNo path string true "Room number"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Room still has students"
// @Router /rooms/{roomNo} [delete]
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	if err := c.roomService.DeleteRoom(ctx.Request.Context(), ctx.Param("roomNo")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Room deleted successfully.", nil))
}
