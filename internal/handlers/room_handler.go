package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentfolio/internal/services"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/localnerve/rentfolio/internal/utils"
	"gorm.io/gorm"
)

// RoomHandler handles unit room routes
type RoomHandler struct {
	DB *gorm.DB
}

// RoomCreateBody is the request body for creating a unit room
type RoomCreateBody struct {
	UnitNumber string `json:"unit_number" validate:"required"`
}

// ListRooms handles GET /api/rooms
// @Summary List unit rooms
// @Tags Rooms
// @Produce json
// @Success 200 {array} models.UnitRoom
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := services.ListRooms(h.DB)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rooms)
}

// CreateRoom handles POST /api/rooms
// @Summary Create a unit room
// @Description Create a room with a globally unique unit number
// @Tags Rooms
// @Accept json
// @Produce json
// @Param body body RoomCreateBody true "Room to create"
// @Success 201 {object} models.UnitRoom
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	var body RoomCreateBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}
	if err := validateBody(&body); err != nil {
		return err
	}

	room, err := services.CreateRoom(h.DB, body.UnitNumber)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

// DeleteRoom handles DELETE /api/rooms/:id
// @Summary Delete a unit room
// @Tags Rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := services.DeleteRoom(h.DB, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}
