// property_handler.go
//
// Property rental back office data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of rentfolio.
// rentfolio is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// rentfolio is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with rentfolio.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentfolio/internal/models"
	"github.com/localnerve/rentfolio/internal/services"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/localnerve/rentfolio/internal/utils"
	"gorm.io/gorm"
)

// PropertyHandler handles property routes
type PropertyHandler struct {
	DB *gorm.DB
}

// PropertyCreateBody is the request body for creating a property
type PropertyCreateBody struct {
	Address      string `json:"address" validate:"required"`
	PropertyType string `json:"property_type"`
	Units        int    `json:"units" validate:"required"`
}

// PropertyAssignBody is the request body for assigning a tenant to a property
type PropertyAssignBody struct {
	TenantID types.FlexUint64  `json:"tenant_id"`
	RoomID   *types.FlexUint64 `json:"room_id"`
}

// PropertyRoomBody is the request body for attaching a room to a property
type PropertyRoomBody struct {
	RoomID types.FlexUint64 `json:"room_id"`
}

// PropertyView is the extended read shape for properties
type PropertyView struct {
	models.Property
	OccupancyRate float64         `json:"occupancy_rate"`
	Tenants       []models.Tenant `json:"tenants"`
}

// buildPropertyView assembles the read shape for one property
func buildPropertyView(db *gorm.DB, property *models.Property) (*PropertyView, error) {
	rate, err := services.OccupancyRate(db, property.PropertyID)
	if err != nil {
		return nil, err
	}
	tenants, err := services.PropertyTenants(db, property.PropertyID)
	if err != nil {
		return nil, err
	}
	return &PropertyView{
		Property:      *property,
		OccupancyRate: rate,
		Tenants:       tenants,
	}, nil
}

// ListProperties handles GET /api/properties
// @Summary List properties
// @Description List all properties with occupancy rate and tenants
// @Tags Properties
// @Produce json
// @Success 200 {array} PropertyView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties [get]
func (h *PropertyHandler) ListProperties(c *fiber.Ctx) error {
	properties, err := services.ListProperties(h.DB)
	if err != nil {
		return err
	}

	views := make([]PropertyView, 0, len(properties))
	for i := range properties {
		view, err := buildPropertyView(h.DB, &properties[i])
		if err != nil {
			return err
		}
		views = append(views, *view)
	}
	return c.Status(fiber.StatusOK).JSON(views)
}

// CreateProperty handles POST /api/properties
// @Summary Create a property
// @Description Create a property with a unique address, a type, and 1 to 100 units
// @Tags Properties
// @Accept json
// @Produce json
// @Param body body PropertyCreateBody true "Property to create"
// @Success 201 {object} models.Property
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	var body PropertyCreateBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}
	if err := validateBody(&body); err != nil {
		return err
	}

	property, err := services.CreateProperty(h.DB, services.PropertyInput{
		Address:      body.Address,
		PropertyType: body.PropertyType,
		Units:        body.Units,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// GetProperty handles GET /api/properties/:id
// @Summary Get a property
// @Description Get a property with occupancy rate and tenants
// @Tags Properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} PropertyView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	property, err := services.GetProperty(h.DB, id)
	if err != nil {
		return err
	}

	view, err := buildPropertyView(h.DB, property)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// DeleteProperty handles DELETE /api/properties/:id
// @Summary Delete a property
// @Description Delete a property, its rooms, and its memberships; tenants survive
// @Tags Properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := services.DeleteProperty(h.DB, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}

// AssignTenant handles POST /api/properties/:id/tenants
// @Summary Assign a tenant to a property
// @Description Assign a tenant into a specific unoccupied room, one transaction
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path int true "Property ID"
// @Param body body PropertyAssignBody true "Tenant and room"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/tenants [post]
func (h *PropertyHandler) AssignTenant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var body PropertyAssignBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}

	var roomID *uint64
	if body.RoomID != nil {
		v := body.RoomID.Uint64()
		roomID = &v
	}

	if err := services.AssignTenant(h.DB, id, body.TenantID.Uint64(), roomID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}

// ReleaseTenant handles DELETE /api/properties/:id/tenants/:tenantId
// @Summary Release a tenant from a property
// @Description Remove the tenant's membership, rooms, and unit label
// @Tags Properties
// @Produce json
// @Param id path int true "Property ID"
// @Param tenantId path int true "Tenant ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/tenants/{tenantId} [delete]
func (h *PropertyHandler) ReleaseTenant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	tenantID, err := parseIDParam(c, "tenantId")
	if err != nil {
		return err
	}

	if err := services.ReleaseTenant(h.DB, id, tenantID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}

// AttachRoom handles POST /api/properties/:id/rooms
// @Summary Attach a room to a property
// @Description Attach an existing unit room, bounded by the property's unit count
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path int true "Property ID"
// @Param body body PropertyRoomBody true "Room to attach"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/rooms [post]
func (h *PropertyHandler) AttachRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var body PropertyRoomBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}

	if err := services.AttachRoom(h.DB, id, body.RoomID.Uint64()); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}

// DetachRoom handles DELETE /api/properties/:id/rooms/:roomId
// @Summary Detach a room from a property
// @Description Unconditionally detach the room, clearing its tenant link too
// @Tags Properties
// @Produce json
// @Param id path int true "Property ID"
// @Param roomId path int true "Room ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/rooms/{roomId} [delete]
func (h *PropertyHandler) DetachRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	roomID, err := parseIDParam(c, "roomId")
	if err != nil {
		return err
	}

	if err := services.DetachRoom(h.DB, id, roomID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}
