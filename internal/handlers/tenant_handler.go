// tenant_handler.go
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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentfolio/internal/services"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/localnerve/rentfolio/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TenantHandler handles tenant routes
type TenantHandler struct {
	DB *gorm.DB
}

// TenantCreateBody is the request body for creating a tenant
type TenantCreateBody struct {
	Name           string          `json:"name" validate:"required"`
	LeaseStart     time.Time       `json:"lease_start" validate:"required"`
	LeaseEnd       time.Time       `json:"lease_end" validate:"required"`
	NextPaymentDue *time.Time      `json:"next_payment_due"`
	MonthlyRent    decimal.Decimal `json:"monthly_rent"`
}

// TenantRenewBody is the request body for renewing a lease
type TenantRenewBody struct {
	ExtendedDate time.Time `json:"extended_date" validate:"required"`
}

// TenantRoomBody is the request body for attaching a room to a tenant
type TenantRoomBody struct {
	RoomID types.FlexUint64 `json:"room_id"`
}

// ListTenants handles GET /api/tenants
// @Summary List tenants
// @Description List all tenants ordered by id
// @Tags Tenants
// @Produce json
// @Success 200 {array} models.Tenant
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tenants [get]
func (h *TenantHandler) ListTenants(c *fiber.Ctx) error {
	tenants, err := services.ListTenants(h.DB)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tenants)
}

// CreateTenant handles POST /api/tenants
// @Summary Create a tenant
// @Description Create a tenant with lease dates and monthly rent
// @Tags Tenants
// @Accept json
// @Produce json
// @Param body body TenantCreateBody true "Tenant to create"
// @Success 201 {object} models.Tenant
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /tenants [post]
func (h *TenantHandler) CreateTenant(c *fiber.Ctx) error {
	var body TenantCreateBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}
	if err := validateBody(&body); err != nil {
		return err
	}

	tenant, err := services.CreateTenant(h.DB, services.TenantInput{
		Name:           body.Name,
		LeaseStart:     body.LeaseStart,
		LeaseEnd:       body.LeaseEnd,
		NextPaymentDue: body.NextPaymentDue,
		MonthlyRent:    body.MonthlyRent,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// GetTenant handles GET /api/tenants/:id
// @Summary Get a tenant
// @Tags Tenants
// @Produce json
// @Param id path int true "Tenant ID"
// @Success 200 {object} models.Tenant
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	tenant, err := services.GetTenant(h.DB, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tenant)
}

// DeleteTenant handles DELETE /api/tenants/:id
// @Summary Delete a tenant
// @Description Delete a tenant, releasing any rooms and property memberships
// @Tags Tenants
// @Produce json
// @Param id path int true "Tenant ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := services.DeleteTenant(h.DB, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}

// RenewLease handles POST /api/tenants/:id/renew
// @Summary Renew a lease
// @Description Extend the lease end date, which must be after the current end
// @Tags Tenants
// @Accept json
// @Produce json
// @Param id path int true "Tenant ID"
// @Param body body TenantRenewBody true "New lease end date"
// @Success 200 {object} models.Tenant
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{id}/renew [post]
func (h *TenantHandler) RenewLease(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var body TenantRenewBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}
	if err := validateBody(&body); err != nil {
		return err
	}

	tenant, err := services.RenewLease(h.DB, id, body.ExtendedDate)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tenant)
}

// AttachRoom handles POST /api/tenants/:id/room
// @Summary Attach a room to a tenant
// @Description Link an unoccupied unit room to the tenant and label both sides
// @Tags Tenants
// @Accept json
// @Produce json
// @Param id path int true "Tenant ID"
// @Param body body TenantRoomBody true "Room to attach"
// @Success 200 {object} models.Tenant
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{id}/room [post]
func (h *TenantHandler) AttachRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var body TenantRoomBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}

	if err := services.AttachRoomToTenant(h.DB, id, body.RoomID.Uint64()); err != nil {
		return err
	}

	tenant, err := services.GetTenant(h.DB, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tenant)
}

// DetachRoom handles DELETE /api/tenants/:id/room
// @Summary Detach a tenant's room
// @Description Clear the tenant's room link and unit label
// @Tags Tenants
// @Produce json
// @Param id path int true "Tenant ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{id}/room [delete]
func (h *TenantHandler) DetachRoom(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := services.DetachRoomFromTenant(h.DB, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}
