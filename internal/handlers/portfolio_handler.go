// portfolio_handler.go
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
	"github.com/localnerve/rentfolio/internal/models"
	"github.com/localnerve/rentfolio/internal/services"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/localnerve/rentfolio/internal/utils"
	"gorm.io/gorm"
)

// PortfolioHandler handles lease manager routes
type PortfolioHandler struct {
	DB *gorm.DB
}

// ManagerCreateBody is the request body for creating a lease manager
type ManagerCreateBody struct {
	Name string `json:"name" validate:"required"`
}

// ManagerPropertyBody is the request body for adding a property to a portfolio
type ManagerPropertyBody struct {
	PropertyID *types.FlexUint64 `json:"property_id"`
}

// ExpiryReportBody is the request body for a lease expiry report
type ExpiryReportBody struct {
	Start      time.Time                        `json:"start" validate:"required"`
	End        time.Time                        `json:"end" validate:"required"`
	PropertyID types.FlexList[types.FlexUint64] `json:"property_id"`
}

// ManagerView is the read shape for a lease manager with its portfolio
type ManagerView struct {
	models.LeaseManager
	Properties []models.Property `json:"properties"`
}

// ListManagers handles GET /api/managers
// @Summary List lease managers
// @Tags Managers
// @Produce json
// @Success 200 {array} models.LeaseManager
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /managers [get]
func (h *PortfolioHandler) ListManagers(c *fiber.Ctx) error {
	managers, err := services.ListManagers(h.DB)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(managers)
}

// CreateManager handles POST /api/managers
// @Summary Create a lease manager
// @Tags Managers
// @Accept json
// @Produce json
// @Param body body ManagerCreateBody true "Manager to create"
// @Success 201 {object} models.LeaseManager
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /managers [post]
func (h *PortfolioHandler) CreateManager(c *fiber.Ctx) error {
	var body ManagerCreateBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}
	if err := validateBody(&body); err != nil {
		return err
	}

	manager, err := services.CreateManager(h.DB, body.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(manager)
}

// GetManager handles GET /api/managers/:id
// @Summary Get a lease manager with portfolio
// @Tags Managers
// @Produce json
// @Param id path int true "Manager ID"
// @Success 200 {object} ManagerView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /managers/{id} [get]
func (h *PortfolioHandler) GetManager(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	manager, err := services.GetManager(h.DB, id)
	if err != nil {
		return err
	}
	properties, err := services.ManagerProperties(h.DB, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(ManagerView{
		LeaseManager: *manager,
		Properties:   properties,
	})
}

// DeleteManager handles DELETE /api/managers/:id
// @Summary Delete a lease manager
// @Description Delete a manager and its snapshots; properties survive
// @Tags Managers
// @Produce json
// @Param id path int true "Manager ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /managers/{id} [delete]
func (h *PortfolioHandler) DeleteManager(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := services.DeleteManager(h.DB, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}

// AddProperty handles POST /api/managers/:id/properties
// @Summary Add a property to a portfolio
// @Description A property belongs to at most one portfolio at a time
// @Tags Managers
// @Accept json
// @Produce json
// @Param id path int true "Manager ID"
// @Param body body ManagerPropertyBody true "Property to add"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /managers/{id}/properties [post]
func (h *PortfolioHandler) AddProperty(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var body ManagerPropertyBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}

	var propertyID *uint64
	if body.PropertyID != nil {
		v := body.PropertyID.Uint64()
		propertyID = &v
	}

	if err := services.AddProperty(h.DB, id, propertyID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}

// RemoveProperty handles DELETE /api/managers/:id/properties/:propertyId
// @Summary Remove a property from a portfolio
// @Tags Managers
// @Produce json
// @Param id path int true "Manager ID"
// @Param propertyId path int true "Property ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /managers/{id}/properties/{propertyId} [delete]
func (h *PortfolioHandler) RemoveProperty(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	propertyID, err := parseIDParam(c, "propertyId")
	if err != nil {
		return err
	}

	if err := services.RemoveProperty(h.DB, id, &propertyID); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, id, 1)
}

// GetVacancies handles GET /api/managers/:id/vacancies
// @Summary Find vacant properties in a portfolio
// @Description Properties whose assigned unit count is below total units
// @Tags Managers
// @Produce json
// @Param id path int true "Manager ID"
// @Success 200 {array} models.Property
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /managers/{id}/vacancies [get]
func (h *PortfolioHandler) GetVacancies(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	properties, err := services.FindVacantProperties(h.DB, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(properties)
}

// GetOverdue handles GET /api/managers/:id/overdue
// @Summary List overdue tenants across a portfolio
// @Description Tenants whose next payment due date has passed, in property order
// @Tags Managers
// @Produce json
// @Param id path int true "Manager ID"
// @Success 200 {array} models.Tenant
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /managers/{id}/overdue [get]
func (h *PortfolioHandler) GetOverdue(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	tenants, err := services.OverdueTenants(h.DB, id, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tenants)
}

// GetRevenue handles GET /api/managers/:id/revenue
// @Summary Total monthly revenue of a portfolio
// @Description Sum of rents from tenants with a unit across managed properties
// @Tags Managers
// @Produce json
// @Param id path int true "Manager ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /managers/{id}/revenue [get]
func (h *PortfolioHandler) GetRevenue(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	total, err := services.TotalRevenue(h.DB, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"manager_id":    id,
		"total_revenue": total,
	})
}

// CreateExpiryReport handles POST /api/managers/:id/reports/lease-expiry
// @Summary Run a lease expiry report
// @Description Tenants of one or more managed properties whose lease ends within the range, inclusive
// @Tags Managers
// @Accept json
// @Produce json
// @Param id path int true "Manager ID"
// @Param body body ExpiryReportBody true "Report range and property"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /managers/{id}/reports/lease-expiry [post]
func (h *PortfolioHandler) CreateExpiryReport(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var body ExpiryReportBody
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("invalid input")
	}
	if err := validateBody(&body); err != nil {
		return err
	}

	propertyIDs := make([]uint64, 0, len(body.PropertyID))
	for _, flexID := range body.PropertyID.Slice() {
		propertyIDs = append(propertyIDs, flexID.Uint64())
	}

	tenants, snapshot, err := services.LeaseExpiryReport(h.DB, id, body.Start, body.End, propertyIDs)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reference": snapshot.Reference,
		"tenants":   tenants,
	})
}

// ListReports handles GET /api/managers/:id/reports
// @Summary List report snapshots for a manager
// @Tags Managers
// @Produce json
// @Param id path int true "Manager ID"
// @Success 200 {array} models.ReportSnapshot
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /managers/{id}/reports [get]
func (h *PortfolioHandler) ListReports(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	snapshots, err := services.ListSnapshots(h.DB, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(snapshots)
}
