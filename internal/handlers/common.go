// common.go
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
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentfolio/internal/types"
	"github.com/localnerve/rentfolio/internal/utils"
)

var validate = validator.New()

// parseIDParam parses a numeric route parameter into a uint64 id
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, types.NewValidationError("invalid %s: %s", name, c.Params(name))
	}
	return id, nil
}

// validateBody runs struct validation and folds failures into one message
func validateBody(body interface{}) error {
	if err := validate.Struct(body); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return types.NewValidationError("invalid field: %s", verrs[0].Field())
		}
		return types.NewValidationError("invalid input")
	}
	return nil
}

// ErrorHandler translates service and middleware errors into JSON responses.
// Wired as the fiber app ErrorHandler so handlers can return errors as-is.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	errorType := "unknown"
	message := err.Error()

	var domainErr *types.DomainError
	var customErr *types.CustomError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &domainErr):
		message = domainErr.Message
		errorType = string(domainErr.Kind)
		switch domainErr.Kind {
		case types.KindValidation:
			code = fiber.StatusBadRequest
		case types.KindCapacity, types.KindConflict:
			code = fiber.StatusConflict
		case types.KindNotFound:
			code = fiber.StatusNotFound
		}
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return utils.ErrorResponse(c, message, code, errorType)
}
