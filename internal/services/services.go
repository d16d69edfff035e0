// Package services holds the business-rule layer of the rental back office.
// Functions take a *gorm.DB so callers can pass either a connection or an
// open transaction. Multi-record mutations run inside db.Transaction with
// row locks; errors bubble to the HTTP layer uncaught.
package services

import (
	"errors"
	"math"

	"github.com/localnerve/rentfolio/internal/types"
	"gorm.io/gorm"
)

// notFoundOr maps gorm's record-not-found to a domain not-found error and
// passes anything else through unchanged.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NewNotFoundError(format, args...)
	}
	return err
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
