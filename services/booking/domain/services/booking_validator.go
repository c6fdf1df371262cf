// Package services contains stateless domain services for the booking
// lifecycle. Domain services enforce business rules that operate purely on
// domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"time"

	"github.com/ghuser/lendshare/services/booking/domain"
)

// ValidateWindow enforces the booking creation invariants:
//   - start and end must be set
//   - start must be strictly before end
//   - neither bound may lie strictly before now
func ValidateWindow(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domain.ErrInvalidWindow
	}
	if !start.Before(end) {
		return domain.ErrInvalidWindow
	}
	if start.Before(now) || end.Before(now) {
		return domain.ErrInvalidWindow
	}
	return nil
}
