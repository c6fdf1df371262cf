// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/lendshare/pkg/httpx"
	bookingdomain "github.com/ghuser/lendshare/services/booking/domain"
	itemdomain "github.com/ghuser/lendshare/services/item/domain"
	requestdomain "github.com/ghuser/lendshare/services/request/domain"
	userdomain "github.com/ghuser/lendshare/services/user/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

// mapErrorToStatus implements the error taxonomy: missing entities and denied
// reads are 404, duplicate email is 409, business-rule violations are 400.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, itemdomain.ErrItemNotFound),
		errors.Is(err, requestdomain.ErrRequestNotFound),
		errors.Is(err, bookingdomain.ErrBookingNotFound),
		errors.Is(err, bookingdomain.ErrNoItems),
		errors.Is(err, bookingdomain.ErrAccessDenied),
		errors.Is(err, itemdomain.ErrAccessDenied):
		return http.StatusNotFound // 404

	case errors.Is(err, userdomain.ErrDuplicateEmail):
		return http.StatusConflict // 409

	case errors.Is(err, itemdomain.ErrInvalidItem),
		errors.Is(err, itemdomain.ErrCommentNotAllowed),
		errors.Is(err, requestdomain.ErrInvalidPagination),
		errors.Is(err, bookingdomain.ErrItemUnavailable),
		errors.Is(err, bookingdomain.ErrSelfBooking),
		errors.Is(err, bookingdomain.ErrInvalidWindow),
		errors.Is(err, bookingdomain.ErrNotOwner),
		errors.Is(err, bookingdomain.ErrNotWaiting),
		errors.Is(err, bookingdomain.ErrUnknownState):
		return http.StatusBadRequest // 400

	default:
		return http.StatusInternalServerError // 500
	}
}
