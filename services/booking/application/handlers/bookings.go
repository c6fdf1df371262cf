package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lendshare/pkg/errhttp"
	"github.com/ghuser/lendshare/pkg/httpx"
	"github.com/ghuser/lendshare/pkg/sharer"
	pkgvalidator "github.com/ghuser/lendshare/pkg/validator"
	appsvcs "github.com/ghuser/lendshare/services/booking/application/services"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0" example:"1"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
} // @name CreateBookingRequest

// BookerResponse is the short booker view embedded in booking reads.
type BookerResponse struct {
	ID   int64  `json:"id" example:"3"`
	Name string `json:"name" example:"Bob"`
} // @name BookerResponse

// BookedItemResponse is the short item view embedded in booking reads.
type BookedItemResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Drill"`
} // @name BookedItemResponse

// BookingResponse is the JSON view of a booking with its item and booker.
type BookingResponse struct {
	ID     int64              `json:"id" example:"4"`
	Start  time.Time          `json:"start"`
	End    time.Time          `json:"end"`
	Status string             `json:"status" example:"WAITING"`
	Booker BookerResponse     `json:"booker"`
	Item   BookedItemResponse `json:"item"`
} // @name BookingResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"booking not found"`
} // @name ErrorResponse

func toBookingResponse(v appsvcs.BookingView) BookingResponse {
	return BookingResponse{
		ID:     v.Booking.ID,
		Start:  v.Booking.Start,
		End:    v.Booking.End,
		Status: string(v.Booking.Status),
		Booker: BookerResponse{ID: v.Booker.ID, Name: v.Booker.Name},
		Item:   BookedItemResponse{ID: v.Item.ID, Name: v.Item.Name},
	}
}

// BookingHandler handles the /bookings endpoints.
type BookingHandler struct {
	svc *appsvcs.Services
}

// NewBookingHandler returns a BookingHandler backed by the given services.
func NewBookingHandler(svc *appsvcs.Services) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Create books an item for the calling user. The booking starts WAITING.
//
//	@Summary	Create booking
//	@Tags		bookings
//	@Accept		json
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int						true	"Caller user id"
//	@Param		request				body		CreateBookingRequest	true	"Booking window"
//	@Success	201					{object}	BookingResponse
//	@Failure	400					{object}	ErrorResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/bookings [post]
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateBookingRequest](w, r)
	if !ok {
		return
	}

	view, err := h.svc.Booking.Create(r.Context(), callerID, req.ItemID, req.Start, req.End)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toBookingResponse(*view))
}

// Approve lets the item owner approve or reject a waiting booking.
//
//	@Summary	Decide booking
//	@Tags		bookings
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int		true	"Caller user id"
//	@Param		id					path		int		true	"Booking id"
//	@Param		approved			query		bool	true	"true to approve, false to reject"
//	@Success	200					{object}	BookingResponse
//	@Failure	400					{object}	ErrorResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/bookings/{id} [patch]
func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid approved parameter")
		return
	}

	view, err := h.svc.Booking.Approve(r.Context(), id, callerID, approved)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toBookingResponse(*view))
}

// Get returns a booking to its booker or the item's owner.
//
//	@Summary	Get booking
//	@Tags		bookings
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int	true	"Caller user id"
//	@Param		id					path		int	true	"Booking id"
//	@Success	200					{object}	BookingResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/bookings/{id} [get]
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.svc.Booking.Get(r.Context(), id, callerID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toBookingResponse(*view))
}

// ListOwn returns the caller's bookings filtered by state.
//
//	@Summary	List own bookings
//	@Tags		bookings
//	@Produce	json
//	@Param		X-Sharer-User-Id	header	int		true	"Caller user id"
//	@Param		state				query	string	false	"ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"	default(ALL)
//	@Success	200					{array}	BookingResponse
//	@Failure	400					{object}	ErrorResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/bookings [get]
func (h *BookingHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views, err := h.svc.Booking.GetUserBookings(r.Context(), callerID, r.URL.Query().Get("state"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toBookingResponses(views))
}

// ListForOwner returns bookings of the caller's items filtered by state.
//
//	@Summary	List bookings of own items
//	@Tags		bookings
//	@Produce	json
//	@Param		X-Sharer-User-Id	header	int		true	"Caller user id"
//	@Param		state				query	string	false	"ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"	default(ALL)
//	@Success	200					{array}	BookingResponse
//	@Failure	400					{object}	ErrorResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/bookings/owner [get]
func (h *BookingHandler) ListForOwner(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views, err := h.svc.Booking.GetOwnerBookings(r.Context(), callerID, r.URL.Query().Get("state"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toBookingResponses(views))
}

func toBookingResponses(views []appsvcs.BookingView) []BookingResponse {
	out := make([]BookingResponse, len(views))
	for i, v := range views {
		out[i] = toBookingResponse(v)
	}
	return out
}

// pathID parses a numeric chi URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
