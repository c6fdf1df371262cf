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
	appsvcs "github.com/ghuser/lendshare/services/request/application/services"
)

// CreateRequestRequest is the request body for POST /requests.
type CreateRequestRequest struct {
	Description string `json:"description" validate:"required,max=1000" example:"Looking for a cordless drill"`
} // @name CreateRequestRequest

// RequestItemResponse is the view of a catalog item offered against a request.
type RequestItemResponse struct {
	ID          int64  `json:"id" example:"3"`
	Name        string `json:"name" example:"Drill"`
	Description string `json:"description" example:"Cordless, two batteries"`
	Available   bool   `json:"available" example:"true"`
	OwnerID     int64  `json:"ownerId" example:"2"`
	RequestID   int64  `json:"requestId" example:"1"`
} // @name RequestItemResponse

// RequestResponse is the JSON view of an item request with its offered items.
type RequestResponse struct {
	ID          int64                 `json:"id" example:"1"`
	Description string                `json:"description" example:"Looking for a cordless drill"`
	Created     time.Time             `json:"created"`
	Items       []RequestItemResponse `json:"items"`
} // @name RequestResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"request not found"`
} // @name ErrorResponse

func toRequestResponse(v appsvcs.RequestView) RequestResponse {
	items := make([]RequestItemResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = RequestItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
			OwnerID:     item.OwnerID,
		}
		if item.RequestID != nil {
			items[i].RequestID = *item.RequestID
		}
	}
	return RequestResponse{
		ID:          v.Request.ID,
		Description: v.Request.Description,
		Created:     v.Request.Created,
		Items:       items,
	}
}

// RequestHandler handles the /requests endpoints.
type RequestHandler struct {
	svc *appsvcs.Services
}

// NewRequestHandler returns a RequestHandler backed by the given services.
func NewRequestHandler(svc *appsvcs.Services) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// Create posts a new item request on behalf of the calling user.
//
//	@Summary	Create item request
//	@Tags		requests
//	@Accept		json
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int						true	"Caller user id"
//	@Param		request				body		CreateRequestRequest	true	"Request description"
//	@Success	201					{object}	RequestResponse
//	@Failure	400					{object}	ErrorResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/requests [post]
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateRequestRequest](w, r)
	if !ok {
		return
	}

	created, err := h.svc.Request.Create(r.Context(), callerID, req.Description)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, RequestResponse{
		ID:          created.ID,
		Description: created.Description,
		Created:     created.Created,
		Items:       []RequestItemResponse{},
	})
}

// ListOwn returns the caller's requests, newest first, with offered items.
//
//	@Summary	List own requests
//	@Tags		requests
//	@Produce	json
//	@Param		X-Sharer-User-Id	header	int	true	"Caller user id"
//	@Success	200					{array}	RequestResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/requests [get]
func (h *RequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views, err := h.svc.Request.GetUserRequests(r.Context(), callerID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toRequestResponses(views))
}

// ListAll returns a page of other users' requests, newest first.
//
//	@Summary	Browse other users' requests
//	@Tags		requests
//	@Produce	json
//	@Param		X-Sharer-User-Id	header	int	true	"Caller user id"
//	@Param		from				query	int	false	"Zero-based index of the first element"	default(0)
//	@Param		size				query	int	false	"Page size"								default(10)
//	@Success	200					{array}	RequestResponse
//	@Failure	400					{object}	ErrorResponse
//	@Router		/requests/all [get]
func (h *RequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	from, ok := queryInt(w, r, "from", 0)
	if !ok {
		return
	}
	size, ok := queryInt(w, r, "size", 10)
	if !ok {
		return
	}

	views, err := h.svc.Request.GetAll(r.Context(), callerID, from, size)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toRequestResponses(views))
}

// Get returns a single request with its offered items.
//
//	@Summary	Get request
//	@Tags		requests
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int	true	"Caller user id"
//	@Param		id					path		int	true	"Request id"
//	@Success	200					{object}	RequestResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/requests/{id} [get]
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.svc.Request.GetByID(r.Context(), id, callerID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toRequestResponse(*view))
}

func toRequestResponses(views []appsvcs.RequestView) []RequestResponse {
	out := make([]RequestResponse, len(views))
	for i, v := range views {
		out[i] = toRequestResponse(v)
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

// queryInt parses an optional numeric query parameter, writing a 400 on failure.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}
