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
	appsvcs "github.com/ghuser/lendshare/services/item/application/services"
	"github.com/ghuser/lendshare/services/item/domain/models"
)

// CreateItemRequest is the request body for POST /items.
// Available is a pointer so an explicit false passes the required check.
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,max=255" example:"Drill"`
	Description string `json:"description" validate:"required,max=1000" example:"Cordless, two batteries"`
	Available   *bool  `json:"available" validate:"required" example:"true"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
} // @name CreateItemRequest

// UpdateItemRequest is the request body for PATCH /items/{id}.
// Absent fields are left untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Available   *bool   `json:"available"`
} // @name UpdateItemRequest

// CreateCommentRequest is the request body for POST /items/{id}/comment.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=1000" example:"Great drill, charged fast"`
} // @name CreateCommentRequest

// ItemResponse is the plain JSON view of an item.
type ItemResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Drill"`
	Description string `json:"description" example:"Cordless, two batteries"`
	Available   bool   `json:"available" example:"true"`
	OwnerID     int64  `json:"ownerId" example:"2"`
	RequestID   *int64 `json:"requestId,omitempty"`
} // @name ItemResponse

// BookingRefResponse is the short booking view embedded in owner reads.
type BookingRefResponse struct {
	ID       int64 `json:"id" example:"4"`
	BookerID int64 `json:"bookerId" example:"3"`
} // @name BookingRefResponse

// CommentResponse is the JSON view of a comment with its author name.
type CommentResponse struct {
	ID         int64     `json:"id" example:"1"`
	Text       string    `json:"text" example:"Great drill, charged fast"`
	AuthorName string    `json:"authorName" example:"Bob"`
	Created    time.Time `json:"created"`
} // @name CommentResponse

// ItemDetailResponse is the enriched item view: comments for everyone, the
// last and next approved bookings for the owner only.
type ItemDetailResponse struct {
	ItemResponse
	Comments    []CommentResponse   `json:"comments"`
	LastBooking *BookingRefResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingRefResponse `json:"nextBooking,omitempty"`
} // @name ItemDetailResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID,
		RequestID:   item.RequestID,
	}
}

func toCommentResponse(cv appsvcs.CommentView) CommentResponse {
	return CommentResponse{
		ID:         cv.Comment.ID,
		Text:       cv.Comment.Text,
		AuthorName: cv.AuthorName,
		Created:    cv.Comment.Created,
	}
}

func toBookingRefResponse(ref *appsvcs.BookingRef) *BookingRefResponse {
	if ref == nil {
		return nil
	}
	return &BookingRefResponse{ID: ref.ID, BookerID: ref.BookerID}
}

func toItemDetailResponse(v appsvcs.ItemView) ItemDetailResponse {
	comments := make([]CommentResponse, len(v.Comments))
	for i, cv := range v.Comments {
		comments[i] = toCommentResponse(cv)
	}
	return ItemDetailResponse{
		ItemResponse: toItemResponse(v.Item),
		Comments:     comments,
		LastBooking:  toBookingRefResponse(v.LastBooking),
		NextBooking:  toBookingRefResponse(v.NextBooking),
	}
}

// ItemHandler handles the /items endpoints.
type ItemHandler struct {
	svc *appsvcs.Services
}

// NewItemHandler returns an ItemHandler backed by the given services.
func NewItemHandler(svc *appsvcs.Services) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// Create lists a new item owned by the calling user.
//
//	@Summary	Create item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int					true	"Caller user id"
//	@Param		request				body		CreateItemRequest	true	"Item to list"
//	@Success	201					{object}	ItemResponse
//	@Failure	400					{object}	ErrorResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/items [post]
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), callerID, req.Name, req.Description, *req.Available, req.RequestID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

// Update partially updates an item. Owner only.
//
//	@Summary	Update item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int					true	"Caller user id"
//	@Param		id					path		int					true	"Item id"
//	@Param		request				body		UpdateItemRequest	true	"Fields to update"
//	@Success	200					{object}	ItemResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/items/{id} [patch]
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Update(r.Context(), id, callerID, req.Name, req.Description, req.Available)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// Get returns an item with comments, plus booking info for the owner.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int	true	"Caller user id"
//	@Param		id					path		int	true	"Item id"
//	@Success	200					{object}	ItemDetailResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.svc.Item.Get(r.Context(), id, callerID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemDetailResponse(*view))
}

// ListOwn returns all of the caller's items with comments and booking info.
//
//	@Summary	List own items
//	@Tags		items
//	@Produce	json
//	@Param		X-Sharer-User-Id	header	int	true	"Caller user id"
//	@Success	200					{array}	ItemDetailResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/items [get]
func (h *ItemHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views, err := h.svc.Item.GetUserItems(r.Context(), callerID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]ItemDetailResponse, len(views))
	for i, v := range views {
		out[i] = toItemDetailResponse(v)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Search returns available items matching the text query.
//
//	@Summary	Search items
//	@Tags		items
//	@Produce	json
//	@Param		text	query	string	true	"Search text; blank yields an empty list"
//	@Success	200		{array}	ItemResponse
//	@Router		/items/search [get]
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.Search(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}

// AddComment records post-rental feedback from the calling user.
//
//	@Summary	Comment on item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		X-Sharer-User-Id	header		int						true	"Caller user id"
//	@Param		id					path		int						true	"Item id"
//	@Param		request				body		CreateCommentRequest	true	"Comment text"
//	@Success	200					{object}	CommentResponse
//	@Failure	400					{object}	ErrorResponse
//	@Failure	404					{object}	ErrorResponse
//	@Router		/items/{id}/comment [post]
func (h *ItemHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	callerID, err := sharer.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateCommentRequest](w, r)
	if !ok {
		return
	}

	cv, err := h.svc.Item.AddComment(r.Context(), id, callerID, req.Text)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toCommentResponse(*cv))
}

// ListByRequest returns items offered against a request.
//
//	@Summary	List items for a request
//	@Tags		items
//	@Produce	json
//	@Param		requestId	path	int	true	"Request id"
//	@Success	200			{array}	ItemResponse
//	@Router		/items/request/{requestId} [get]
func (h *ItemHandler) ListByRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r, "requestId")
	if !ok {
		return
	}

	items, err := h.svc.Item.GetItemsByRequest(r.Context(), requestID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
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
