package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lendshare/pkg/errhttp"
	"github.com/ghuser/lendshare/pkg/httpx"
	pkgvalidator "github.com/ghuser/lendshare/pkg/validator"
	appsvcs "github.com/ghuser/lendshare/services/user/application/services"
	"github.com/ghuser/lendshare/services/user/domain/models"
)

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255" example:"Alice"`
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
} // @name CreateUserRequest

// UpdateUserRequest is the request body for PATCH /users/{id}.
// Absent fields are left untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
} // @name UpdateUserRequest

// UserResponse is the JSON view of a user.
type UserResponse struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"alice@example.com"`
} // @name UserResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"user not found"`
} // @name ErrorResponse

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserHandler handles the /users endpoints.
type UserHandler struct {
	svc *appsvcs.Services
}

// NewUserHandler returns a UserHandler backed by the given services.
func NewUserHandler(svc *appsvcs.Services) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create creates a new user.
//
//	@Summary	Create user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateUserRequest	true	"User creation request"
//	@Success	201		{object}	UserResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateUserRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.User.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toUserResponse(user))
}

// Update partially updates a user.
//
//	@Summary	Update user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"User id"
//	@Param		request	body		UpdateUserRequest	true	"Fields to update"
//	@Success	200		{object}	UserResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/users/{id} [patch]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateUserRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.User.Update(r.Context(), id, req.Name, req.Email)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

// Get returns a user by id.
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"User id"
//	@Success	200	{object}	UserResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.svc.User.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

// List returns all users.
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	UserResponse
//	@Router		/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.User.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Delete removes a user.
//
//	@Summary	Delete user
//	@Tags		users
//	@Param		id	path	int	true	"User id"
//	@Success	200
//	@Router		/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.User.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
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
