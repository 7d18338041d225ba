package handlers

import (
	"net/http"
	"time"

	"github.com/dom/postboard/internal/api/middleware"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/service"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
}

// UserResponse never includes the password hash or refresh tokens.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}

// List godoc
//
//	@Summary		List users
//	@Description	List every user. Password hashes and refresh tokens are never returned.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}	handlers.UserResponse
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		403	{object}	handlers.MessageResponse	"Invalid or expired token"
//	@Router			/user [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeServiceError(w, "handlers.User.List", err, "User not found")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me godoc
//
//	@Summary		Get the current user
//	@Description	Return the user named by the access token.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	handlers.UserResponse
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		404	{object}	handlers.MessageResponse	"User not found"
//	@Router			/user/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	id, err := uuid.Parse(identity.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.writeUser(w, r, id)
}

// Get godoc
//
//	@Summary		Get a user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	handlers.UserResponse
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		404	{object}	handlers.MessageResponse	"User not found"
//	@Router			/user/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.writeUser(w, r, id)
}

func (h *UserHandler) writeUser(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "handlers.User.Get", err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Update godoc
//
//	@Summary		Update a user
//	@Description	Update your own profile. Empty username or email are left unchanged.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Param			request	body		handlers.UpdateUserRequest	true	"Profile fields"
//	@Success		200	{object}	handlers.UserResponse
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		403	{object}	handlers.MessageResponse	"Not your profile"
//	@Failure		404	{object}	handlers.MessageResponse	"User not found"
//	@Router			/user/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.userService.Update(r.Context(), identity, id, service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
	})
	if err != nil {
		writeServiceError(w, "handlers.User.Update", err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Delete godoc
//
//	@Summary		Delete a user
//	@Description	Delete your own account. Posts and comments are kept.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	handlers.MessageResponse	"User deleted"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		403	{object}	handlers.MessageResponse	"Not your profile"
//	@Failure		404	{object}	handlers.MessageResponse	"User not found"
//	@Router			/user/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.userService.Delete(r.Context(), identity, id); err != nil {
		writeServiceError(w, "handlers.User.Delete", err, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
