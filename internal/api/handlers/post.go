package handlers

import (
	"net/http"
	"time"

	"github.com/dom/postboard/internal/api/middleware"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/service"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest has no sender field: the owner is always the caller.
type PostRequest struct {
	Message string `json:"message"`
}

type PostResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID.String(),
		Message:   post.Message,
		Sender:    post.Sender.String(),
		CreatedAt: post.CreatedAt,
	}
}

// Create godoc
//
//	@Summary		Create a post
//	@Description	The caller becomes the sender.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		handlers.PostRequest	true	"Post"
//	@Success		201	{object}	handlers.PostResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Message is required"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Router			/post [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), identity, req.Message)
	if err != nil {
		writeServiceError(w, "handlers.Post.Create", err, "Post not found")
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// List godoc
//
//	@Summary		List posts
//	@Tags			Posts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			sender	query		string	false	"Only posts by this user"
//	@Success		200	{array}	handlers.PostResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Invalid sender id"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Router			/post [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	sender, ok := queryID(r, "sender")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sender id")
		return
	}

	posts, err := h.postService.List(r.Context(), domain.PostFilter{Sender: sender})
	if err != nil {
		writeServiceError(w, "handlers.Post.List", err, "Post not found")
		return
	}

	resp := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, toPostResponse(post))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get godoc
//
//	@Summary		Get a post
//	@Tags			Posts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Post ID"
//	@Success		200	{object}	handlers.PostResponse
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		404	{object}	handlers.MessageResponse	"Post not found"
//	@Router			/post/{id} [get]
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "handlers.Post.Get", err, "Post not found")
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Update godoc
//
//	@Summary		Update a post
//	@Description	Replace the message of your own post.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Post ID"
//	@Param			request	body		handlers.PostRequest	true	"Post"
//	@Success		200	{object}	handlers.PostResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Message is required"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		403	{object}	handlers.MessageResponse	"Not your post"
//	@Failure		404	{object}	handlers.MessageResponse	"Post not found"
//	@Router			/post/{id} [put]
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.postService.Update(r.Context(), identity, id, req.Message)
	if err != nil {
		writeServiceError(w, "handlers.Post.Update", err, "Post not found")
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Delete godoc
//
//	@Summary		Delete a post
//	@Description	Delete your own post. Its comments are kept.
//	@Tags			Posts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Post ID"
//	@Success		200	{object}	handlers.MessageResponse	"Post deleted"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		403	{object}	handlers.MessageResponse	"Not your post"
//	@Failure		404	{object}	handlers.MessageResponse	"Post not found"
//	@Router			/post/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.postService.Delete(r.Context(), identity, id); err != nil {
		writeServiceError(w, "handlers.Post.Delete", err, "Post not found")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}
