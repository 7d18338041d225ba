package handlers

import (
	"net/http"
	"time"

	"github.com/dom/postboard/internal/api/middleware"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/service"
	"github.com/google/uuid"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest ignores any client supplied sender.
type CommentRequest struct {
	PostID  string `json:"postId"`
	Message string `json:"message"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		PostID:    comment.PostID.String(),
		Message:   comment.Message,
		Sender:    comment.Sender.String(),
		CreatedAt: comment.CreatedAt,
	}
}

// parseCommentRequest writes a 400 and returns false when the body is unusable.
// Missing fields are left for the service to reject.
func parseCommentRequest(w http.ResponseWriter, r *http.Request) (service.CommentInput, bool) {
	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return service.CommentInput{}, false
	}

	input := service.CommentInput{Message: req.Message}
	if req.PostID != "" {
		postID, err := uuid.Parse(req.PostID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid post id")
			return service.CommentInput{}, false
		}
		input.PostID = postID
	}
	return input, true
}

// Create godoc
//
//	@Summary		Create a comment
//	@Description	The caller becomes the sender. The post is not checked for existence.
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		handlers.CommentRequest	true	"Comment"
//	@Success		201	{object}	handlers.CommentResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Post ID and message are required"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Router			/comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	input, ok := parseCommentRequest(w, r)
	if !ok {
		return
	}

	comment, err := h.commentService.Create(r.Context(), identity, input)
	if err != nil {
		writeServiceError(w, "handlers.Comment.Create", err, "Comment not found")
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// List godoc
//
//	@Summary		List comments
//	@Tags			Comments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			postId	query		string	false	"Only comments on this post"
//	@Success		200	{array}	handlers.CommentResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Invalid post id"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Router			/comments [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, ok := queryID(r, "postId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	comments, err := h.commentService.List(r.Context(), domain.CommentFilter{PostID: postID})
	if err != nil {
		writeServiceError(w, "handlers.Comment.List", err, "Comment not found")
		return
	}

	resp := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp = append(resp, toCommentResponse(comment))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get godoc
//
//	@Summary		Get a comment
//	@Tags			Comments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Comment ID"
//	@Success		200	{object}	handlers.CommentResponse
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		404	{object}	handlers.MessageResponse	"Comment not found"
//	@Router			/comments/{id} [get]
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}

	comment, err := h.commentService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "handlers.Comment.Get", err, "Comment not found")
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

// Update godoc
//
//	@Summary		Update a comment
//	@Description	Replace the post and message of your own comment.
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Comment ID"
//	@Param			request	body		handlers.CommentRequest	true	"Comment"
//	@Success		200	{object}	handlers.CommentResponse
//	@Failure		400	{object}	handlers.MessageResponse	"Post ID and message are required"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		403	{object}	handlers.MessageResponse	"Not your comment"
//	@Failure		404	{object}	handlers.MessageResponse	"Comment not found"
//	@Router			/comments/{id} [put]
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	input, ok := parseCommentRequest(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}

	comment, err := h.commentService.Update(r.Context(), identity, id, input)
	if err != nil {
		writeServiceError(w, "handlers.Comment.Update", err, "Comment not found")
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(comment))
}

// Delete godoc
//
//	@Summary		Delete a comment
//	@Tags			Comments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Comment ID"
//	@Success		200	{object}	handlers.MessageResponse	"Comment deleted"
//	@Failure		401	{object}	handlers.MessageResponse	"Access token required"
//	@Failure		403	{object}	handlers.MessageResponse	"Not your comment"
//	@Failure		404	{object}	handlers.MessageResponse	"Comment not found"
//	@Router			/comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}

	if err := h.commentService.Delete(r.Context(), identity, id); err != nil {
		writeServiceError(w, "handlers.Comment.Delete", err, "Comment not found")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Comment deleted successfully"})
}
