package service

import (
	"context"
	"time"

	"github.com/dom/postboard/internal/auth"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/repository"
	"github.com/google/uuid"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	events      EventPublisher
}

func NewCommentService(commentRepo repository.CommentRepository, events EventPublisher) *CommentService {
	if events == nil {
		events = noopPublisher{}
	}
	return &CommentService{
		commentRepo: commentRepo,
		events:      events,
	}
}

type CommentInput struct {
	PostID  uuid.UUID
	Message string
}

func (in CommentInput) validate() error {
	if in.PostID == uuid.Nil || in.Message == "" {
		return domain.Invalid("Post ID and message are required")
	}
	return nil
}

// Create stores a comment owned by the caller. The post is not looked up:
// comments on unknown posts are accepted.
func (s *CommentService) Create(ctx context.Context, identity auth.Identity, input CommentInput) (*domain.Comment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	sender, err := callerID(identity)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		PostID:    input.PostID,
		Message:   input.Message,
		Sender:    sender,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.events.Publish(domain.EventCommentCreated, comment)
	return comment, nil
}

func (s *CommentService) List(ctx context.Context, filter domain.CommentFilter) ([]*domain.Comment, error) {
	return s.commentRepo.List(ctx, filter)
}

func (s *CommentService) Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *CommentService) Update(ctx context.Context, identity auth.Identity, id uuid.UUID, input CommentInput) (*domain.Comment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(identity, comment.Sender); err != nil {
		return nil, err
	}

	comment.PostID = input.PostID
	comment.Message = input.Message
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.events.Publish(domain.EventCommentUpdated, comment)
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, identity auth.Identity, id uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Authorize(identity, comment.Sender); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return err
	}

	s.events.Publish(domain.EventCommentDeleted, domain.DeletedEvent{ID: comment.ID})
	return nil
}
