package service

import (
	"context"
	"time"

	"github.com/dom/postboard/internal/auth"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/repository"
	"github.com/google/uuid"
)

type PostService struct {
	postRepo repository.PostRepository
	events   EventPublisher
}

func NewPostService(postRepo repository.PostRepository, events EventPublisher) *PostService {
	if events == nil {
		events = noopPublisher{}
	}
	return &PostService{
		postRepo: postRepo,
		events:   events,
	}
}

var errMessageRequired = domain.Invalid("Message is required")

// Create stores a post owned by the caller.
func (s *PostService) Create(ctx context.Context, identity auth.Identity, message string) (*domain.Post, error) {
	if message == "" {
		return nil, errMessageRequired
	}

	sender, err := callerID(identity)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:        uuid.New(),
		Message:   message,
		Sender:    sender,
		CreatedAt: time.Now(),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.events.Publish(domain.EventPostCreated, post)
	return post, nil
}

func (s *PostService) List(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error) {
	return s.postRepo.List(ctx, filter)
}

func (s *PostService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Update replaces the message. A missing post is reported before ownership,
// and nothing is written unless the caller owns the post.
func (s *PostService) Update(ctx context.Context, identity auth.Identity, id uuid.UUID, message string) (*domain.Post, error) {
	if message == "" {
		return nil, errMessageRequired
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(identity, post.Sender); err != nil {
		return nil, err
	}

	post.Message = message
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.events.Publish(domain.EventPostUpdated, post)
	return post, nil
}

// Delete removes the post. Its comments are kept.
func (s *PostService) Delete(ctx context.Context, identity auth.Identity, id uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Authorize(identity, post.Sender); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	s.events.Publish(domain.EventPostDeleted, domain.DeletedEvent{ID: post.ID})
	return nil
}
