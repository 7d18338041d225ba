package service

import (
	"context"

	"github.com/dom/postboard/internal/auth"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/repository"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput is a partial update: nil or empty username/email are left
// unchanged, a non-nil bio replaces the stored bio (empty clears it).
type UpdateUserInput struct {
	Username *string
	Email    *string
	Bio      *string
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, identity auth.Identity, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(identity, user.ID); err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != "" {
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = *input.Email
	}
	if input.Bio != nil {
		bio := *input.Bio
		user.Bio = &bio
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user only. Their posts and comments are kept.
func (s *UserService) Delete(ctx context.Context, identity auth.Identity, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Authorize(identity, user.ID); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, user.ID)
}
