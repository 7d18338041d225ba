package repository

import (
	"context"

	"github.com/dom/postboard/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Refresh token list. Each call is a single atomic statement on the user row.
	AddRefreshToken(ctx context.Context, userID uuid.UUID, token string) error
	RemoveRefreshToken(ctx context.Context, token string) (bool, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	List(ctx context.Context, filter domain.CommentFilter) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
}
