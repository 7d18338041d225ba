package postgres

import (
	"context"
	"fmt"

	"github.com/dom/postboard/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Sender != nil {
		query = query.Where("sender = ?", *filter.Sender)
	}

	var posts []*domain.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update writes the message only; sender and creation time are immutable.
func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	result := r.db.WithContext(ctx).
		Model(post).
		Select("message").
		Updates(post)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: post %s", domain.ErrNotFound, post.ID)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: post %s", domain.ErrNotFound, id)
	}
	return nil
}
