package postgres

import (
	"context"
	"fmt"

	"github.com/dom/postboard/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &comment, nil
}

func (r *commentRepository) List(ctx context.Context, filter domain.CommentFilter) ([]*domain.Comment, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.PostID != nil {
		query = query.Where("post_id = ?", *filter.PostID)
	}

	var comments []*domain.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	result := r.db.WithContext(ctx).
		Model(comment).
		Select("post_id", "message").
		Updates(comment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: comment %s", domain.ErrNotFound, comment.ID)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: comment %s", domain.ErrNotFound, id)
	}
	return nil
}
