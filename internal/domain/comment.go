package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment references its post by id only; the post is not required to exist.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;index"`
	Message   string    `json:"message" gorm:"not null"`
	Sender    uuid.UUID `json:"sender" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;<-:create;index"`
}

type CommentFilter struct {
	PostID *uuid.UUID
}
