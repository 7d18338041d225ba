package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Message   string    `json:"message" gorm:"not null"`
	Sender    uuid.UUID `json:"sender" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;<-:create;index"`
}

// PostFilter narrows post listings. A nil field means no restriction.
type PostFilter struct {
	Sender *uuid.UUID
}
