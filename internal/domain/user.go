package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username      string                      `json:"username" gorm:"uniqueIndex;not null"`
	Email         string                      `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string                      `json:"-" gorm:"column:password;not null"`
	RefreshTokens datatypes.JSONSlice[string] `json:"-" gorm:"type:jsonb;not null;default:'[]'"`
	Bio           *string                     `json:"bio,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt" gorm:"autoCreateTime;<-:create"`
}

// BeforeCreate keeps the token list a JSON array so the atomic append/remove
// operators always have an array to work on.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.RefreshTokens == nil {
		u.RefreshTokens = datatypes.JSONSlice[string]{}
	}
	return nil
}

// HasRefreshToken reports whether token is in the user's stored list.
func (u *User) HasRefreshToken(token string) bool {
	for _, t := range u.RefreshTokens {
		if t == token {
			return true
		}
	}
	return false
}
