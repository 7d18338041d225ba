package service_test

import (
	"context"
	"testing"

	"github.com/dom/postboard/internal/auth"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation runs before any repository access, so no database is needed.
func TestServices_RejectIncompleteInput(t *testing.T) {
	ctx := context.Background()
	authService := service.NewAuthService(nil, nil, nil, nil)
	postService := service.NewPostService(nil, nil)
	commentService := service.NewCommentService(nil, nil)
	caller := auth.Identity{UserID: uuid.NewString(), Username: "alice"}

	tests := []struct {
		name    string
		call    func() error
		message string
	}{
		{
			name: "register without password",
			call: func() error {
				_, err := authService.Register(ctx, service.RegisterInput{Username: "alice", Email: "alice@example.com"})
				return err
			},
			message: "Username, email, and password are required",
		},
		{
			name: "login without email",
			call: func() error {
				_, err := authService.Login(ctx, service.LoginInput{Password: "secret"})
				return err
			},
			message: "Email and password are required",
		},
		{
			name:    "logout without token",
			call:    func() error { return authService.Logout(ctx, "") },
			message: "Refresh token required",
		},
		{
			name: "refresh without token",
			call: func() error {
				_, err := authService.Refresh(ctx, "")
				return err
			},
			message: "Refresh token required",
		},
		{
			name: "post without message",
			call: func() error {
				_, err := postService.Create(ctx, caller, "")
				return err
			},
			message: "Message is required",
		},
		{
			name: "post update without message",
			call: func() error {
				_, err := postService.Update(ctx, caller, uuid.New(), "")
				return err
			},
			message: "Message is required",
		},
		{
			name: "comment without post id",
			call: func() error {
				_, err := commentService.Create(ctx, caller, service.CommentInput{Message: "x"})
				return err
			},
			message: "Post ID and message are required",
		},
		{
			name: "comment update without message",
			call: func() error {
				_, err := commentService.Update(ctx, caller, uuid.New(), service.CommentInput{PostID: uuid.New()})
				return err
			},
			message: "Post ID and message are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}
