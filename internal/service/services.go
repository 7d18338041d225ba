package service

import (
	"fmt"

	"github.com/dom/postboard/internal/auth"
	"github.com/dom/postboard/internal/config"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/observability"
	"github.com/dom/postboard/internal/repository"
	"github.com/google/uuid"
)

// EventPublisher receives post and comment changes after they are persisted.
type EventPublisher interface {
	Publish(event domain.EventType, payload interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(domain.EventType, interface{}) {}

type Services struct {
	Auth    *AuthService
	User    *UserService
	Post    *PostService
	Comment *CommentService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, events EventPublisher, metrics *observability.Metrics) *Services {
	if events == nil {
		events = noopPublisher{}
	}

	tokens := auth.NewTokenService(cfg)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	return &Services{
		Auth:    NewAuthService(repos.User, hasher, tokens, metrics),
		User:    NewUserService(repos.User),
		Post:    NewPostService(repos.Post, events),
		Comment: NewCommentService(repos.Comment, events),
	}
}

// callerID converts the authenticated identity into a user id.
func callerID(identity auth.Identity) (uuid.UUID, error) {
	id, err := uuid.Parse(identity.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: identity %q is not a user id", domain.ErrInvalidToken, identity.UserID)
	}
	return id, nil
}
