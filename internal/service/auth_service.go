package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dom/postboard/internal/auth"
	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/observability"
	"github.com/dom/postboard/internal/repository"
	"github.com/google/uuid"
)

// Auth event labels for metrics.
const (
	eventRegister = "register"
	eventLogin    = "login"
	eventLogout   = "logout"
	eventRefresh  = "refresh"
	eventVerify   = "verify_access"
)

var errRefreshTokenRequired = domain.Invalid("Refresh token required")

type AuthService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   *auth.TokenService
	metrics  *observability.Metrics
}

func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenService, metrics *observability.Metrics) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		metrics:  metrics,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a user.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.Invalid("Username, email, and password are required")
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		s.metrics.RecordAuthEvent(eventRegister, observability.OutcomeFailure)
		return nil, domain.ErrConflict
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	// A concurrent registration can still win the race; the unique index
	// reports it as a conflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.metrics.RecordAuthEvent(eventRegister, observability.OutcomeFailure)
		}
		return nil, err
	}

	s.metrics.RecordAuthEvent(eventRegister, observability.OutcomeSuccess)
	return user, nil
}

// Login verifies credentials, issues a token pair and stores the refresh
// token on the user. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.Invalid("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.RecordAuthEvent(eventLogin, observability.OutcomeFailure)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		s.metrics.RecordAuthEvent(eventLogin, observability.OutcomeFailure)
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.AddRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	s.metrics.RecordAuthEvent(eventLogin, observability.OutcomeSuccess)
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes a refresh token by removing it from whichever user holds it.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return errRefreshTokenRequired
	}

	removed, err := s.userRepo.RemoveRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if !removed {
		s.metrics.RecordAuthEvent(eventLogout, observability.OutcomeFailure)
		return domain.ErrInvalidToken
	}

	s.metrics.RecordAuthEvent(eventLogout, observability.OutcomeSuccess)
	return nil
}

// Refresh issues a new access token. The refresh token must verify against
// the refresh secret and still be stored on its user; it is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", errRefreshTokenRequired
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.metrics.RecordAuthEvent(eventRefresh, observability.OutcomeFailure)
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	user, err := s.userRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.RecordAuthEvent(eventRefresh, observability.OutcomeFailure)
			return "", fmt.Errorf("%w: refresh token revoked", domain.ErrInvalidToken)
		}
		return "", err
	}

	if claims.UserID != user.ID.String() {
		log.Printf("WARN [service.Auth.Refresh] token for %s stored on user %s", claims.UserID, user.ID)
		s.metrics.RecordAuthEvent(eventRefresh, observability.OutcomeFailure)
		return "", fmt.Errorf("%w: token subject mismatch", domain.ErrInvalidToken)
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return "", err
	}

	s.metrics.RecordAuthEvent(eventRefresh, observability.OutcomeSuccess)
	return accessToken, nil
}

// Authenticate verifies an access token and returns the caller it names.
func (s *AuthService) Authenticate(accessToken string) (auth.Identity, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		s.metrics.RecordAuthEvent(eventVerify, observability.OutcomeFailure)
		return auth.Identity{}, err
	}
	return auth.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}
