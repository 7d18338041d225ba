package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/postboard/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
	bio      *string
}

// NewUserBuilder creates a new UserBuilder with unique default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithBio sets the bio
func (b *UserBuilder) WithBio(bio string) *UserBuilder {
	b.bio = &bio
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Bio:          b.bio,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// Tokens is the login response body
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate registers a user via the API, logs in, and returns the
// user with its token pair
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, Tokens) {
	t.Helper()

	resp := PostJSON(t, ts.URL("/auth/register"), map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected register status code: %d", resp.StatusCode)
	}

	var registered struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	userID, err := uuid.Parse(registered.User.ID)
	if err != nil {
		t.Fatalf("register returned invalid id %q: %v", registered.User.ID, err)
	}

	user := &domain.User{
		ID:       userID,
		Username: registered.User.Username,
		Email:    registered.User.Email,
	}
	return user, Login(t, ts, b.email, b.password)
}

// Login authenticates through the API and returns the token pair
func Login(t *testing.T, ts *TestServer, email, password string) Tokens {
	t.Helper()

	resp := PostJSON(t, ts.URL("/auth/login"), map[string]string{
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var tokens Tokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return tokens
}

// PostBuilder creates test posts
type PostBuilder struct {
	sender  *domain.User
	message string
}

// NewPostBuilder creates a new PostBuilder with default values
func NewPostBuilder() *PostBuilder {
	return &PostBuilder{message: "hello from a test post"}
}

// WithSender sets the post owner
func (b *PostBuilder) WithSender(user *domain.User) *PostBuilder {
	b.sender = user
	return b
}

// WithMessage sets the message
func (b *PostBuilder) WithMessage(message string) *PostBuilder {
	b.message = message
	return b
}

// Build creates the post in the database, creating a sender if none was set
func (b *PostBuilder) Build(t *testing.T, db *gorm.DB) *domain.Post {
	t.Helper()

	if b.sender == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.sender = user
	}

	post := &domain.Post{
		ID:      uuid.New(),
		Message: b.message,
		Sender:  b.sender.ID,
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	return post
}

// CommentBuilder creates test comments
type CommentBuilder struct {
	sender  *domain.User
	postID  uuid.UUID
	message string
}

// NewCommentBuilder creates a new CommentBuilder with default values
func NewCommentBuilder() *CommentBuilder {
	return &CommentBuilder{message: "hello from a test comment"}
}

// WithSender sets the comment owner
func (b *CommentBuilder) WithSender(user *domain.User) *CommentBuilder {
	b.sender = user
	return b
}

// WithPost sets the post the comment refers to
func (b *CommentBuilder) WithPost(postID uuid.UUID) *CommentBuilder {
	b.postID = postID
	return b
}

// WithMessage sets the message
func (b *CommentBuilder) WithMessage(message string) *CommentBuilder {
	b.message = message
	return b
}

// Build creates the comment in the database. Missing sender and post are
// created on demand.
func (b *CommentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Comment {
	t.Helper()

	if b.sender == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.sender = user
	}
	if b.postID == uuid.Nil {
		b.postID = NewPostBuilder().WithSender(b.sender).Build(t, db).ID
	}

	comment := &domain.Comment{
		ID:      uuid.New(),
		PostID:  b.postID,
		Message: b.message,
		Sender:  b.sender.ID,
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	return comment
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends an authenticated request and returns the response
func Do(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(CreateAuthenticatedRequest(t, method, url, body, token))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	return resp
}

// PostJSON sends an unauthenticated JSON POST
func PostJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	return Do(t, http.MethodPost, url, body, "")
}
