package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Post struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

const simulatorPassword = "testpassword123"

// RegisterUser creates a new account with a unique username and email
func (c *APIClient) RegisterUser(baseName string) (*User, error) {
	username := fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano()%100000)

	body := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": simulatorPassword,
	}

	var result RegisterResponse
	if err := c.do(http.MethodPost, "/auth/register", body, "", http.StatusCreated, &result); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &result.User, nil
}

func (c *APIClient) Login(email string) (*Tokens, error) {
	body := map[string]string{
		"email":    email,
		"password": simulatorPassword,
	}

	var tokens Tokens
	if err := c.do(http.MethodPost, "/auth/login", body, "", http.StatusOK, &tokens); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &tokens, nil
}

// Refresh exchanges a refresh token for a new access token
func (c *APIClient) Refresh(refreshToken string) (string, error) {
	var result struct {
		AccessToken string `json:"accessToken"`
	}
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(http.MethodPost, "/auth/refresh", body, "", http.StatusOK, &result); err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	return result.AccessToken, nil
}

func (c *APIClient) Logout(refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(http.MethodPost, "/auth/logout", body, "", http.StatusOK, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (c *APIClient) CreatePost(token, message string) (*Post, error) {
	var post Post
	body := map[string]string{"message": message}
	if err := c.do(http.MethodPost, "/post", body, token, http.StatusCreated, &post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

func (c *APIClient) ListPosts(token, sender string) ([]Post, error) {
	path := "/post"
	if sender != "" {
		path += "?sender=" + sender
	}

	var posts []Post
	if err := c.do(http.MethodGet, path, nil, token, http.StatusOK, &posts); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (c *APIClient) CreateComment(token, postID, message string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"postId": postID, "message": message}
	if err := c.do(http.MethodPost, "/comments", body, token, http.StatusCreated, &comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

func (c *APIClient) ListComments(token, postID string) ([]Comment, error) {
	var comments []Comment
	if err := c.do(http.MethodGet, "/comments?postId="+postID, nil, token, http.StatusOK, &comments); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// UpdatePost returns the status code so callers can check ownership rejections
func (c *APIClient) UpdatePost(token, postID, message string) (int, error) {
	resp, err := c.send(http.MethodPut, "/post/"+postID, map[string]string{"message": message}, token)
	if err != nil {
		return 0, fmt.Errorf("update post: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// HTTP helpers

// do sends a request and decodes the body into out when the status matches want
func (c *APIClient) do(method, path string, body interface{}, token string, want int, out interface{}) error {
	resp, err := c.send(method, path, body, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *APIClient) send(method, path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
