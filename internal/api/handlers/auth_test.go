package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/postboard/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name            string
		request         map[string]string
		setup           func()
		expectedStatus  int
		expectedMessage string
		checkResponse   func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result struct {
					Message string                 `json:"message"`
					User    map[string]interface{} `json:"user"`
				}
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "User registered successfully", result.Message)
				assert.Equal(t, "newuser", result.User["username"])
				assert.Equal(t, "new@example.com", result.User["email"])
				assert.NotEmpty(t, result.User["id"])
				assert.NotContains(t, result.User, "password")
				assert.NotContains(t, result.User, "refreshTokens")
			},
		},
		{
			name: "missing email",
			request: map[string]string{
				"username": "newuser",
				"password": "password123",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Username, email, and password are required",
		},
		{
			name:            "empty request body",
			request:         map[string]string{},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Username, email, and password are required",
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"username": "someoneelse",
				"email":    "taken@example.com",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().WithEmail("taken@example.com").Build(t, ts.DB.DB)
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "User already exists",
		},
		{
			name: "duplicate username",
			request: map[string]string{
				"username": "takenname",
				"email":    "unique@example.com",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().WithUsername("takenname").Build(t, ts.DB.DB)
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "User already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := testutil.PostJSON(t, ts.URL("/auth/register"), tt.request)
			defer resp.Body.Close()

			if tt.expectedMessage != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedMessage)
				return
			}
			testutil.AssertStatusCode(t, resp, tt.expectedStatus)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	tests := []struct {
		name            string
		request         map[string]string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "valid credentials",
			request:        map[string]string{"email": "login@example.com", "password": "correctpassword"},
			expectedStatus: http.StatusOK,
		},
		{
			name:            "wrong password",
			request:         map[string]string{"email": "login@example.com", "password": "wrongpassword"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid credentials",
		},
		{
			name:            "unknown email",
			request:         map[string]string{"email": "nobody@example.com", "password": "correctpassword"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid credentials",
		},
		{
			name:            "missing password",
			request:         map[string]string{"email": "login@example.com"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Email and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.PostJSON(t, ts.URL("/auth/login"), tt.request)
			defer resp.Body.Close()

			if tt.expectedMessage != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedMessage)
				return
			}

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			var tokens testutil.Tokens
			testutil.AssertJSONResponse(t, resp, &tokens)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
		})
	}
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("refresh issues a working access token", func(t *testing.T) {
		resp := testutil.PostJSON(t, ts.URL("/auth/refresh"), map[string]string{"refreshToken": tokens.RefreshToken})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body struct {
			AccessToken string `json:"accessToken"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.NotEmpty(t, body.AccessToken)

		me := testutil.Do(t, http.MethodGet, ts.URL("/user/me"), nil, body.AccessToken)
		defer me.Body.Close()
		testutil.AssertStatusCode(t, me, http.StatusOK)
	})

	t.Run("refresh without token", func(t *testing.T) {
		resp := testutil.PostJSON(t, ts.URL("/auth/refresh"), map[string]string{})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Refresh token required")
	})

	t.Run("refresh with an access token", func(t *testing.T) {
		resp := testutil.PostJSON(t, ts.URL("/auth/refresh"), map[string]string{"refreshToken": tokens.AccessToken})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Invalid refresh token")
	})

	t.Run("logout without token", func(t *testing.T) {
		resp := testutil.PostJSON(t, ts.URL("/auth/logout"), map[string]string{})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Refresh token required")
	})

	t.Run("logout", func(t *testing.T) {
		resp := testutil.PostJSON(t, ts.URL("/auth/logout"), map[string]string{"refreshToken": tokens.RefreshToken})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusOK, "Logged out successfully")
	})

	t.Run("refresh after logout", func(t *testing.T) {
		resp := testutil.PostJSON(t, ts.URL("/auth/refresh"), map[string]string{"refreshToken": tokens.RefreshToken})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Invalid refresh token")
	})

	t.Run("logout twice", func(t *testing.T) {
		resp := testutil.PostJSON(t, ts.URL("/auth/logout"), map[string]string{"refreshToken": tokens.RefreshToken})
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid refresh token")
	})
}

func TestAuthGate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("missing token", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodGet, ts.URL("/post"), nil, "")
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Access token required")
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodGet, ts.URL("/post"), nil, "not-a-jwt")
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Invalid or expired token")
	})

	t.Run("refresh token is not accepted", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodGet, ts.URL("/post"), nil, tokens.RefreshToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Invalid or expired token")
	})

	t.Run("public health check", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodGet, ts.URL("/health"), nil, "")
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})
}
