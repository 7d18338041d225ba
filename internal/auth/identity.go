package auth

// Identity is the caller attached to a request by the auth middleware.
type Identity struct {
	UserID   string
	Username string
}
