package auth

import "context"

// Service defines authentication operations for the HTTP boundary.
// The attendance core never sees credentials; it consumes only the
// (userID, role) pair resolved from the access token.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)
	Me(ctx context.Context, userID string) (UserResponse, error)
}
