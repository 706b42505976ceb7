package http

import (
	"net/http"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
)

// currentUserID resolves the authenticated user from the verified token
// claims. AuthRequired runs first, so a failure here means a malformed
// token slipped past verification.
func currentUserID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}
