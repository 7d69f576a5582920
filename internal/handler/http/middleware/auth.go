package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/payroll-budget-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

var ErrInvalidToken = fmt.Errorf("%w: invalid or missing access token", apperror.ErrUnauthorized)

type userIDKey struct{}

// AuthRequired rejects requests without a verified access token and stores its
// user_id for handlers. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, ErrInvalidToken)
			return
		}
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.HandleError(w, ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID)))
	})
}

// UserID returns the user_id claim stored by AuthRequired.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok
}
