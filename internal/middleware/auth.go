package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"intervai/internal/models"
	"intervai/internal/utils"
)

const userIDKey contextKey = "user_id"

var (
	ErrMissingAuthHeader = errors.New("missing or malformed Authorization header")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidClaims     = errors.New("invalid token claims")
)

// VerifyToken validates the Bearer HMAC token of r and returns its claims.
func VerifyToken(r *http.Request, secret string) (jwt.MapClaims, error) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, ErrMissingAuthHeader
	}
	tokenStr := strings.TrimPrefix(authz, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// UserIDFromClaims reads the "sub" claim as a string. Numeric subjects are accepted.
func UserIDFromClaims(claims jwt.MapClaims) (string, error) {
	switch v := claims["sub"].(type) {
	case string:
		if v == "" {
			return "", ErrInvalidClaims
		}
		return v, nil
	case float64:
		return fmt.Sprintf("%d", int64(v)), nil
	default:
		return "", ErrInvalidClaims
	}
}

// RequireUser rejects requests without a valid token and stores the caller's user ID in the
// request context.
func RequireUser(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := VerifyToken(r, secret)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: err.Error()})
				return
			}
			userID, err := UserIDFromClaims(claims)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user ID, or "" outside RequireUser.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
