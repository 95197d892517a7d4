package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
)

const contextKeyUserID contextKey = "user_id"

// Claims is the token payload issued by the identity provider. The backend
// only verifies; it never issues tokens.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// identityResolver verifies bearer tokens and extracts the caller's user id.
type identityResolver struct {
	secret []byte
}

func newIdentityResolver(secret string) *identityResolver {
	return &identityResolver{secret: []byte(secret)}
}

// Resolve extracts and verifies the bearer token from the request. A missing
// or malformed Authorization header, a bad signature, and an expired token
// all produce the same unauthenticated error.
func (ir *identityResolver) Resolve(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", shared.ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", shared.ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ir.secret, nil
	})
	if err != nil || !token.Valid {
		return "", shared.WrapError("auth", "Resolve", shared.ErrUnauthenticated, "invalid token", err)
	}
	if claims.UserID == "" {
		return "", shared.ErrUnauthenticated
	}

	return claims.UserID, nil
}

// authed wraps a handler with identity resolution. The resolved user id
// lands in the request context; resolution failure short-circuits with 401.
func (s *Server) authed(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.identity.Resolve(r)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID returns the authenticated user id from the request context.
func callerID(r *http.Request) string {
	if id, ok := r.Context().Value(contextKeyUserID).(string); ok {
		return id
	}
	return ""
}
