package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorship-backend/internal/application/query"
	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

const testSecret = "test-secret"

// fakeNotificationRepo is the minimal notification.Repository the routed
// tests need.
type fakeNotificationRepo struct {
	notifications []*notification.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID user.UserID) ([]*notification.Notification, error) {
	var out []*notification.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userID user.UserID, id notification.NotificationID) error {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.MarkRead()
			return nil
		}
	}
	return shared.ErrNotificationNotFound
}

func newTestServer(t *testing.T, notifications *fakeNotificationRepo) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 0
	cfg.JWTSecret = testSecret

	return NewServer(cfg, Dependencies{
		ListNotifications: query.NewListNotificationsHandler(notifications),
		Logger:            logger.New(logger.Options{Output: io.Discard}),
	})
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeNotificationRepo{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, &fakeNotificationRepo{})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			s.httpServer.Handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthRejectsWrongSignature(t *testing.T) {
	s := newTestServer(t, &fakeNotificationRepo{})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListNotificationsScopedToCaller(t *testing.T) {
	notifications := &fakeNotificationRepo{}
	mine, err := notification.NewRequestAccepted("n-1", "user-1", "Dana")
	require.NoError(t, err)
	theirs, err := notification.NewRequestAccepted("n-2", "user-2", "Dana")
	require.NoError(t, err)
	require.NoError(t, notifications.Create(context.Background(), mine))
	require.NoError(t, notifications.Create(context.Background(), theirs))

	s := newTestServer(t, notifications)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1"))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			ID     string `json:"id"`
			UserID string `json:"userId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "n-1", resp.Data[0].ID)
}

func TestWriteDomainErrorMapping(t *testing.T) {
	s := newTestServer(t, &fakeNotificationRepo{})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthenticated", shared.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
		{"validation", shared.ErrEmptyMessage, http.StatusBadRequest, "invalid_input"},
		{"not found", shared.ErrConversationNotFound, http.StatusNotFound, "not_found"},
		{"duplicate", shared.ErrDuplicateRequest, http.StatusConflict, "conflict"},
		{"lost transition", shared.ErrRequestNotPending, http.StatusConflict, "conflict"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_server_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/anything", nil)
			rec := httptest.NewRecorder()
			s.writeDomainError(rec, req, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var resp JSONResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}
