package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mentorhub/mentorship-backend/internal/application/command"
	"github.com/mentorhub/mentorship-backend/internal/application/query"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

// readinessTimeout bounds one dependency probe during /ready.
const readinessTimeout = 3 * time.Second

// writeDomainError maps domain errors to HTTP status codes. Anything the
// taxonomy does not classify is a 500 and gets logged with the request id.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case shared.IsUnauthenticated(err):
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsConflict(err):
		writeJSONError(w, http.StatusConflict, "conflict", err.Error())
	default:
		s.logger.Error("unhandled error",
			logger.String("path", r.URL.Path),
			logger.String("request_id", getRequestID(r.Context())),
			logger.Err(err),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_server_error", "An unexpected error occurred")
	}
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// handleHealth handles GET /health - liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady handles GET /ready - readiness probe. Checks that Postgres
// and Redis answer.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{}
	ready := true

	probe := func(name string, hc HealthChecker) {
		if hc == nil {
			return
		}
		if err := hc.Ping(ctx); err != nil {
			checks[name] = "unavailable"
			ready = false
		} else {
			checks[name] = "ok"
		}
	}
	probe("database", s.deps.Database)
	probe("redis", s.deps.Redis)

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{
		"ready":  ready,
		"checks": checks,
	})
}

// handleRegisterUser handles POST /api/v1/users.
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatarUrl"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_input", "Invalid JSON body")
		return
	}

	result, err := s.deps.RegisterUser.Handle(r.Context(), command.RegisterUserCommand{
		Email:     body.Email,
		Name:      body.Name,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result.User)
}

// handleCreateRequest handles POST /api/v1/requests. The authenticated
// caller is the mentee.
func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MentorID string `json:"mentorId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_input", "Invalid JSON body")
		return
	}

	result, err := s.deps.CreateRequest.Handle(r.Context(), command.CreateRequestCommand{
		MenteeID: callerID(r),
		MentorID: body.MentorID,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result.Request)
}

// handleGetRequestStatus handles GET /api/v1/requests/status/{mentorId}.
// A pair with no request yields a null status, not a 404.
func (s *Server) handleGetRequestStatus(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetRequestStatus.Handle(r.Context(), query.GetRequestStatusQuery{
		MenteeID: callerID(r),
		MentorID: r.PathValue("mentorId"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": result.Status,
	})
}

// handleListSentRequests handles GET /api/v1/requests/sent.
func (s *Server) handleListSentRequests(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListRequests.HandleSent(r.Context(), query.ListSentRequestsQuery{
		MenteeID: callerID(r),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Requests)
}

// handleListReceivedRequests handles GET /api/v1/requests/received.
func (s *Server) handleListReceivedRequests(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListRequests.HandleReceived(r.Context(), query.ListReceivedRequestsQuery{
		MentorID: callerID(r),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Requests)
}

// handleRespondToRequest handles PATCH /api/v1/requests/{id}.
func (s *Server) handleRespondToRequest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_input", "Invalid JSON body")
		return
	}

	result, err := s.deps.RespondToRequest.Handle(r.Context(), command.RespondToRequestCommand{
		RequestID: r.PathValue("id"),
		MentorID:  callerID(r),
		Status:    body.Status,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"request": result.Request,
	}
	if result.ConversationID != "" {
		response["conversationId"] = result.ConversationID
	}
	writeJSON(w, http.StatusOK, response)
}

// handleListConversations handles GET /api/v1/conversations.
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListConversations.Handle(r.Context(), query.ListConversationsQuery{
		UserID: callerID(r),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Conversations)
}

// handleListMessages handles GET /api/v1/conversations/{id}/messages.
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListMessages.Handle(r.Context(), query.ListMessagesQuery{
		UserID:         callerID(r),
		ConversationID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Messages)
}

// handleSendMessage handles POST /api/v1/messages.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ConversationID string `json:"conversationId"`
		Content        string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_input", "Invalid JSON body")
		return
	}

	result, err := s.deps.SendMessage.Handle(r.Context(), command.SendMessageCommand{
		SenderID:       callerID(r),
		ConversationID: body.ConversationID,
		Content:        body.Content,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result.Message)
}

// handleListNotifications handles GET /api/v1/notifications.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListNotifications.Handle(r.Context(), query.ListNotificationsQuery{
		UserID: callerID(r),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Notifications)
}

// handleMarkNotificationRead handles PATCH /api/v1/notifications/{id}/read.
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := s.deps.MarkNotificationRead.Handle(r.Context(), command.MarkNotificationReadCommand{
		UserID:         callerID(r),
		NotificationID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"read": true,
	})
}

// handleGetPoints handles GET /api/v1/points.
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetPoints.Handle(r.Context(), query.GetPointsQuery{
		UserID: callerID(r),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points": result.Points,
		"awards": result.Awards,
	})
}
