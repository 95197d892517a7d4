package command

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/gamification"
	"github.com/mentorhub/mentorship-backend/internal/domain/mentorship"
	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
	"github.com/mentorhub/mentorship-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard})
}

// seqIDs generates deterministic ids for tests.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) GenerateID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// fakeBus records published events.
type fakeBus struct {
	mu     sync.Mutex
	events []shared.Event
}

func (b *fakeBus) Publish(event shared.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *fakeBus) published(eventType shared.EventType) []shared.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []shared.Event
	for _, e := range b.events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	users map[user.UserID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[user.UserID]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return shared.ErrUserAlreadyExists
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id user.UserID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []user.UserID) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id user.UserID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) GetPoints(_ context.Context, id user.UserID) (int, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, shared.ErrUserNotFound
	}
	return u.Points, nil
}

// fakeMentorshipRepo is an in-memory mentorship.Repository and
// mentorship.Responder. Accept stores the conversation in the linked
// conversation repo, mirroring the single-transaction store behavior.
type fakeMentorshipRepo struct {
	requests map[mentorship.RequestID]*mentorship.Request
	convRepo *fakeConversationRepo
}

func newFakeMentorshipRepo(convRepo *fakeConversationRepo) *fakeMentorshipRepo {
	return &fakeMentorshipRepo{
		requests: make(map[mentorship.RequestID]*mentorship.Request),
		convRepo: convRepo,
	}
}

func (r *fakeMentorshipRepo) Create(_ context.Context, req *mentorship.Request) error {
	for _, existing := range r.requests {
		if existing.MenteeID == req.MenteeID && existing.MentorID == req.MentorID {
			return shared.ErrDuplicateRequest
		}
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeMentorshipRepo) GetByID(_ context.Context, id mentorship.RequestID) (*mentorship.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, shared.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeMentorshipRepo) GetByPair(_ context.Context, menteeID, mentorID user.UserID) (*mentorship.Request, error) {
	for _, req := range r.requests {
		if req.MenteeID == menteeID && req.MentorID == mentorID {
			cp := *req
			return &cp, nil
		}
	}
	return nil, shared.ErrRequestNotFound
}

func (r *fakeMentorshipRepo) ListByMentee(_ context.Context, menteeID user.UserID) ([]*mentorship.Request, error) {
	var out []*mentorship.Request
	for _, req := range r.requests {
		if req.MenteeID == menteeID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMentorshipRepo) ListByMentor(_ context.Context, mentorID user.UserID) ([]*mentorship.Request, error) {
	var out []*mentorship.Request
	for _, req := range r.requests {
		if req.MentorID == mentorID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMentorshipRepo) Accept(_ context.Context, id mentorship.RequestID, conv *conversation.Conversation) error {
	req, ok := r.requests[id]
	if !ok {
		return shared.ErrRequestNotFound
	}
	if req.Status != mentorship.StatusPending {
		return shared.ErrRequestNotPending
	}
	now := time.Now().UTC()
	req.Status = mentorship.StatusAccepted
	req.RespondedAt = &now
	r.convRepo.conversations[conv.ID] = conv
	return nil
}

func (r *fakeMentorshipRepo) Reject(_ context.Context, id mentorship.RequestID) error {
	req, ok := r.requests[id]
	if !ok {
		return shared.ErrRequestNotFound
	}
	if req.Status != mentorship.StatusPending {
		return shared.ErrRequestNotPending
	}
	now := time.Now().UTC()
	req.Status = mentorship.StatusRejected
	req.RespondedAt = &now
	return nil
}

// fakeConversationRepo is an in-memory conversation.Repository.
type fakeConversationRepo struct {
	conversations map[conversation.ConversationID]*conversation.Conversation
	messages      []*conversation.Message
}

func newFakeConversationRepo(convs ...*conversation.Conversation) *fakeConversationRepo {
	r := &fakeConversationRepo{
		conversations: make(map[conversation.ConversationID]*conversation.Conversation),
	}
	for _, c := range convs {
		r.conversations[c.ID] = c
	}
	return r
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id conversation.ConversationID) (*conversation.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok {
		return nil, shared.ErrConversationNotFound
	}
	return c, nil
}

func (r *fakeConversationRepo) ListByParticipant(_ context.Context, userID user.UserID) ([]*conversation.Conversation, error) {
	out := make([]*conversation.Conversation, 0)
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) IsParticipant(_ context.Context, id conversation.ConversationID, userID user.UserID) (bool, error) {
	c, ok := r.conversations[id]
	if !ok {
		return false, nil
	}
	return c.HasParticipant(userID), nil
}

func (r *fakeConversationRepo) ListMessages(_ context.Context, id conversation.ConversationID) ([]*conversation.Message, error) {
	var out []*conversation.Message
	for _, m := range r.messages {
		if m.ConversationID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) AddMessage(_ context.Context, m *conversation.Message) error {
	c, ok := r.conversations[m.ConversationID]
	if !ok {
		return shared.ErrConversationNotFound
	}
	r.messages = append(r.messages, m)
	c.UpdatedAt = m.CreatedAt
	return nil
}

// fakeNotificationRepo is an in-memory notification.Repository.
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

func (r *fakeNotificationRepo) forUser(userID user.UserID) []*notification.Notification {
	out, _ := r.ListByUser(context.Background(), userID)
	return out
}

// fakeGamification records awards instead of hitting a store.
type fakeGamification struct {
	awards map[user.UserID]int
	fail   bool
}

func newFakeGamification() *fakeGamification {
	return &fakeGamification{awards: make(map[user.UserID]int)}
}

func (g *fakeGamification) AwardPoints(_ context.Context, userID user.UserID, amount int, _ string) (int, error) {
	if g.fail {
		return 0, shared.WrapError("gamification", "Award", shared.ErrExternalService, "store down", nil)
	}
	if _, err := gamification.NewAward("a-1", userID, amount, "x"); err != nil {
		return 0, err
	}
	g.awards[userID] += amount
	return g.awards[userID], nil
}
