package query

import (
	"context"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/mentorship"
	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
	"github.com/mentorhub/mentorship-backend/internal/domain/user"
)

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

// fakeMentorshipRepo is an in-memory mentorship.Repository that preserves
// insertion order, newest first, matching the store's ordering contract.
type fakeMentorshipRepo struct {
	requests []*mentorship.Request
}

func (r *fakeMentorshipRepo) Create(_ context.Context, req *mentorship.Request) error {
	r.requests = append([]*mentorship.Request{req}, r.requests...)
	return nil
}

func (r *fakeMentorshipRepo) GetByID(_ context.Context, id mentorship.RequestID) (*mentorship.Request, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, shared.ErrRequestNotFound
}

func (r *fakeMentorshipRepo) GetByPair(_ context.Context, menteeID, mentorID user.UserID) (*mentorship.Request, error) {
	for _, req := range r.requests {
		if req.MenteeID == menteeID && req.MentorID == mentorID {
			return req, nil
		}
	}
	return nil, shared.ErrRequestNotFound
}

func (r *fakeMentorshipRepo) ListByMentee(_ context.Context, menteeID user.UserID) ([]*mentorship.Request, error) {
	var out []*mentorship.Request
	for _, req := range r.requests {
		if req.MenteeID == menteeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeMentorshipRepo) ListByMentor(_ context.Context, mentorID user.UserID) ([]*mentorship.Request, error) {
	var out []*mentorship.Request
	for _, req := range r.requests {
		if req.MentorID == mentorID {
			out = append(out, req)
		}
	}
	return out, nil
}

// fakeConversationRepo is an in-memory conversation.Repository. Conversations
// keep insertion order; ListByParticipant returns them as stored.
type fakeConversationRepo struct {
	conversations []*conversation.Conversation
	messages      []*conversation.Message
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id conversation.ConversationID) (*conversation.Conversation, error) {
	for _, c := range r.conversations {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrConversationNotFound
}

func (r *fakeConversationRepo) ListByParticipant(_ context.Context, userID user.UserID) ([]*conversation.Conversation, error) {
	out := make([]*conversation.Conversation, 0)
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			cp := *c
			if msgs, _ := r.ListMessages(context.Background(), c.ID); len(msgs) > 0 {
				cp.LastMessage = msgs[len(msgs)-1]
			}
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) IsParticipant(_ context.Context, id conversation.ConversationID, userID user.UserID) (bool, error) {
	for _, c := range r.conversations {
		if c.ID == id {
			return c.HasParticipant(userID), nil
		}
	}
	return false, nil
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
	r.messages = append(r.messages, m)
	return nil
}

// fakeNotificationRepo is an in-memory notification.Repository.
type fakeNotificationRepo struct {
	notifications []*notification.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.notifications = append([]*notification.Notification{n}, r.notifications...)
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
