package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorship-backend/internal/domain/conversation"
	"github.com/mentorhub/mentorship-backend/internal/domain/mentorship"
	"github.com/mentorhub/mentorship-backend/internal/domain/notification"
	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
)

type respondFixture struct {
	handler       *RespondToRequestHandler
	mentorships   *fakeMentorshipRepo
	conversations *fakeConversationRepo
	notifications *fakeNotificationRepo
	points        *fakeGamification
	bus           *fakeBus
	request       *mentorship.Request
}

func newRespondFixture(t *testing.T) *respondFixture {
	t.Helper()
	userRepo := newFakeUserRepo(
		seedUser(t, "mentee-1", "Aibek"),
		seedUser(t, "mentor-1", "Dana"),
	)
	convRepo := newFakeConversationRepo()
	mentorshipRepo := newFakeMentorshipRepo(convRepo)
	notificationRepo := &fakeNotificationRepo{}
	points := newFakeGamification()
	bus := &fakeBus{}

	req, err := mentorship.NewRequest("req-1", "mentee-1", "mentor-1")
	require.NoError(t, err)
	require.NoError(t, mentorshipRepo.Create(context.Background(), req))

	h := NewRespondToRequestHandler(
		userRepo, mentorshipRepo, mentorshipRepo, notificationRepo,
		points, &seqIDs{}, bus, testLogger(),
	)
	return &respondFixture{
		handler:       h,
		mentorships:   mentorshipRepo,
		conversations: convRepo,
		notifications: notificationRepo,
		points:        points,
		bus:           bus,
		request:       req,
	}
}

func TestRespondToRequestAccept(t *testing.T) {
	ctx := context.Background()
	f := newRespondFixture(t)

	result, err := f.handler.Handle(ctx, RespondToRequestCommand{
		RequestID: "req-1", MentorID: "mentor-1", Status: "ACCEPTED",
	})
	require.NoError(t, err)

	assert.Equal(t, mentorship.StatusAccepted, result.Request.Status)
	require.NotNil(t, result.Request.RespondedAt)
	require.NotEmpty(t, result.ConversationID)

	// Conversation pairs exactly the mentor and the mentee.
	conv, err := f.conversations.GetByID(ctx, conversation.ConversationID(result.ConversationID))
	require.NoError(t, err)
	assert.Len(t, conv.ParticipantIDs, 2)
	assert.True(t, conv.HasParticipant("mentor-1"))
	assert.True(t, conv.HasParticipant("mentee-1"))

	// Points: 25 to the mentor, 10 to the mentee.
	assert.Equal(t, 25, f.points.awards["mentor-1"])
	assert.Equal(t, 10, f.points.awards["mentee-1"])

	// Mentee gets the acceptance notification with the mentor's name.
	menteeNotifs := f.notifications.forUser("mentee-1")
	require.Len(t, menteeNotifs, 1)
	assert.Equal(t, notification.TypeMentorshipRequestAccepted, menteeNotifs[0].Type)
	assert.Equal(t, "Your request with Dana has been accepted!", menteeNotifs[0].Message)

	assert.Len(t, f.bus.published(shared.EventRequestAccepted), 1)
}

func TestRespondToRequestReject(t *testing.T) {
	ctx := context.Background()
	f := newRespondFixture(t)

	result, err := f.handler.Handle(ctx, RespondToRequestCommand{
		RequestID: "req-1", MentorID: "mentor-1", Status: "REJECTED",
	})
	require.NoError(t, err)

	assert.Equal(t, mentorship.StatusRejected, result.Request.Status)
	assert.Empty(t, result.ConversationID)

	// No conversation, no points.
	assert.Empty(t, f.conversations.conversations)
	assert.Empty(t, f.points.awards)

	menteeNotifs := f.notifications.forUser("mentee-1")
	require.Len(t, menteeNotifs, 1)
	assert.Equal(t, notification.TypeMentorshipRequestRejected, menteeNotifs[0].Type)
	assert.Equal(t, "Your request with Dana was declined.", menteeNotifs[0].Message)

	assert.Len(t, f.bus.published(shared.EventRequestRejected), 1)
}

func TestRespondToRequestErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("already responded is a conflict", func(t *testing.T) {
		f := newRespondFixture(t)

		_, err := f.handler.Handle(ctx, RespondToRequestCommand{
			RequestID: "req-1", MentorID: "mentor-1", Status: "ACCEPTED",
		})
		require.NoError(t, err)

		_, err = f.handler.Handle(ctx, RespondToRequestCommand{
			RequestID: "req-1", MentorID: "mentor-1", Status: "REJECTED",
		})
		assert.True(t, shared.IsConflict(err), "expected conflict, got %v", err)

		// First decision stands.
		stored, err := f.mentorships.GetByID(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, mentorship.StatusAccepted, stored.Status)
	})

	t.Run("invalid status mutates nothing", func(t *testing.T) {
		f := newRespondFixture(t)

		for _, status := range []string{"PENDING", "CANCELLED", ""} {
			_, err := f.handler.Handle(ctx, RespondToRequestCommand{
				RequestID: "req-1", MentorID: "mentor-1", Status: status,
			})
			assert.True(t, shared.IsValidation(err), "status %q: expected validation error, got %v", status, err)
		}

		stored, err := f.mentorships.GetByID(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, mentorship.StatusPending, stored.Status)
		assert.Empty(t, f.conversations.conversations)
		assert.Empty(t, f.notifications.notifications)
	})

	t.Run("non-mentor caller sees not found", func(t *testing.T) {
		f := newRespondFixture(t)

		for _, caller := range []string{"mentee-1", "stranger"} {
			_, err := f.handler.Handle(ctx, RespondToRequestCommand{
				RequestID: "req-1", MentorID: caller, Status: "ACCEPTED",
			})
			assert.True(t, shared.IsNotFound(err), "caller %q: expected not found, got %v", caller, err)
		}

		stored, err := f.mentorships.GetByID(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, mentorship.StatusPending, stored.Status)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		f := newRespondFixture(t)

		_, err := f.handler.Handle(ctx, RespondToRequestCommand{
			RequestID: "ghost", MentorID: "mentor-1", Status: "ACCEPTED",
		})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("points failure does not fail acceptance", func(t *testing.T) {
		f := newRespondFixture(t)
		f.points.fail = true

		result, err := f.handler.Handle(ctx, RespondToRequestCommand{
			RequestID: "req-1", MentorID: "mentor-1", Status: "ACCEPTED",
		})
		require.NoError(t, err)
		assert.Equal(t, mentorship.StatusAccepted, result.Request.Status)
		assert.NotEmpty(t, result.ConversationID)
	})
}
