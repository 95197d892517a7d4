package mentorship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
)

func TestNewRequest(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		req, err := NewRequest("req-1", "mentee-1", "mentor-1")
		require.NoError(t, err)

		assert.Equal(t, StatusPending, req.Status)
		assert.Equal(t, RequestID("req-1"), req.ID)
		assert.Nil(t, req.RespondedAt)
		assert.False(t, req.CreatedAt.IsZero())
	})

	t.Run("rejects self request", func(t *testing.T) {
		_, err := NewRequest("req-1", "user-1", "user-1")
		assert.ErrorIs(t, err, shared.ErrSelfRequest)
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		_, err := NewRequest("", "mentee-1", "mentor-1")
		assert.Error(t, err)

		_, err = NewRequest("req-1", "", "mentor-1")
		assert.ErrorIs(t, err, shared.ErrInvalidUserID)

		_, err = NewRequest("req-1", "mentee-1", "")
		assert.ErrorIs(t, err, shared.ErrInvalidUserID)
	})
}

func TestRequestRespond(t *testing.T) {
	t.Run("pending to accepted", func(t *testing.T) {
		req, _ := NewRequest("req-1", "mentee-1", "mentor-1")

		err := req.Respond(StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, req.Status)
		require.NotNil(t, req.RespondedAt)
	})

	t.Run("pending to rejected", func(t *testing.T) {
		req, _ := NewRequest("req-1", "mentee-1", "mentor-1")

		err := req.Respond(StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, req.Status)
	})

	t.Run("terminal states do not transition", func(t *testing.T) {
		for _, terminal := range []RequestStatus{StatusAccepted, StatusRejected} {
			req, _ := NewRequest("req-1", "mentee-1", "mentor-1")
			require.NoError(t, req.Respond(terminal))

			err := req.Respond(StatusAccepted)
			assert.ErrorIs(t, err, shared.ErrRequestNotPending)
			assert.Equal(t, terminal, req.Status, "status must not change")

			err = req.Respond(StatusRejected)
			assert.ErrorIs(t, err, shared.ErrRequestNotPending)
			assert.Equal(t, terminal, req.Status)
		}
	})

	t.Run("pending is not a response target", func(t *testing.T) {
		req, _ := NewRequest("req-1", "mentee-1", "mentor-1")

		err := req.Respond(StatusPending)
		assert.ErrorIs(t, err, shared.ErrInvalidStatus)
		assert.Equal(t, StatusPending, req.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		req, _ := NewRequest("req-1", "mentee-1", "mentor-1")

		err := req.Respond("CANCELLED")
		assert.ErrorIs(t, err, shared.ErrInvalidStatus)
	})
}

func TestRequestStatus(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusAccepted.IsValid())
	assert.True(t, StatusRejected.IsValid())
	assert.False(t, RequestStatus("CANCELLED").IsValid())

	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())

	assert.False(t, StatusPending.IsResponse())
	assert.True(t, StatusAccepted.IsResponse())
	assert.True(t, StatusRejected.IsResponse())
}

func TestRequestRoles(t *testing.T) {
	req, _ := NewRequest("req-1", "mentee-1", "mentor-1")

	assert.True(t, req.IsMentor("mentor-1"))
	assert.False(t, req.IsMentor("mentee-1"))
	assert.True(t, req.IsMentee("mentee-1"))
	assert.False(t, req.IsMentee("someone-else"))
}
