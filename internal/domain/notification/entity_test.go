package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestReceived(t *testing.T) {
	t.Run("with mentee name", func(t *testing.T) {
		n, err := NewRequestReceived("n-1", "mentor-1", "Aibek")
		require.NoError(t, err)

		assert.Equal(t, TypeNewMentorshipRequest, n.Type)
		assert.Equal(t, "You have a new mentorship request from Aibek.", n.Message)
		assert.Equal(t, "/requests", n.Link)
		assert.False(t, n.Read)
	})

	t.Run("falls back when mentee has no name", func(t *testing.T) {
		n, err := NewRequestReceived("n-1", "mentor-1", "")
		require.NoError(t, err)
		assert.Equal(t, "You have a new mentorship request from a new mentee.", n.Message)
	})
}

func TestNewRequestAccepted(t *testing.T) {
	n, err := NewRequestAccepted("n-1", "mentee-1", "Dana")
	require.NoError(t, err)

	assert.Equal(t, TypeMentorshipRequestAccepted, n.Type)
	assert.Equal(t, "Your request with Dana has been accepted!", n.Message)
	assert.Equal(t, "/my-mentors", n.Link)
}

func TestNewRequestRejected(t *testing.T) {
	n, err := NewRequestRejected("n-1", "mentee-1", "Dana")
	require.NoError(t, err)

	assert.Equal(t, TypeMentorshipRequestRejected, n.Type)
	assert.Equal(t, "Your request with Dana was declined.", n.Message)
	assert.Equal(t, "/my-requests", n.Link)
}

func TestNewValidation(t *testing.T) {
	_, err := New("", "user-1", TypeNewMentorshipRequest, "m", "/l")
	assert.Error(t, err)

	_, err = New("n-1", "", TypeNewMentorshipRequest, "m", "/l")
	assert.Error(t, err)

	_, err = New("n-1", "user-1", Type("UNKNOWN"), "m", "/l")
	assert.Error(t, err)
}

func TestMarkRead(t *testing.T) {
	n, _ := NewRequestAccepted("n-1", "mentee-1", "Dana")

	n.MarkRead()
	assert.True(t, n.Read)

	// Idempotent
	n.MarkRead()
	assert.True(t, n.Read)
}
