package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorship-backend/internal/domain/shared"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with profile", func(t *testing.T) {
		u, err := NewUser("user-1", "Aibek@Example.COM", "Aibek", "")
		require.NoError(t, err)

		assert.Equal(t, "aibek@example.com", u.Email, "email is normalized")
		assert.Equal(t, 0, u.Points)
		require.NotNil(t, u.Profile)
		assert.Equal(t, UserID("user-1"), u.Profile.UserID)
		assert.Equal(t, "Aibek", u.Profile.Name)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		_, err := NewUser("user-1", "   ", "Aibek", "")
		assert.ErrorIs(t, err, shared.ErrEmptyValue)
	})
}

func TestAddPoints(t *testing.T) {
	u, _ := NewUser("user-1", "a@b.c", "", "")

	require.NoError(t, u.AddPoints(25))
	require.NoError(t, u.AddPoints(10))
	assert.Equal(t, 35, u.Points)

	assert.ErrorIs(t, u.AddPoints(0), shared.ErrInvalidAwardAmount)
	assert.ErrorIs(t, u.AddPoints(-5), shared.ErrInvalidAwardAmount)
	assert.Equal(t, 35, u.Points)
}

func TestDisplayName(t *testing.T) {
	var p *Profile
	assert.Equal(t, "a new mentee", p.DisplayName("a new mentee"))

	p = &Profile{Name: "  "}
	assert.Equal(t, "fallback", p.DisplayName("fallback"))

	p = &Profile{Name: "Dana"}
	assert.Equal(t, "Dana", p.DisplayName("fallback"))
}
