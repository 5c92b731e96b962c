package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-server/internal/domain"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.Issue("user-1")
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewManager("other", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsTampered(t *testing.T) {
	m := NewManager("secret", time.Hour)
	alice, err := m.Issue("user-1")
	require.NoError(t, err)
	bob, err := m.Issue("user-2")
	require.NoError(t, err)

	a := strings.Split(alice, ".")
	b := strings.Split(bob, ".")
	require.Len(t, a, 3)
	require.Len(t, b, 3)

	// bob's claims under alice's signature
	forged := strings.Join([]string{a[0], b[1], a[2]}, ".")
	_, err = m.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Issue("user-1")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsEmptyAndGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour)

	_, err := m.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserContext(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), &domain.User{ID: "u1", Username: "alice"})
	user, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)

	_, ok = UserFromContext(WithUser(context.Background(), nil))
	assert.False(t, ok)
}
