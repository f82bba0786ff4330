package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"notes/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSignInOut(t *testing.T) {
	ctx := context.Background()
	signer := auth.NewJWT("secret", "notes-local")
	path := filepath.Join(t.TempDir(), "session.yaml")

	l, err := NewLocal(signer, path, "A@example.com")
	require.NoError(t, err)

	var states []*User
	unsubscribe := l.OnAuthStateChanged(func(u *User) { states = append(states, u) })
	require.Len(t, states, 1)
	assert.Nil(t, states[0], "starts signed out")

	u, err := l.SignIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
	require.Len(t, states, 2)
	assert.Equal(t, u, states[1])

	email, err := signer.Verify(u.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)

	// A second provider restores the stored session.
	restored, err := NewLocal(signer, path, "")
	require.NoError(t, err)
	require.NotNil(t, restored.CurrentUser())
	assert.Equal(t, u.Token, restored.CurrentUser().Token)

	require.NoError(t, l.SignOut(ctx))
	require.Len(t, states, 3)
	assert.Nil(t, states[2])
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	unsubscribe()
	_, err = l.SignIn(ctx)
	require.NoError(t, err)
	assert.Len(t, states, 3, "unsubscribed callbacks are not called")
}

func TestLocalIgnoresForeignSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	other, err := NewLocal(auth.NewJWT("other-secret", "notes-local"), path, "a@example.com")
	require.NoError(t, err)
	_, err = other.SignIn(context.Background())
	require.NoError(t, err)

	l, err := NewLocal(auth.NewJWT("secret", "notes-local"), path, "")
	require.NoError(t, err)
	assert.Nil(t, l.CurrentUser())
}

func TestLocalWithoutAccount(t *testing.T) {
	l, err := NewLocal(auth.NewJWT("secret", "notes-local"), "", "")
	require.NoError(t, err)

	_, err = l.SignIn(context.Background())
	assert.ErrorIs(t, err, ErrNoAccount)
}

func TestLocalCorruptSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("email: [unterminated"), 0o600))

	_, err := NewLocal(auth.NewJWT("secret", "notes-local"), path, "")
	assert.Error(t, err)
}
