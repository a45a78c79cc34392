package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskan/internal/models"
)

func newAuthService(providers map[string]string) *AuthService {
	return NewAuthService(newFakeUserRepo(), providers, testLogger())
}

func TestCreateAccountAndLogin(t *testing.T) {
	svc := newAuthService(nil)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, "Alice@Example.com", "hunter22", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	token, loggedIn, err := svc.CreateSession(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	current, err := svc.CurrentSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
}

func TestCreateAccountValidation(t *testing.T) {
	svc := newAuthService(nil)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "", "pw", "Name")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.CreateAccount(ctx, "a@b.c", "pw", "A")
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, "a@b.c", "pw2", "B")
	assert.ErrorIs(t, err, models.ErrValidation, "duplicate email rejected")
}

func TestCreateSessionWrongCredentials(t *testing.T) {
	svc := newAuthService(nil)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "a@b.c", "correct", "A")
	require.NoError(t, err)

	_, _, err = svc.CreateSession(ctx, "a@b.c", "wrong")
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)

	_, _, err = svc.CreateSession(ctx, "nobody@b.c", "correct")
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestEndSession(t *testing.T) {
	svc := newAuthService(nil)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, "a@b.c", "pw", "A")
	require.NoError(t, err)
	token, _, err := svc.CreateSession(ctx, "a@b.c", "pw")
	require.NoError(t, err)

	svc.EndSession(token)
	_, err = svc.CurrentSession(ctx, token)
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)

	// Ending an unknown token is a no-op.
	svc.EndSession("bogus")
}

func TestBeginFederatedLogin(t *testing.T) {
	svc := newAuthService(map[string]string{
		"google": "https://accounts.google.com/o/oauth2/v2/auth?client_id=x",
	})

	url, err := svc.BeginFederatedLogin("google")
	require.NoError(t, err)
	assert.Contains(t, url, "accounts.google.com")

	_, err = svc.BeginFederatedLogin("github")
	assert.ErrorIs(t, err, models.ErrServiceUnavailable)
}
