package main

import (
	"testing"
	"time"

	"trackex/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	app := newTestApp(t)

	user, err := app.RegisterUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotContains(t, string(user.HashedPassword), "secret123", "plaintext must never be stored")

	got, err := app.Authenticate("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicates(t *testing.T) {
	app := newTestApp(t)

	_, err := app.RegisterUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = app.RegisterUser("alice", "other@example.com", "secret123")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = app.RegisterUser("alice2", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	_, err := app.RegisterUser("alice", "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = app.RegisterUser("alice", "not-an-email", "secret123")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = app.RegisterUser("", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthenticateDoesNotDistinguishFailures(t *testing.T) {
	app := newTestApp(t)

	_, err := app.RegisterUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, wrongPassword := app.Authenticate("alice", "wrong")
	_, unknownUser := app.Authenticate("nobody", "secret123")
	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAccessTokenRoundTrip(t *testing.T) {
	app := newTestApp(t)
	user := seedUser(t, app, "alice", "alice@example.com")

	token, err := app.issueAccessToken(user)
	require.NoError(t, err)

	resolved, err := app.resolveAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved)
}

func TestResolveAccessTokenRejectsGarbage(t *testing.T) {
	app := newTestApp(t)

	_, err := app.resolveAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveAccessTokenRejectsExpired(t *testing.T) {
	app := newTestApp(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	tokenString, err := expired.SignedString(app.cfg.JWTSecret)
	require.NoError(t, err)

	_, err = app.resolveAccessToken(tokenString)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveAccessTokenRejectsWrongKey(t *testing.T) {
	app := newTestApp(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = app.resolveAccessToken(tokenString)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefreshTokenRotation(t *testing.T) {
	app := newTestApp(t)
	user := seedUser(t, app, "alice", "alice@example.com")

	raw, err := app.issueRefreshToken(user.ID)
	require.NoError(t, err)

	access, next, err := app.rotateRefreshToken(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, next)
	assert.NotEqual(t, raw, next)

	// The consumed token is revoked.
	_, _, err = app.rotateRefreshToken(raw)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// The rotated one still works.
	_, _, err = app.rotateRefreshToken(next)
	assert.NoError(t, err)
}

func TestRevokeRefreshToken(t *testing.T) {
	app := newTestApp(t)
	user := seedUser(t, app, "alice", "alice@example.com")

	raw, err := app.issueRefreshToken(user.ID)
	require.NoError(t, err)
	require.NoError(t, app.revokeRefreshToken(raw))

	_, _, err = app.rotateRefreshToken(raw)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRefreshTokenStoredHashed(t *testing.T) {
	app := newTestApp(t)
	user := seedUser(t, app, "alice", "alice@example.com")

	raw, err := app.issueRefreshToken(user.ID)
	require.NoError(t, err)

	var rt models.RefreshToken
	require.NoError(t, app.db.First(&rt).Error)
	assert.NotEqual(t, raw, rt.TokenHash)
}

func TestChangePassword(t *testing.T) {
	app := newTestApp(t)

	_, err := app.RegisterUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	user, err := app.Authenticate("alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, app.ChangePassword(user.ID, "secret123", "newsecret"))

	_, err = app.Authenticate("alice", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = app.Authenticate("alice", "newsecret")
	assert.NoError(t, err)

	err = app.ChangePassword(user.ID, "wrong", "whatever123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
