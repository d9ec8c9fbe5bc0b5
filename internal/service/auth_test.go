package service

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/habitkit/internal/repository"
)

const testPassword = "correct horse battery"

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, " Ana@Example.com ", testPassword, "Ana", "Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	profile, err := f.profiles.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, "Europe/Berlin", profile.Timezone)

	loggedIn, err := f.auth.Login("ANA@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = f.auth.Login("ana@example.com", "wrong password here")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login("nobody@example.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterDefaultsTimezone(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Register(context.Background(), "ana@example.com", testPassword, "", "")
	require.NoError(t, err)

	profile, err := f.profiles.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "UTC", profile.Timezone)
}

func TestAuthService_RegisterRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "not-an-email", testPassword, "", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = f.auth.Register(ctx, "ana@example.com", "short", "", "")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = f.auth.Register(ctx, "ana@example.com", testPassword, "", "Mars/Olympus")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.auth.Register(ctx, "ana@example.com", testPassword, "", "")
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, "ANA@example.com", testPassword, "", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_JWT(t *testing.T) {
	f := newFixture(t)
	user, err := f.auth.Register(context.Background(), "ana@example.com", testPassword, "", "")
	require.NoError(t, err)

	token, expiry, err := f.auth.GenerateJWT(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)

	userID, err := f.auth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	_, err = f.auth.VerifyJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(repository.NewUserRepository(f.db), repository.NewProfileRepository(f.db),
		nil, "another-secret", false, time.Hour)
	_, err = other.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewAuthService(repository.NewUserRepository(f.db), repository.NewProfileRepository(f.db),
		nil, "test-secret", false, -time.Hour)
	token, _, err = expired.GenerateJWT(user)
	require.NoError(t, err)
	_, err = f.auth.VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Cookie(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.auth.SetJWTCookie(rec, "token", time.Now().Add(time.Hour))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, AuthCookieName, cookies[0].Name)
	assert.Equal(t, "token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	f.auth.ClearJWTCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
