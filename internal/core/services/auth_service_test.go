package services

import (
	"context"
	"testing"

	"roomfinder/internal/core/domain"
	"roomfinder/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Signup(ctx, &SignupInput{Username: "alice", Password: "password123", Role: domain.RoleLister, Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, domain.RoleLister, res.User.Role)
	assert.False(t, res.User.OnboardingComplete)

	claims, err := jwt.ValidateAccessToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "lister", claims.Role)
	assert.Equal(t, "Alice", claims.Name)

	login, err := f.auth.Login(ctx, &LoginInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)

	stored, err := f.store.Accounts().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
}

func TestAuthService_SignupDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.signup(t, "alice", domain.RoleUser)

	_, err := f.auth.Signup(ctx, &SignupInput{Username: "alice", Password: "password456", Role: domain.RoleUser, Name: "Other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.auth.Signup(ctx, &SignupInput{Username: "bob", Password: "password456", Role: domain.RoleUser, Name: "Bob"})
	assert.NoError(t, err)
}

func TestAuthService_LoginFailuresLookAlike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "alice", domain.RoleUser)

	_, wrongPassword := f.auth.Login(ctx, &LoginInput{Username: "alice", Password: "nope-nope"})
	_, unknownUser := f.auth.Login(ctx, &LoginInput{Username: "ghost", Password: "password123"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seeker(t, "sarah.j", nil)

	me, err := f.auth.Me(ctx, "sarah.j")
	require.NoError(t, err)
	assert.True(t, me.OnboardingComplete)

	_, err = f.auth.Me(ctx, "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
