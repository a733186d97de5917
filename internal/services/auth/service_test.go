package auth

import (
	"context"
	"testing"

	"bankapp/internal/repositories"
	"bankapp/internal/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := repotest.NewStore()
	svc := NewService(store.Registry().Users)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "arjun",
		Email:    "arjun@example.com",
		Password: "s3cret",
		Name:     "Arjun",
	})
	require.NoError(t, err)
	assert.Empty(t, user.Password, "password hash must not leak")
	assert.Equal(t, "user", user.Role)

	result, err := svc.Login(context.Background(), "arjun", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Empty(t, result.User.Password)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	store := repotest.NewStore()
	svc := NewService(store.Registry().Users)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "arjun", Email: "arjun@example.com", Password: "pw",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username: "arjun", Email: "other@example.com", Password: "pw",
	})
	assert.ErrorIs(t, err, repositories.ErrUsernameTaken)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username: "other", Email: "arjun@example.com", Password: "pw",
	})
	assert.ErrorIs(t, err, repositories.ErrEmailTaken)
}

func TestRegisterRequiresFields(t *testing.T) {
	store := repotest.NewStore()
	svc := NewService(store.Registry().Users)

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "arjun"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := repotest.NewStore()
	svc := NewService(store.Registry().Users)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "arjun", Email: "arjun@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "arjun", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
