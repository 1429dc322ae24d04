package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/store-rating-service/internal/config"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/ratelimit"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *memoryBackend) {
	t.Helper()
	backend := newMemoryBackend()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:   &fakeUserRepo{b: backend},
		Limiter:    ratelimit.NewLoginLimiter(nil, 0, 0, nil),
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	return svc, backend
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "Alice Example", "alice@example.com", "s3cret!Pass", "1 Main St")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, token)

	// The issued token carries the subject and role.
	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, domain.RoleUser, claims.Role)

	logged, token2, _, err := svc.Login(ctx, "alice@example.com", "s3cret!Pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token2)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Alice Example", "alice@example.com", "s3cret!Pass", "")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Someone Else", "alice@example.com", "0ther!Pass", "")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestAuthService_LoginRejections(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Alice Example", "alice@example.com", "s3cret!Pass", "")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		require.Error(t, err)
		de := apperrors.ToDomainError(err)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
		assert.Equal(t, 400, de.HTTPStatus)
	})

	t.Run("unknown email looks identical", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
	})
}

func TestAuthService_CreateAccountRoles(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, CreateAccountInput{
		Name:     "Olive Owner",
		Email:    "olive@example.com",
		Password: "s3cret!Pass",
		Role:     domain.RoleStoreOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStoreOwner, user.Role)

	_, err = svc.CreateAccount(ctx, CreateAccountInput{
		Name:     "Bad Role",
		Email:    "bad@example.com",
		Password: "s3cret!Pass",
		Role:     domain.Role("superuser"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Alice Example", "alice@example.com", "s3cret!Pass", "")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "s3cret!Pass", "n3w!Password"))

	// Old password no longer works, the new one does.
	_, _, _, err = svc.Login(ctx, "alice@example.com", "s3cret!Pass")
	require.Error(t, err)
	_, _, _, err = svc.Login(ctx, "alice@example.com", "n3w!Password")
	assert.NoError(t, err)
}

func TestAuthService_ChangePasswordWrongCurrent(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Alice Example", "alice@example.com", "s3cret!Pass", "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "not-the-password", "n3w!Password")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
