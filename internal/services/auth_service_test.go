package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arens/quizdeck/internal/auth"
	apperrors "github.com/arens/quizdeck/internal/errors"
	"github.com/arens/quizdeck/internal/repository/sqlite"
	"github.com/arens/quizdeck/internal/services"
	"github.com/arens/quizdeck/internal/testutil"
)

func newAuthService(t *testing.T) services.AuthService {
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })
	tokens := auth.NewTokens("test-secret", time.Hour)
	return services.NewAuthService(sqlite.NewUserRepository(db), tokens)
}

func appErr(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appError, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected *AppError, got %T", err)
	return appError
}

func TestRegister_HappyPath(t *testing.T) {
	svc := newAuthService(t)

	user, token, err := svc.Register(context.Background(), "ada", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada", user.Username)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "hunter22", user.PasswordHash, "password must not be stored in plain text")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "ada", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "ada", "other-pass")
	assert.Equal(t, apperrors.ErrCodeConflict, appErr(t, err).Code)
}

func TestRegister_Validation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "ab", "hunter22")
	assert.Equal(t, apperrors.ErrCodeValidation, appErr(t, err).Code)

	_, _, err = svc.Register(ctx, "ada", "short")
	assert.Equal(t, apperrors.ErrCodeValidation, appErr(t, err).Code)
}

func TestLogin_HappyPath(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "ada", "hunter22")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "ada", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "ada", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada", "wrong")
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr(t, err).Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr(t, err).Code)
}

func TestMe(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "ada", "hunter22")
	require.NoError(t, err)

	user, err := svc.Me(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)

	_, err = svc.Me(ctx, 999)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr(t, err).Code)
}
