package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/jwt"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/repository"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/testutil"
)

const testSecret = "test-secret-key-for-testing"

func TestSessionService_Session_ClearsNewUserMarker(t *testing.T) {
	f, cleanup := setupAuthService(t)
	defer cleanup()

	service := NewSessionService(f.service)
	user := testutil.TestUser(t, f.db)

	token, err := f.service.IssueToken(user, true)
	require.NoError(t, err)
	claims, err := jwt.ParseToken(token, testSecret)
	require.NoError(t, err)

	resp, err := service.Session(claims)
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
	assert.Equal(t, user.Email, resp.User.Email)
	require.NotEmpty(t, resp.Token)

	reissued, err := jwt.ParseToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.False(t, reissued.IsNewUser)

	// the reissued token no longer triggers the welcome flag
	resp, err = service.Session(reissued)
	require.NoError(t, err)
	assert.False(t, resp.IsNewUser)
	assert.Empty(t, resp.Token)
}

func TestSessionService_Refresh_ReadsStore(t *testing.T) {
	f, cleanup := setupAuthService(t)
	defer cleanup()

	service := NewSessionService(f.service)
	user := testutil.TestUser(t, f.db, testutil.WithVerified(false))

	_, err := repository.NewUserRepository(f.db).UpdatePlan(user.ID, model.RolePremium, model.Unlimited())
	require.NoError(t, err)
	_, err = repository.NewUserRepository(f.db).MarkEmailVerified(user.ID)
	require.NoError(t, err)

	resp, err := service.Refresh(user.ID)
	require.NoError(t, err)

	claims, err := jwt.ParseToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "PREMIUM", claims.Role)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, "PREMIUM", resp.User.Role)
}

func TestSessionService_Refresh_UnknownUser(t *testing.T) {
	f, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := NewSessionService(f.service).Refresh(424242)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestSessionService_Refresh_StoreFailure(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	cfg := testConfig()
	auth := NewAuthService(repository.NewUserRepository(db), nil, nil, cfg)

	_, err := NewSessionService(auth).Refresh(1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
}
