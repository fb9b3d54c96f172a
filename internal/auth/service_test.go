package auth

import (
	"context"
	"testing"

	"github.com/angelmondragon/chemstock/pkg/db/models"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Username != username {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func TestLoginSucceedsWithMatchingCredentials(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Username: "admin", Password: "admin123"}
	svc, err := NewService(&stubUserRepo{user: admin})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, user.ID)
}

func TestLoginFailsTheSameWayForBothMistakes(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Username: "admin", Password: "admin123"}
	svc, err := NewService(&stubUserRepo{user: admin})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "admin", "nope")
	_, unknownUser := svc.Login(context.Background(), "ghost", "admin123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.True(t, pkgerrors.IsCode(wrongPassword, pkgerrors.CodeUnauthorized))
	assert.True(t, pkgerrors.IsCode(unknownUser, pkgerrors.CodeUnauthorized))
	// Callers must not be able to tell the two failures apart.
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLoginRequiresExactPasswordMatch(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Username: "admin", Password: "admin123"}
	svc, err := NewService(&stubUserRepo{user: admin})
	require.NoError(t, err)

	for _, password := range []string{"ADMIN123", "admin123 ", " admin123", ""} {
		_, err := svc.Login(context.Background(), "admin", password)
		assert.Error(t, err, "password %q must not match", password)
	}
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}
