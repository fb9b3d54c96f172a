package auth

import (
	"context"
	"fmt"

	"github.com/angelmondragon/chemstock/pkg/db"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
)

const invalidCredentialsMessage = "Invalid username or password"

// Service defines the behavior needed by the login controller.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type service struct {
	users userRepository
}

// NewService constructs a login service with the provided dependencies.
func NewService(users userRepository) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{users: users}, nil
}

// Login matches username and password exactly. Passwords are plaintext by
// design of the system being replaced; the defect is documented, not fixed.
// Unknown user and wrong password are deliberately indistinguishable.
func (s *service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	if user.Password != password {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}
