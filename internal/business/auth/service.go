package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/model"
	"github.com/dsmelov/calendar-backend/internal/pkg/password"
)

// Service is the credential store: it creates accounts and verifies
// username/password pairs. Usernames are unique, compared
// case-insensitively and stored lower-cased; only the bcrypt hash of a
// password is ever persisted.
type Service struct {
	db              database.PGX
	usersRepository usersRepository
}

type usersRepository interface {
	CreateUser(ctx context.Context, q database.Queryable, user *model.UserCreate) (int64, error)
	GetUserByUsername(ctx context.Context, q database.Queryable, username string) (*model.User, error)
}

func NewService(db database.PGX, users usersRepository) *Service {
	return &Service{
		db:              db,
		usersRepository: users,
	}
}

func (s *Service) Register(ctx context.Context, username, plain string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", model.ErrValidation)
	}

	if err := password.Validate(plain); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userCreate := &model.UserCreate{
		Username:     username,
		PasswordHash: hash,
	}

	id, err := s.usersRepository.CreateUser(ctx, s.db, userCreate)
	if err != nil {
		return nil, fmt.Errorf("usersRepository.CreateUser: %w", err)
	}

	return &model.User{ID: id, UserCreate: *userCreate}, nil
}

// Login verifies the pair and returns the user. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, plain string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.usersRepository.GetUserByUsername(ctx, s.db, username)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return nil, model.ErrAuthentication
		}
		return nil, fmt.Errorf("usersRepository.GetUserByUsername: %w", err)
	}

	if !password.Verify(user.PasswordHash, plain) {
		return nil, model.ErrAuthentication
	}

	return user, nil
}
