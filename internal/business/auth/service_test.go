package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dsmelov/calendar-backend/internal/database"
	"github.com/dsmelov/calendar-backend/internal/database/databasetest"
	"github.com/dsmelov/calendar-backend/internal/model"
)

type fakeUsersRepository struct {
	nextID int64
	byName map[string]*model.User
}

func newFakeUsersRepository() *fakeUsersRepository {
	return &fakeUsersRepository{nextID: 1, byName: map[string]*model.User{}}
}

func (r *fakeUsersRepository) CreateUser(_ context.Context, _ database.Queryable, user *model.UserCreate) (int64, error) {
	if _, ok := r.byName[user.Username]; ok {
		return 0, model.ErrAlreadyExists
	}

	id := r.nextID
	r.nextID++
	r.byName[user.Username] = &model.User{ID: id, UserCreate: *user}
	return id, nil
}

func (r *fakeUsersRepository) GetUserByUsername(_ context.Context, _ database.Queryable, username string) (*model.User, error) {
	user, ok := r.byName[username]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return user, nil
}

func newTestService() (*Service, *fakeUsersRepository) {
	users := newFakeUsersRepository()
	return NewService(databasetest.New(), users), users
}

func TestRegister(t *testing.T) {
	s, users := newTestService()
	ctx := context.Background()

	user, err := s.Register(ctx, "  Alice ", "Passw0rd")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want lower-cased and trimmed", user.Username)
	}
	if user.ID == 0 {
		t.Error("registered user must have an id")
	}
	if user.PasswordHash == "Passw0rd" {
		t.Error("password must not be stored in plain text")
	}
	if _, ok := users.byName["alice"]; !ok {
		t.Error("user not persisted")
	}
}

func TestRegisterErrors(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	if _, err := s.Register(ctx, "   ", "Passw0rd"); !errors.Is(err, model.ErrValidation) {
		t.Errorf("blank username: got %v, want ErrValidation", err)
	}
	if _, err := s.Register(ctx, "alice", "weak"); !errors.Is(err, model.ErrValidation) {
		t.Errorf("weak password: got %v, want ErrValidation", err)
	}

	if _, err := s.Register(ctx, "alice", "Passw0rd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, "ALICE", "Passw0rd"); !errors.Is(err, model.ErrAlreadyExists) {
		t.Errorf("duplicate username: got %v, want ErrAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	registered, err := s.Register(ctx, "alice", "Passw0rd")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := s.Login(ctx, "Alice", "Passw0rd")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged in as id %d, want %d", user.ID, registered.ID)
	}

	if _, err := s.Login(ctx, "alice", "WrongPass1"); !errors.Is(err, model.ErrAuthentication) {
		t.Errorf("wrong password: got %v, want ErrAuthentication", err)
	}
	if _, err := s.Login(ctx, "nobody", "Passw0rd"); !errors.Is(err, model.ErrAuthentication) {
		t.Errorf("unknown username: got %v, want ErrAuthentication", err)
	}
}
