package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// UpdateUserInput lists the user fields a PATCH may change. Nil fields are left as they are.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *model.Role
}

// UserService exposes user account operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, int64, error)
	UpdateUser(ctx context.Context, actor *model.User, id uuid.UUID, in UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// userService reads users from the store on every call.
// Principals are never cached so role changes and deletions apply to the next request.
type userService struct {
	repo        repository.UserRepository
	credentials *auth.CredentialStore
}

// NewUserService builds a UserService on top of the user repository.
func NewUserService(repo repository.UserRepository, credentials *auth.CredentialStore) UserService {
	return &userService{repo: repo, credentials: credentials}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *userService) UpdateUser(ctx context.Context, actor *model.User, id uuid.UUID, in UpdateUserInput) (*model.User, error) {
	if in.Role != nil && !actor.IsAdmin() {
		return nil, errors.Forbidden("only admins can change roles")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = model.NormalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := s.credentials.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, auth.CheckDuplicateEmail(err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "user")
	}
	return nil
}
