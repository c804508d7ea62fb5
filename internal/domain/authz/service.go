package authz

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/domain/roles"
	"backoffice/internal/domain/users"
)

// Service resolves identities and verifies credentials against the injected
// user and role registries.
type Service struct {
	users users.Store
	roles roles.Store
}

func NewService(userStore users.Store, roleStore roles.Store) *Service {
	return &Service{users: userStore, roles: roleStore}
}

// Resolve builds the identity for userID from the live registries.
//
// A missing user yields ErrUnauthenticated. A user whose role no longer
// exists resolves to an identity with an empty permission set, so every
// permission check on it fails closed.
func (s *Service) Resolve(ctx context.Context, userID int64) (*Identity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	identity := &Identity{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Permissions: map[roles.Permission]struct{}{},
	}

	role, err := s.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, roles.ErrNotFound) {
			return identity, nil
		}
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	identity.Role = role.Name
	for _, p := range role.Permissions {
		identity.Permissions[p] = struct{}{}
	}
	return identity, nil
}

// Authenticate verifies email and password and returns the matching user.
// Failure modes are deliberate and deterministic: ErrUserNotFound when no
// user matches the email case-insensitively, ErrUserSuspended when the
// account is suspended, ErrInvalidCredentials when the password does not
// match the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if user.Status == users.StatusSuspended {
		return nil, ErrUserSuspended
	}

	if err := user.Password.Compare(password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
