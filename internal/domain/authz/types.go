package authz

import (
	"errors"

	"backoffice/internal/domain/roles"
)

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("no user with that email")
	ErrUserSuspended      = errors.New("user account is suspended")
)

// Identity is the resolved view of the active user: user record joined with
// its role's permission set. It is recomputed from the live registries on
// every request, never cached.
type Identity struct {
	ID          int64                         `json:"id"`
	Name        string                        `json:"name"`
	Email       string                        `json:"email"`
	Role        string                        `json:"role"`
	Permissions map[roles.Permission]struct{} `json:"-"`
}

// HasPermission is total: a nil identity or an identity with no permission
// set answers false, never an error.
func (i *Identity) HasPermission(p roles.Permission) bool {
	if i == nil || i.Permissions == nil {
		return false
	}
	_, ok := i.Permissions[p]
	return ok
}

// HasAnyPermission reports whether at least one of the given permissions is
// held. Like HasPermission it is nil-safe and fail-closed.
func (i *Identity) HasAnyPermission(perms ...roles.Permission) bool {
	for _, p := range perms {
		if i.HasPermission(p) {
			return true
		}
	}
	return false
}

// PermissionList returns the held permissions as a slice, for responses.
func (i *Identity) PermissionList() []roles.Permission {
	if i == nil {
		return nil
	}
	out := make([]roles.Permission, 0, len(i.Permissions))
	for p := range i.Permissions {
		out = append(out, p)
	}
	return out
}
