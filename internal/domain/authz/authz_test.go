package authz

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/domain/roles"
	"backoffice/internal/domain/users"
)

type memUserStore struct {
	byID    map[int64]*users.User
	byEmail map[string]*users.User
}

func newMemUserStore(list ...*users.User) *memUserStore {
	s := &memUserStore{byID: map[int64]*users.User{}, byEmail: map[string]*users.User{}}
	for _, u := range list {
		s.byID[u.ID] = u
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *memUserStore) Create(ctx context.Context, u *users.User) (*users.User, error) {
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
	return u, nil
}

func (s *memUserStore) GetByID(ctx context.Context, id int64) (*users.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) List(ctx context.Context, limit, offset int) ([]*users.User, int, error) {
	return nil, 0, nil
}

func (s *memUserStore) Update(ctx context.Context, u *users.User) error { return nil }

func (s *memUserStore) SetStatus(ctx context.Context, id int64, status users.Status) error {
	u, ok := s.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	u.Status = status
	return nil
}

func (s *memUserStore) IsEmailAvailable(ctx context.Context, email string, excludeID int64) (bool, error) {
	return true, nil
}

func (s *memUserStore) SaveRefreshToken(ctx context.Context, userID int64, token string) error {
	return nil
}

func (s *memUserStore) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	return "", nil
}

func (s *memUserStore) DeleteRefreshToken(ctx context.Context, userID int64) error { return nil }

type memRoleStore struct {
	byID map[int64]*roles.Role
}

func (s *memRoleStore) Create(ctx context.Context, r *roles.Role) (*roles.Role, error) {
	s.byID[r.ID] = r
	return r, nil
}

func (s *memRoleStore) GetByID(ctx context.Context, id int64) (*roles.Role, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, roles.ErrNotFound
	}
	return r, nil
}

func (s *memRoleStore) List(ctx context.Context) ([]*roles.Role, error) { return nil, nil }

func (s *memRoleStore) Update(ctx context.Context, r *roles.Role) error { return nil }

func (s *memRoleStore) Delete(ctx context.Context, id int64) error {
	delete(s.byID, id)
	return nil
}

func (s *memRoleStore) IsNameAvailable(ctx context.Context, name string, excludeID int64) (bool, error) {
	return true, nil
}

func newTestService(t *testing.T) (*Service, *memUserStore, *memRoleStore) {
	t.Helper()

	agent := &users.User{ID: 1, Name: "Agent", Email: "agent@shop.test", RoleID: 10, Status: users.StatusActive}
	if err := agent.Password.Set("correct-horse"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	suspended := &users.User{ID: 2, Name: "Gone", Email: "gone@shop.test", RoleID: 10, Status: users.StatusSuspended}
	if err := suspended.Password.Set("whatever"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	orphan := &users.User{ID: 3, Name: "Orphan", Email: "orphan@shop.test", RoleID: 999, Status: users.StatusActive}
	if err := orphan.Password.Set("secret-pw"); err != nil {
		t.Fatalf("set password: %v", err)
	}

	userStore := newMemUserStore(agent, suspended, orphan)
	roleStore := &memRoleStore{byID: map[int64]*roles.Role{
		10: {ID: 10, Name: "Support Agent", Permissions: []roles.Permission{
			roles.PermOrderRead, roles.PermRMARead, roles.PermRMACreate,
		}},
	}}
	return NewService(userStore, roleStore), userStore, roleStore
}

func TestResolve(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	identity, err := svc.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if identity.Role != "Support Agent" {
		t.Errorf("role = %q, want Support Agent", identity.Role)
	}
	if !identity.HasPermission(roles.PermRMACreate) {
		t.Error("expected rma:create to be held")
	}
	if identity.HasPermission(roles.PermUserManage) {
		t.Error("user:manage must not be held")
	}
}

func TestResolveUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Resolve(context.Background(), 404); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
}

func TestResolveMissingRoleFailsClosed(t *testing.T) {
	svc, _, _ := newTestService(t)

	identity, err := svc.Resolve(context.Background(), 3)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, p := range roles.AllPermissions {
		if identity.HasPermission(p) {
			t.Errorf("identity with missing role must hold no permissions, holds %s", p)
		}
	}
}

func TestResolveRoleEditsTakeEffectImmediately(t *testing.T) {
	svc, _, roleStore := newTestService(t)
	ctx := context.Background()

	before, err := svc.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if before.HasPermission(roles.PermRMAComplete) {
		t.Fatal("precondition: rma:complete not yet held")
	}

	roleStore.byID[10].Permissions = append(roleStore.byID[10].Permissions, roles.PermRMAComplete)

	after, err := svc.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("resolve after role edit: %v", err)
	}
	if !after.HasPermission(roles.PermRMAComplete) {
		t.Error("role edits must be visible on the next resolve")
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "agent@shop.test", "correct-horse", nil},
		{"wrong password", "agent@shop.test", "wrong", ErrInvalidCredentials},
		{"unknown email", "nobody@shop.test", "correct-horse", ErrUserNotFound},
		{"suspended account", "gone@shop.test", "whatever", ErrUserSuspended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("authenticate: %v", err)
				}
				if user.Email != tt.email {
					t.Errorf("email = %q, want %q", user.Email, tt.email)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNilIdentityFailsClosed(t *testing.T) {
	var identity *Identity

	if identity.HasPermission(roles.PermOrderRead) {
		t.Error("nil identity must answer false")
	}
	if identity.HasAnyPermission(roles.AllPermissions...) {
		t.Error("nil identity must hold nothing")
	}
	if got := identity.PermissionList(); got != nil {
		t.Errorf("nil identity permission list = %v, want nil", got)
	}
}
