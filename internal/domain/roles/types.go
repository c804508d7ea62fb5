package roles

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("role not found")
	ErrDuplicateName = errors.New("a role with that name already exists")
	ErrSystemRole    = errors.New("system roles cannot be modified or deleted")
	ErrRoleInUse     = errors.New("role is still assigned to users")
)

// Permission is an opaque tag from a closed vocabulary. Permissions are
// atomic and never composed at runtime.
type Permission string

const (
	PermOrderRead       Permission = "order:read"
	PermOrderManage     Permission = "order:manage"
	PermRMARead         Permission = "rma:read"
	PermRMACreate       Permission = "rma:create"
	PermRMAUpdate       Permission = "rma:update"
	PermRMAComplete     Permission = "rma:complete"
	PermRMACancel       Permission = "rma:cancel"
	PermUserManage      Permission = "user:manage"
	PermRoleManage      Permission = "role:manage"
	PermInventoryRead   Permission = "inventory:read"
	PermInventoryAdjust Permission = "inventory:adjust"
	PermAuditRead       Permission = "audit:read"
)

// AllPermissions lists the full vocabulary, used to validate role payloads.
var AllPermissions = []Permission{
	PermOrderRead,
	PermOrderManage,
	PermRMARead,
	PermRMACreate,
	PermRMAUpdate,
	PermRMAComplete,
	PermRMACancel,
	PermUserManage,
	PermRoleManage,
	PermInventoryRead,
	PermInventoryAdjust,
	PermAuditRead,
}

// IsKnown reports whether p belongs to the closed vocabulary.
func IsKnown(p Permission) bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
	IsSystem    bool         `json:"is_system"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
