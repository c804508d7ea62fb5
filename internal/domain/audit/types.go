package audit

import "time"

// Actions emitted by the RMA engine and the admin surface.
const (
	ActionRMACreated       = "RMA_CREATED"
	ActionRMAUpdated       = "RMA_UPDATED"
	ActionRMAStatusChanged = "RMA_STATUS_CHANGED"
	ActionRMACompleted     = "RMA_COMPLETED"
	ActionRMACancelled     = "RMA_CANCELLED"
	ActionRMAReverted      = "RMA_REVERTED"

	ActionInventoryRestockedFromReturn    = "INVENTORY_RESTOCKED_FROM_RETURN"
	ActionInventoryDecrementedForExchange = "INVENTORY_DECREMENTED_FOR_EXCHANGE"
	ActionInventoryAdjusted               = "INVENTORY_ADJUSTED"

	ActionUserCreated   = "USER_CREATED"
	ActionUserUpdated   = "USER_UPDATED"
	ActionUserSuspended = "USER_SUSPENDED"
	ActionUserActivated = "USER_ACTIVATED"

	ActionRoleCreated = "ROLE_CREATED"
	ActionRoleUpdated = "ROLE_UPDATED"
	ActionRoleDeleted = "ROLE_DELETED"
)

// Event is an append-only record of a state-changing operation. The core
// only ever writes events; it never reads them back.
type Event struct {
	ID        string         `json:"id"`
	Ts        time.Time      `json:"ts"`
	ActorID   int64          `json:"actor_id"`
	ActorName string         `json:"actor_name"`
	ActorRole string         `json:"actor_role"`
	Action    string         `json:"action"`
	Entity    *string        `json:"entity,omitempty"`
	EntityID  *int64         `json:"entity_id,omitempty"`
	Changes   map[string]any `json:"changes,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
