package ports

import "context"

// RelationStore persists the event-reference graph and per-event flags.
// Implementations provide read-after-write visibility and expose no partial
// state for the batch mark operation.
type RelationStore interface {
	// AddRelation inserts one directed edge between short event ids.
	// Duplicate insertion is idempotent.
	AddRelation(ctx context.Context, fromSID, toSID int64) error
	// MarkAsReferenced flags every listed event as referenced, atomically:
	// all listed events end up marked or none do.
	MarkAsReferenced(ctx context.Context, roomID string, eventIDs []string) error
	IsEventReferenced(ctx context.Context, roomID, eventID string) (bool, error)
	MarkEventSoftFailed(ctx context.Context, eventID string) error
	IsEventSoftFailed(ctx context.Context, eventID string) (bool, error)
}

// EventIDAllocator hands out stable short integer aliases for event ids.
type EventIDAllocator interface {
	ShortEventID(ctx context.Context, eventID string) (int64, error)
}
