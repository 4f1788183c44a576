package services

import (
	"context"
	"fmt"

	"github.com/mlanys/roomsignal/internal/app/ports"
)

// RelationTracker maintains the event-reference graph and the referenced /
// soft-failed flags that extremity pruning and state resolution read.
type RelationTracker struct {
	store  ports.RelationStore
	shorts ports.EventIDAllocator
}

// NewRelationTracker constructs a tracker from its store and allocator.
func NewRelationTracker(store ports.RelationStore, shorts ports.EventIDAllocator) *RelationTracker {
	return &RelationTracker{store: store, shorts: shorts}
}

// AddRelation records that event from references event to. Inserting the
// same edge twice is a no-op.
func (t *RelationTracker) AddRelation(ctx context.Context, from, to string) error {
	fromSID, err := t.shorts.ShortEventID(ctx, from)
	if err != nil {
		return fmt.Errorf("short id for %s: %w", from, err)
	}
	toSID, err := t.shorts.ShortEventID(ctx, to)
	if err != nil {
		return fmt.Errorf("short id for %s: %w", to, err)
	}
	return t.store.AddRelation(ctx, fromSID, toSID)
}

// MarkAsReferenced marks every listed event referenced, all-or-nothing.
// Forward-extremity computation relies on never observing a partial mark.
func (t *RelationTracker) MarkAsReferenced(ctx context.Context, roomID string, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}
	return t.store.MarkAsReferenced(ctx, roomID, eventIDs)
}

// IsEventReferenced reports whether a newer event already references this one.
func (t *RelationTracker) IsEventReferenced(ctx context.Context, roomID, eventID string) (bool, error) {
	return t.store.IsEventReferenced(ctx, roomID, eventID)
}

// MarkEventSoftFailed flags an event that failed an authorization check.
// The event is retained; the flag only excludes it from authority
// computations. Independent of the referenced flag.
func (t *RelationTracker) MarkEventSoftFailed(ctx context.Context, eventID string) error {
	return t.store.MarkEventSoftFailed(ctx, eventID)
}

// IsEventSoftFailed reports whether the event was marked soft failed.
func (t *RelationTracker) IsEventSoftFailed(ctx context.Context, eventID string) (bool, error) {
	return t.store.IsEventSoftFailed(ctx, eventID)
}
