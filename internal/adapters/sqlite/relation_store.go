package sqlite

import (
	"context"
	"fmt"

	"github.com/mlanys/roomsignal/internal/app/ports"
	"github.com/mlanys/roomsignal/internal/db/queries"
)

// RelationStore persists the event-reference graph and per-event flags.
type RelationStore struct {
	db relationDatabase
}

// NewRelationStore constructs a relation store over the shared database.
func NewRelationStore(database relationDatabase) *RelationStore {
	return &RelationStore{db: database}
}

// AddRelation inserts one edge; duplicate edges are ignored.
func (s *RelationStore) AddRelation(ctx context.Context, fromSID, toSID int64) error {
	return s.db.InsertRelation(ctx, queries.InsertRelationParams{FromSid: fromSID, ToSid: toSID})
}

// MarkAsReferenced marks all listed events inside one transaction, so
// readers never observe a partially marked batch.
func (s *RelationStore) MarkAsReferenced(ctx context.Context, roomID string, eventIDs []string) error {
	return s.db.Transact(ctx, func(q *queries.Queries) error {
		for _, eventID := range eventIDs {
			err := q.InsertReferencedEvent(ctx, queries.InsertReferencedEventParams{
				RoomID:  roomID,
				EventID: eventID,
			})
			if err != nil {
				return fmt.Errorf("mark %s referenced: %w", eventID, err)
			}
		}
		return nil
	})
}

// IsEventReferenced reports whether the event is marked referenced.
func (s *RelationStore) IsEventReferenced(ctx context.Context, roomID, eventID string) (bool, error) {
	count, err := s.db.CountEventReferenced(ctx, queries.CountEventReferencedParams{
		RoomID:  roomID,
		EventID: eventID,
	})
	return count > 0, err
}

// MarkEventSoftFailed flags the event; re-marking is a no-op.
func (s *RelationStore) MarkEventSoftFailed(ctx context.Context, eventID string) error {
	return s.db.InsertSoftFailedEvent(ctx, eventID)
}

// IsEventSoftFailed reports whether the event is marked soft failed.
func (s *RelationStore) IsEventSoftFailed(ctx context.Context, eventID string) (bool, error) {
	count, err := s.db.CountEventSoftFailed(ctx, eventID)
	return count > 0, err
}

var _ ports.RelationStore = (*RelationStore)(nil)
