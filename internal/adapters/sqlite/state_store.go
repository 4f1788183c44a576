package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mlanys/roomsignal/internal/app/ports"
	"github.com/mlanys/roomsignal/internal/db/queries"
)

// StateStore resolves room state, user profiles and short event ids.
type StateStore struct {
	db stateDatabase
}

// NewStateStore constructs a state store over the shared database.
func NewStateStore(database stateDatabase) *StateStore {
	return &StateStore{db: database}
}

// RoomStateGet returns the current state event content, or nil when the
// room has no such state event.
func (s *StateStore) RoomStateGet(ctx context.Context, roomID, eventType, stateKey string) (json.RawMessage, error) {
	content, err := s.db.GetRoomStateContent(ctx, queries.GetRoomStateContentParams{
		RoomID:    roomID,
		EventType: eventType,
		StateKey:  stateKey,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(content), nil
}

// DisplayName returns the user's display name when one is set.
func (s *StateStore) DisplayName(ctx context.Context, userID string) (string, bool, error) {
	profile, err := s.db.GetProfile(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !profile.DisplayName.Valid || profile.DisplayName.String == "" {
		return "", false, nil
	}
	return profile.DisplayName.String, true, nil
}

// UserFromToken maps a bearer access token to its user id. Unknown tokens
// surface as sql.ErrNoRows for the caller to map.
func (s *StateStore) UserFromToken(ctx context.Context, token string) (string, error) {
	return s.db.GetUserIDByAccessToken(ctx, sql.NullString{String: token, Valid: true})
}

// ShortEventID returns the stable short id for an event id, allocating one
// on first use.
func (s *StateStore) ShortEventID(ctx context.Context, eventID string) (int64, error) {
	if err := s.db.InsertShortEventID(ctx, eventID); err != nil {
		return 0, fmt.Errorf("allocate short id for %s: %w", eventID, err)
	}
	sid, err := s.db.GetShortEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("load short id for %s: %w", eventID, err)
	}
	return sid, nil
}

var (
	_ ports.RoomStateSource  = (*StateStore)(nil)
	_ ports.UserDirectory    = (*StateStore)(nil)
	_ ports.EventIDAllocator = (*StateStore)(nil)
)
