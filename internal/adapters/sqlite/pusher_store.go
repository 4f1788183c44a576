package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"iter"

	"github.com/mlanys/roomsignal/internal/app/domain"
	"github.com/mlanys/roomsignal/internal/app/ports"
	"github.com/mlanys/roomsignal/internal/db/queries"
)

// PusherStore persists pusher registrations in sqlite.
type PusherStore struct {
	db pusherDatabase
}

// NewPusherStore constructs a pusher store over the shared database.
func NewPusherStore(database pusherDatabase) *PusherStore {
	return &PusherStore{db: database}
}

// SetPusher upserts or deletes one pusher registration.
func (s *PusherStore) SetPusher(ctx context.Context, userID string, action domain.PusherAction) error {
	if action.Pusher == nil {
		return s.db.DeletePusher(ctx, queries.DeletePusherParams{
			UserID:  userID,
			Pushkey: action.DeletePushkey,
		})
	}

	pusher := action.Pusher
	kind, data, err := encodePusherKind(pusher.Kind)
	if err != nil {
		return fmt.Errorf("encode pusher kind: %w", err)
	}

	return s.db.UpsertPusher(ctx, queries.UpsertPusherParams{
		UserID:            userID,
		Pushkey:           pusher.Pushkey,
		Kind:              kind,
		AppID:             pusher.AppID,
		AppDisplayName:    pusher.AppDisplayName,
		DeviceDisplayName: pusher.DeviceDisplayName,
		ProfileTag:        pusher.ProfileTag,
		Lang:              pusher.Lang,
		Data:              data,
	})
}

// GetPusher returns the pusher registered under (userID, pushkey), or nil
// when none exists.
func (s *PusherStore) GetPusher(ctx context.Context, userID, pushkey string) (*domain.Pusher, error) {
	row, err := s.db.GetPusher(ctx, queries.GetPusherParams{UserID: userID, Pushkey: pushkey})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pusher, err := toPusher(row)
	if err != nil {
		return nil, err
	}
	return &pusher, nil
}

// GetPushers returns all of the user's pushers.
func (s *PusherStore) GetPushers(ctx context.Context, userID string) ([]domain.Pusher, error) {
	rows, err := s.db.ListPushers(ctx, userID)
	if err != nil {
		return nil, err
	}

	pushers := make([]domain.Pusher, 0, len(rows))
	for _, row := range rows {
		pusher, err := toPusher(row)
		if err != nil {
			return nil, err
		}
		pushers = append(pushers, pusher)
	}
	return pushers, nil
}

// Pushkeys yields the user's pushkeys. Each call runs one fresh pass.
func (s *PusherStore) Pushkeys(ctx context.Context, userID string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		keys, err := s.db.ListPushkeys(ctx, userID)
		if err != nil {
			yield("", err)
			return
		}
		for _, key := range keys {
			if !yield(key, nil) {
				return
			}
		}
	}
}

// pusherData is the per-kind configuration stored in the data column.
type pusherData struct {
	URL            string          `json:"url,omitempty"`
	Format         string          `json:"format,omitempty"`
	DefaultPayload json.RawMessage `json:"default_payload,omitempty"`
	Address        string          `json:"address,omitempty"`
}

func encodePusherKind(kind domain.PusherKind) (string, string, error) {
	switch k := kind.(type) {
	case domain.HTTPPusher:
		data, err := json.Marshal(pusherData{
			URL:            k.URL,
			Format:         string(k.Format),
			DefaultPayload: k.DefaultPayload,
		})
		if err != nil {
			return "", "", err
		}
		return "http", string(data), nil
	case domain.EmailPusher:
		data, err := json.Marshal(pusherData{Address: k.Address})
		if err != nil {
			return "", "", err
		}
		return "email", string(data), nil
	case domain.UnknownPusher:
		data := k.Data
		if len(data) == 0 {
			data = json.RawMessage("{}")
		}
		return k.Name, string(data), nil
	default:
		return "", "", fmt.Errorf("unsupported pusher kind %T", kind)
	}
}

func decodePusherKind(kind, data string) (domain.PusherKind, error) {
	switch kind {
	case "http":
		var parsed pusherData
		if err := json.Unmarshal([]byte(data), &parsed); err != nil {
			return nil, fmt.Errorf("decode http pusher data: %w", err)
		}
		return domain.HTTPPusher{
			URL:            parsed.URL,
			Format:         domain.PushFormat(parsed.Format),
			DefaultPayload: parsed.DefaultPayload,
		}, nil
	case "email":
		var parsed pusherData
		if err := json.Unmarshal([]byte(data), &parsed); err != nil {
			return nil, fmt.Errorf("decode email pusher data: %w", err)
		}
		return domain.EmailPusher{Address: parsed.Address}, nil
	default:
		return domain.UnknownPusher{Name: kind, Data: json.RawMessage(data)}, nil
	}
}

func toPusher(row queries.Pusher) (domain.Pusher, error) {
	kind, err := decodePusherKind(row.Kind, row.Data)
	if err != nil {
		return domain.Pusher{}, err
	}
	return domain.Pusher{
		UserID:            row.UserID,
		Pushkey:           row.Pushkey,
		AppID:             row.AppID,
		AppDisplayName:    row.AppDisplayName,
		DeviceDisplayName: row.DeviceDisplayName,
		ProfileTag:        row.ProfileTag,
		Lang:              row.Lang,
		Kind:              kind,
	}, nil
}

var _ ports.PusherStore = (*PusherStore)(nil)
