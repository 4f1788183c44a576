package ports

import (
	"context"
	"encoding/json"

	"github.com/mlanys/roomsignal/pkg/pushgateway"
)

// RoomStateSource resolves current room state events. A nil content with a
// nil error means the state event does not exist.
type RoomStateSource interface {
	RoomStateGet(ctx context.Context, roomID, eventType, stateKey string) (json.RawMessage, error)
}

// UserDirectory resolves user profile data and access tokens.
type UserDirectory interface {
	// DisplayName returns the user's display name, or ok=false when unset.
	DisplayName(ctx context.Context, userID string) (name string, ok bool, err error)
	// UserFromToken maps a bearer access token to a user id.
	UserFromToken(ctx context.Context, token string) (string, error)
}

// Gateway delivers built notification payloads to a remote push gateway.
type Gateway interface {
	Notify(ctx context.Context, destination string, notification pushgateway.Notification) (*pushgateway.Response, error)
}
