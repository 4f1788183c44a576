package ports

import (
	"context"
	"iter"

	"github.com/mlanys/roomsignal/internal/app/domain"
)

// PusherStore is the durable (user, pushkey) -> pusher mapping. Concurrent
// writes to the same key are serialized by the implementation.
type PusherStore interface {
	SetPusher(ctx context.Context, userID string, action domain.PusherAction) error
	GetPusher(ctx context.Context, userID, pushkey string) (*domain.Pusher, error)
	GetPushers(ctx context.Context, userID string) ([]domain.Pusher, error)
	// Pushkeys yields the user's pushkeys in one lazy pass. Each call starts
	// a fresh pass; the sequence ends early on the first yielded error.
	Pushkeys(ctx context.Context, userID string) iter.Seq2[string, error]
}
