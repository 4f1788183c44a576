package sqlite

import (
	"context"
	"database/sql"

	"github.com/mlanys/roomsignal/internal/db/queries"
)

type pusherDatabase interface {
	UpsertPusher(ctx context.Context, arg queries.UpsertPusherParams) error
	DeletePusher(ctx context.Context, arg queries.DeletePusherParams) error
	GetPusher(ctx context.Context, arg queries.GetPusherParams) (queries.Pusher, error)
	ListPushers(ctx context.Context, userID string) ([]queries.Pusher, error)
	ListPushkeys(ctx context.Context, userID string) ([]string, error)
}

type relationDatabase interface {
	InsertRelation(ctx context.Context, arg queries.InsertRelationParams) error
	CountEventReferenced(ctx context.Context, arg queries.CountEventReferencedParams) (int64, error)
	InsertSoftFailedEvent(ctx context.Context, eventID string) error
	CountEventSoftFailed(ctx context.Context, eventID string) (int64, error)
	Transact(ctx context.Context, fn func(q *queries.Queries) error) error
}

type stateDatabase interface {
	GetRoomStateContent(ctx context.Context, arg queries.GetRoomStateContentParams) (string, error)
	GetProfile(ctx context.Context, userID string) (queries.Profile, error)
	GetUserIDByAccessToken(ctx context.Context, accessToken sql.NullString) (string, error)
	InsertShortEventID(ctx context.Context, eventID string) error
	GetShortEventID(ctx context.Context, eventID string) (int64, error)
}
