package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/mlanys/roomsignal/internal/db/queries"
)

func TestStateStoreRoomStateGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := openTestDB(t)
	store := NewStateStore(database)
	roomID := "!room:example.org"

	content, err := store.RoomStateGet(ctx, roomID, "m.room.name", "")
	if err != nil {
		t.Fatalf("room state get: %v", err)
	}
	if content != nil {
		t.Fatalf("expected nil for absent state, got %s", content)
	}

	err = database.UpsertRoomState(ctx, queries.UpsertRoomStateParams{
		RoomID:    roomID,
		EventType: "m.room.name",
		StateKey:  "",
		Content:   `{"name":"Test Room"}`,
	})
	if err != nil {
		t.Fatalf("seed room state: %v", err)
	}

	content, err = store.RoomStateGet(ctx, roomID, "m.room.name", "")
	if err != nil {
		t.Fatalf("room state get: %v", err)
	}
	if string(content) != `{"name":"Test Room"}` {
		t.Fatalf("unexpected state content %s", content)
	}
}

func TestStateStoreDisplayName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := openTestDB(t)
	store := NewStateStore(database)

	_, ok, err := store.DisplayName(ctx, "@nobody:example.org")
	if err != nil {
		t.Fatalf("display name: %v", err)
	}
	if ok {
		t.Fatal("expected no display name for unknown user")
	}

	err = database.UpsertProfile(ctx, queries.UpsertProfileParams{
		UserID:      "@empty:example.org",
		DisplayName: sql.NullString{},
	})
	if err != nil {
		t.Fatalf("seed empty profile: %v", err)
	}
	_, ok, err = store.DisplayName(ctx, "@empty:example.org")
	if err != nil {
		t.Fatalf("display name: %v", err)
	}
	if ok {
		t.Fatal("expected null display name to report absent")
	}

	err = database.UpsertProfile(ctx, queries.UpsertProfileParams{
		UserID:      "@alice:example.org",
		DisplayName: sql.NullString{String: "Alice", Valid: true},
		AccessToken: sql.NullString{String: "tok-alice", Valid: true},
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	name, ok, err := store.DisplayName(ctx, "@alice:example.org")
	if err != nil {
		t.Fatalf("display name: %v", err)
	}
	if !ok || name != "Alice" {
		t.Fatalf("expected Alice, got %q ok=%v", name, ok)
	}
}

func TestStateStoreUserFromToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := openTestDB(t)
	store := NewStateStore(database)

	err := database.UpsertProfile(ctx, queries.UpsertProfileParams{
		UserID:      "@alice:example.org",
		DisplayName: sql.NullString{String: "Alice", Valid: true},
		AccessToken: sql.NullString{String: "tok-alice", Valid: true},
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	userID, err := store.UserFromToken(ctx, "tok-alice")
	if err != nil {
		t.Fatalf("user from token: %v", err)
	}
	if userID != "@alice:example.org" {
		t.Fatalf("unexpected user id %q", userID)
	}

	_, err = store.UserFromToken(ctx, "tok-unknown")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for unknown token, got %v", err)
	}
}

func TestStateStoreShortEventIDIsStable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStateStore(openTestDB(t))

	first, err := store.ShortEventID(ctx, "$a:example.org")
	if err != nil {
		t.Fatalf("short event id: %v", err)
	}
	again, err := store.ShortEventID(ctx, "$a:example.org")
	if err != nil {
		t.Fatalf("short event id again: %v", err)
	}
	if first != again {
		t.Fatalf("expected stable short id, got %d then %d", first, again)
	}

	other, err := store.ShortEventID(ctx, "$b:example.org")
	if err != nil {
		t.Fatalf("short event id for other event: %v", err)
	}
	if other == first {
		t.Fatalf("expected distinct short ids, both were %d", other)
	}
}
