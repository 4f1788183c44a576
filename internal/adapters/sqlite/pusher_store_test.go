package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mlanys/roomsignal/internal/app/domain"
	"github.com/mlanys/roomsignal/internal/db"
)

func openTestDB(t *testing.T) *db.Database {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "test"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestPusherStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewPusherStore(openTestDB(t))

	pusher := &domain.Pusher{
		UserID:            "@alice:example.org",
		Pushkey:           "key-1",
		AppID:             "org.example.app",
		AppDisplayName:    "Example App",
		DeviceDisplayName: "Alice's phone",
		ProfileTag:        "mobile",
		Lang:              "en",
		Kind: domain.HTTPPusher{
			URL:            "https://gateway.example.org",
			Format:         domain.PushFormatEventIDOnly,
			DefaultPayload: json.RawMessage(`{"aps":{"mutable-content":1}}`),
		},
	}
	if err := store.SetPusher(ctx, pusher.UserID, domain.PusherAction{Pusher: pusher}); err != nil {
		t.Fatalf("set pusher: %v", err)
	}

	loaded, err := store.GetPusher(ctx, pusher.UserID, pusher.Pushkey)
	if err != nil {
		t.Fatalf("get pusher: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected pusher to exist")
	}
	if loaded.AppID != pusher.AppID || loaded.Lang != pusher.Lang || loaded.ProfileTag != pusher.ProfileTag {
		t.Fatalf("unexpected pusher fields: %+v", loaded)
	}

	kind, ok := loaded.Kind.(domain.HTTPPusher)
	if !ok {
		t.Fatalf("expected http kind, got %T", loaded.Kind)
	}
	if kind.URL != "https://gateway.example.org" || kind.Format != domain.PushFormatEventIDOnly {
		t.Fatalf("unexpected http kind: %+v", kind)
	}
	if string(kind.DefaultPayload) != `{"aps":{"mutable-content":1}}` {
		t.Fatalf("unexpected default payload %s", kind.DefaultPayload)
	}
}

func TestPusherStoreUpsertReplacesExisting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewPusherStore(openTestDB(t))
	userID := "@alice:example.org"

	first := &domain.Pusher{
		UserID:  userID,
		Pushkey: "key-1",
		AppID:   "org.example.app",
		Kind:    domain.HTTPPusher{URL: "https://old.example.org"},
	}
	if err := store.SetPusher(ctx, userID, domain.PusherAction{Pusher: first}); err != nil {
		t.Fatalf("set pusher: %v", err)
	}

	second := &domain.Pusher{
		UserID:  userID,
		Pushkey: "key-1",
		AppID:   "org.example.app",
		Kind:    domain.HTTPPusher{URL: "https://new.example.org"},
	}
	if err := store.SetPusher(ctx, userID, domain.PusherAction{Pusher: second}); err != nil {
		t.Fatalf("re-set pusher: %v", err)
	}

	pushers, err := store.GetPushers(ctx, userID)
	if err != nil {
		t.Fatalf("get pushers: %v", err)
	}
	if len(pushers) != 1 {
		t.Fatalf("expected one pusher after upsert, got %d", len(pushers))
	}
	if kind := pushers[0].Kind.(domain.HTTPPusher); kind.URL != "https://new.example.org" {
		t.Fatalf("expected replacement to win, got %q", kind.URL)
	}
}

func TestPusherStoreDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewPusherStore(openTestDB(t))
	userID := "@alice:example.org"

	pusher := &domain.Pusher{
		UserID:  userID,
		Pushkey: "key-1",
		Kind:    domain.EmailPusher{Address: "alice@example.org"},
	}
	if err := store.SetPusher(ctx, userID, domain.PusherAction{Pusher: pusher}); err != nil {
		t.Fatalf("set pusher: %v", err)
	}
	if err := store.SetPusher(ctx, userID, domain.PusherAction{DeletePushkey: "key-1"}); err != nil {
		t.Fatalf("delete pusher: %v", err)
	}

	loaded, err := store.GetPusher(ctx, userID, "key-1")
	if err != nil {
		t.Fatalf("get pusher: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected pusher gone, got %+v", loaded)
	}
}

func TestPusherStoreMissingPusherIsNil(t *testing.T) {
	t.Parallel()

	store := NewPusherStore(openTestDB(t))
	loaded, err := store.GetPusher(context.Background(), "@nobody:example.org", "missing")
	if err != nil {
		t.Fatalf("get pusher: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil for missing pusher, got %+v", loaded)
	}
}

func TestPusherStoreUnknownKindSurvivesRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewPusherStore(openTestDB(t))
	userID := "@alice:example.org"

	pusher := &domain.Pusher{
		UserID:  userID,
		Pushkey: "key-odd",
		Kind:    domain.UnknownPusher{Name: "carrier-pigeon", Data: json.RawMessage(`{"coop":"north"}`)},
	}
	if err := store.SetPusher(ctx, userID, domain.PusherAction{Pusher: pusher}); err != nil {
		t.Fatalf("set pusher: %v", err)
	}

	loaded, err := store.GetPusher(ctx, userID, "key-odd")
	if err != nil {
		t.Fatalf("get pusher: %v", err)
	}
	kind, ok := loaded.Kind.(domain.UnknownPusher)
	if !ok {
		t.Fatalf("expected unknown kind preserved, got %T", loaded.Kind)
	}
	if kind.Name != "carrier-pigeon" || string(kind.Data) != `{"coop":"north"}` {
		t.Fatalf("unexpected unknown kind: %+v", kind)
	}
}

func TestPusherStorePushkeysIteratorIsRestartable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewPusherStore(openTestDB(t))
	userID := "@alice:example.org"

	for _, key := range []string{"key-a", "key-b", "key-c"} {
		pusher := &domain.Pusher{
			UserID:  userID,
			Pushkey: key,
			Kind:    domain.HTTPPusher{URL: "https://gateway.example.org"},
		}
		if err := store.SetPusher(ctx, userID, domain.PusherAction{Pusher: pusher}); err != nil {
			t.Fatalf("set pusher %s: %v", key, err)
		}
	}

	seq := store.Pushkeys(ctx, userID)
	for pass := 0; pass < 2; pass++ {
		seen := make(map[string]bool)
		for key, err := range seq {
			if err != nil {
				t.Fatalf("pass %d: iterate pushkeys: %v", pass, err)
			}
			seen[key] = true
		}
		if len(seen) != 3 {
			t.Fatalf("pass %d: expected 3 pushkeys, got %v", pass, seen)
		}
	}
}
