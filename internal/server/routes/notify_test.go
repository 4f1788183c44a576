package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mlanys/roomsignal/internal/adapters/sqlite"
	"github.com/mlanys/roomsignal/internal/app/domain"
	"github.com/mlanys/roomsignal/internal/app/services"
	"github.com/mlanys/roomsignal/pkg/pushgateway"
)

func TestNotifyDispatchesToRegisteredPushers(t *testing.T) {
	t.Parallel()

	var gatewayHits atomic.Int64
	var gotNotification struct {
		Notification pushgateway.Notification `json:"notification"`
	}
	gatewaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatewayHits.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&gotNotification)
		_, _ = w.Write([]byte(`{"rejected":[]}`))
	}))
	defer gatewaySrv.Close()

	env := newTestEnv(t)
	env.seedUser(t, "@alice:example.org", "Alice", "tok-alice")
	env.seedUser(t, "@bob:example.org", "Bob", "tok-bob")

	pusher := &domain.Pusher{
		UserID:  "@alice:example.org",
		Pushkey: "key-1",
		AppID:   "org.example.app",
		Kind:    domain.HTTPPusher{URL: gatewaySrv.URL},
	}
	err := env.pushers.SetPusher(context.Background(), pusher.UserID, domain.PusherAction{Pusher: pusher})
	if err != nil {
		t.Fatalf("seed pusher: %v", err)
	}

	gateway := pushgateway.New(gatewaySrv.Client(), nil)
	dispatcher := services.NewDispatcher(env.states, env.states, gateway, nil)
	tracker := services.NewRelationTracker(sqlite.NewRelationStore(env.database), env.states)
	NewNotifyRoutes(dispatcher, tracker, env.pushers, nil).RegisterRoutes(env.e)

	rec, req := env.request(http.MethodPost, "/_internal/push/notify", "", `{
		"user_id": "@alice:example.org",
		"unread": 2,
		"event": {
			"event_id": "$ev1:example.org",
			"room_id": "!room:example.org",
			"sender": "@bob:example.org",
			"type": "m.room.message",
			"content": {"body": "hello"}
		}
	}`)
	env.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("notify: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var result struct {
		Dispatched int `json:"dispatched"`
		Failed     int `json:"failed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode notify response: %v", err)
	}
	if result.Dispatched != 1 || result.Failed != 0 {
		t.Fatalf("expected 1 dispatched and 0 failed, got %+v", result)
	}
	if gatewayHits.Load() != 1 {
		t.Fatalf("expected one gateway hit, got %d", gatewayHits.Load())
	}

	n := gotNotification.Notification
	if n.EventID != "$ev1:example.org" || n.Counts.Unread != 2 {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.SenderDisplayName != "Bob" {
		t.Fatalf("expected sender display name resolved, got %q", n.SenderDisplayName)
	}
}

func TestNotifySkipsSoftFailedEvents(t *testing.T) {
	t.Parallel()

	var gatewayHits atomic.Int64
	gatewaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatewayHits.Add(1)
		_, _ = w.Write([]byte(`{"rejected":[]}`))
	}))
	defer gatewaySrv.Close()

	env := newTestEnv(t)
	pusher := &domain.Pusher{
		UserID:  "@alice:example.org",
		Pushkey: "key-1",
		Kind:    domain.HTTPPusher{URL: gatewaySrv.URL},
	}
	err := env.pushers.SetPusher(context.Background(), pusher.UserID, domain.PusherAction{Pusher: pusher})
	if err != nil {
		t.Fatalf("seed pusher: %v", err)
	}

	gateway := pushgateway.New(gatewaySrv.Client(), nil)
	dispatcher := services.NewDispatcher(env.states, env.states, gateway, nil)
	tracker := services.NewRelationTracker(sqlite.NewRelationStore(env.database), env.states)
	if err := tracker.MarkEventSoftFailed(context.Background(), "$bad:example.org"); err != nil {
		t.Fatalf("mark soft failed: %v", err)
	}
	NewNotifyRoutes(dispatcher, tracker, env.pushers, nil).RegisterRoutes(env.e)

	rec, req := env.request(http.MethodPost, "/_internal/push/notify", "", `{
		"user_id": "@alice:example.org",
		"event": {
			"event_id": "$bad:example.org",
			"room_id": "!room:example.org",
			"sender": "@bob:example.org",
			"type": "m.room.message"
		}
	}`)
	env.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("notify: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var result struct {
		Dispatched int `json:"dispatched"`
		Failed     int `json:"failed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode notify response: %v", err)
	}
	if result.Dispatched != 0 || result.Failed != 0 {
		t.Fatalf("expected nothing dispatched for soft-failed event, got %+v", result)
	}
	if gatewayHits.Load() != 0 {
		t.Fatalf("expected no gateway hit, got %d", gatewayHits.Load())
	}
}

func TestNotifyCountsPerPusherFailures(t *testing.T) {
	t.Parallel()

	gatewaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rejected":[]}`))
	}))
	defer gatewaySrv.Close()

	env := newTestEnv(t)
	good := &domain.Pusher{
		UserID:  "@alice:example.org",
		Pushkey: "key-good",
		Kind:    domain.HTTPPusher{URL: gatewaySrv.URL},
	}
	bad := &domain.Pusher{
		UserID:  "@alice:example.org",
		Pushkey: "key-bad",
		Kind:    domain.HTTPPusher{URL: "not a destination"},
	}
	for _, p := range []*domain.Pusher{good, bad} {
		if err := env.pushers.SetPusher(context.Background(), p.UserID, domain.PusherAction{Pusher: p}); err != nil {
			t.Fatalf("seed pusher %s: %v", p.Pushkey, err)
		}
	}

	gateway := pushgateway.New(gatewaySrv.Client(), nil)
	dispatcher := services.NewDispatcher(env.states, env.states, gateway, nil)
	tracker := services.NewRelationTracker(sqlite.NewRelationStore(env.database), env.states)
	NewNotifyRoutes(dispatcher, tracker, env.pushers, nil).RegisterRoutes(env.e)

	rec, req := env.request(http.MethodPost, "/_internal/push/notify", "", `{
		"user_id": "@alice:example.org",
		"event": {
			"event_id": "$ev1:example.org",
			"room_id": "!room:example.org",
			"sender": "@bob:example.org",
			"type": "m.room.message"
		}
	}`)
	env.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("notify: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var result struct {
		Dispatched int `json:"dispatched"`
		Failed     int `json:"failed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode notify response: %v", err)
	}
	if result.Dispatched != 1 || result.Failed != 1 {
		t.Fatalf("expected one success and one failure, got %+v", result)
	}
}

func TestNotifyRejectsIncompleteBody(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	gateway := pushgateway.New(nil, nil)
	dispatcher := services.NewDispatcher(env.states, env.states, gateway, nil)
	tracker := services.NewRelationTracker(sqlite.NewRelationStore(env.database), env.states)
	NewNotifyRoutes(dispatcher, tracker, env.pushers, nil).RegisterRoutes(env.e)

	rec, req := env.request(http.MethodPost, "/_internal/push/notify", "", `{"user_id":"@alice:example.org"}`)
	env.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing event identity, got %d", rec.Code)
	}
}
