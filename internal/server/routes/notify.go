package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/mlanys/roomsignal/internal/app/domain"
	"github.com/mlanys/roomsignal/internal/app/ports"
	"github.com/mlanys/roomsignal/internal/app/services"
)

// NotifyRoutes exposes the internal fan-out endpoint other homeserver
// subsystems call when a new event should reach a user's devices.
type NotifyRoutes struct {
	dispatcher *services.Dispatcher
	tracker    *services.RelationTracker
	pushers    ports.PusherStore
	log        *slog.Logger
}

// NewNotifyRoutes constructs notify routes.
func NewNotifyRoutes(dispatcher *services.Dispatcher, tracker *services.RelationTracker, pushers ports.PusherStore, log *slog.Logger) *NotifyRoutes {
	if log == nil {
		log = slog.Default()
	}
	return &NotifyRoutes{dispatcher: dispatcher, tracker: tracker, pushers: pushers, log: log}
}

// RegisterRoutes registers the internal notify endpoint.
func (n *NotifyRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/_internal/push/notify", n.handleNotify)
}

type notifyEventBody struct {
	EventID  string          `json:"event_id"`
	RoomID   string          `json:"room_id"`
	Sender   string          `json:"sender"`
	Type     string          `json:"type"`
	StateKey *string         `json:"state_key,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
}

type notifyBody struct {
	UserID string          `json:"user_id"`
	Unread int64           `json:"unread"`
	Event  notifyEventBody `json:"event"`
}

func (n *NotifyRoutes) handleNotify(c echo.Context) error {
	var body notifyBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if body.UserID == "" || body.Event.EventID == "" || body.Event.RoomID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id, event.event_id and event.room_id are required")
	}

	ctx := c.Request().Context()

	// Soft-failed events are excluded from timelines and must never reach
	// a device.
	softFailed, err := n.tracker.IsEventSoftFailed(ctx, body.Event.EventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read soft-failed flag")
	}
	if softFailed {
		return c.JSON(http.StatusOK, map[string]any{"dispatched": 0, "failed": 0})
	}

	pushers, err := n.pushers.GetPushers(ctx, body.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load pushers")
	}

	event := &domain.Event{
		EventID:  body.Event.EventID,
		RoomID:   body.Event.RoomID,
		Sender:   body.Event.Sender,
		Type:     body.Event.Type,
		StateKey: body.Event.StateKey,
		Content:  body.Event.Content,
	}
	ruleset := domain.ServerDefaultRuleset()

	// Each pusher is an independent dispatch with its own outcome; a slow
	// or failing gateway must not hold back the others.
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, pusher := range pushers {
		wg.Add(1)
		go func(pusher domain.Pusher) {
			defer wg.Done()
			err := n.dispatcher.SendPushNotice(ctx, body.UserID, body.Unread, pusher, ruleset, event)
			if err != nil {
				n.log.WarnContext(ctx, "push dispatch failed",
					"user_id", body.UserID,
					"pushkey", pusher.Pushkey,
					"event_id", event.EventID,
					"kind", string(services.ClassifyDispatchError(err)),
					"error", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(pusher)
	}
	wg.Wait()

	return c.JSON(http.StatusOK, map[string]any{
		"dispatched": len(pushers) - failed,
		"failed":     failed,
	})
}
