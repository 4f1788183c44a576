package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mlanys/roomsignal/internal/app/domain"
	"github.com/mlanys/roomsignal/internal/app/ports"
	"github.com/mlanys/roomsignal/pkg/pushgateway"
)

// placeholderMemberCount stands in until member counts are resolved from
// room state. The context type marks it as approximate.
const placeholderMemberCount domain.ApproximateCount = 10

// Dispatcher evaluates push rules for incoming events and delivers
// notifications through the gateway transport. One dispatch runs
// evaluate -> decide -> build -> send strictly in sequence; dispatches to
// different pushers are independent of each other.
type Dispatcher struct {
	states  ports.RoomStateSource
	users   ports.UserDirectory
	gateway ports.Gateway
	log     *slog.Logger
}

// NewDispatcher constructs a dispatcher from its collaborators.
func NewDispatcher(states ports.RoomStateSource, users ports.UserDirectory, gateway ports.Gateway, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{states: states, users: users, gateway: gateway, log: log}
}

// SendPushNotice evaluates the ruleset against the event and, when the
// resolved decision is notify, builds and sends a gateway notification.
// An event that triggers no notify-class action returns nil without any
// network call. More than one notify-class action is a data-integrity error.
func (d *Dispatcher) SendPushNotice(ctx context.Context, userID string, unread int64, pusher domain.Pusher, ruleset domain.Ruleset, event *domain.Event) error {
	powerLevels, err := d.roomPowerLevels(ctx, event.RoomID)
	if err != nil {
		return err
	}

	actions, err := d.Actions(ctx, userID, ruleset, powerLevels, event, event.RoomID)
	if err != nil {
		return err
	}

	var notify *bool
	var tweaks []domain.Tweak
	for _, action := range actions {
		if action.Kind == domain.ActionSetTweak {
			tweaks = append(tweaks, action.Tweak)
			continue
		}
		if !action.Kind.NotifyClass() {
			continue
		}
		if notify != nil {
			return ErrConflictingActions
		}
		n := action.Kind == domain.ActionNotify
		notify = &n
	}

	if notify == nil || !*notify {
		// The event triggered no notification.
		return nil
	}

	return d.sendNotice(ctx, unread, pusher, tweaks, event)
}

// Actions builds the push condition context and delegates to the ruleset.
// The member count is a documented placeholder, not an exact count.
func (d *Dispatcher) Actions(ctx context.Context, userID string, ruleset domain.Ruleset, powerLevels *domain.PowerLevels, event *domain.Event, roomID string) ([]domain.Action, error) {
	displayName, ok, err := d.users.DisplayName(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve display name for %s: %w", userID, err)
	}
	if !ok {
		displayName = domain.Localpart(userID)
	}

	rctx := &domain.PushConditionContext{
		RoomID:                  roomID,
		MemberCount:             placeholderMemberCount,
		UserID:                  userID,
		UserDisplayName:         displayName,
		UsersPowerLevels:        powerLevels.Users,
		DefaultPowerLevel:       powerLevels.UsersDefault,
		NotificationPowerLevels: powerLevels.Notifications,
	}

	return ruleset.Actions(event, rctx), nil
}

// sendNotice builds a kind-specific payload and hands it to the transport
// exactly once. Email and unknown kinds are documented no-ops: callers must
// not assume delivery happened.
func (d *Dispatcher) sendNotice(ctx context.Context, unread int64, pusher domain.Pusher, tweaks []domain.Tweak, event *domain.Event) error {
	switch kind := pusher.Kind.(type) {
	case domain.HTTPPusher:
		return d.sendHTTPNotice(ctx, unread, pusher, kind, tweaks, event)
	case domain.EmailPusher:
		return nil
	default:
		return nil
	}
}

func (d *Dispatcher) sendHTTPNotice(ctx context.Context, unread int64, pusher domain.Pusher, kind domain.HTTPPusher, tweaks []domain.Tweak, event *domain.Event) error {
	eventIDOnly := kind.Format == domain.PushFormatEventIDOnly

	device := pushgateway.Device{
		AppID:   pusher.AppID,
		Pushkey: pusher.Pushkey,
	}
	if kind.Format != "" || len(kind.DefaultPayload) > 0 {
		device.Data = &pushgateway.DeviceData{
			Format:         string(kind.Format),
			DefaultPayload: kind.DefaultPayload,
		}
	}
	// Event-id-only payloads are minimal by contract; tweak metadata must
	// not leak into them.
	if !eventIDOnly {
		device.Tweaks = tweakMap(tweaks)
	}

	notification := pushgateway.Notification{
		EventID:  event.EventID,
		RoomID:   event.RoomID,
		Priority: pushgateway.PriorityLow,
		Counts:   pushgateway.Counts{Unread: unread, MissedCalls: 0},
		Devices:  []pushgateway.Device{device},
	}

	if event.Type == domain.EventTypeEncrypted || anyUrgentTweak(tweaks) {
		notification.Priority = pushgateway.PriorityHigh
	}

	if !eventIDOnly {
		notification.Sender = event.Sender
		notification.EventType = event.Type

		if content, err := json.Marshal(event.Content); err == nil {
			notification.Content = content
		}
		// Serialization failure above is tolerated: the notification still
		// identifies the event.

		if event.Type == domain.EventTypeMember && event.StateKey != nil {
			notification.UserIsTarget = *event.StateKey == event.Sender
		}

		senderName, ok, err := d.users.DisplayName(ctx, event.Sender)
		if err != nil {
			return fmt.Errorf("resolve display name for %s: %w", event.Sender, err)
		}
		if ok {
			notification.SenderDisplayName = senderName
		}

		roomName, err := d.roomName(ctx, event.RoomID)
		if err != nil {
			return err
		}
		notification.RoomName = roomName
	}

	_, err := d.gateway.Notify(ctx, kind.URL, notification)
	return err
}

// roomPowerLevels reads m.room.power_levels content, defaulting when absent.
// Malformed content is a data-integrity error.
func (d *Dispatcher) roomPowerLevels(ctx context.Context, roomID string) (*domain.PowerLevels, error) {
	content, err := d.states.RoomStateGet(ctx, roomID, domain.StateTypePowerLevels, "")
	if err != nil {
		return nil, err
	}

	powerLevels := &domain.PowerLevels{}
	if content != nil {
		if err := json.Unmarshal(content, powerLevels); err != nil {
			return nil, fmt.Errorf("%w: %s in %s", ErrBadStateEvent, domain.StateTypePowerLevels, roomID)
		}
	}
	return powerLevels, nil
}

// roomName reads the room's current m.room.name. Unlike event content
// serialization, a malformed name event is fatal: it means the stored state
// is corrupt.
func (d *Dispatcher) roomName(ctx context.Context, roomID string) (string, error) {
	content, err := d.states.RoomStateGet(ctx, roomID, domain.StateTypeRoomName, "")
	if err != nil {
		return "", err
	}
	if content == nil {
		return "", nil
	}

	var name domain.RoomNameContent
	if err := json.Unmarshal(content, &name); err != nil {
		return "", fmt.Errorf("%w: %s in %s", ErrBadStateEvent, domain.StateTypeRoomName, roomID)
	}
	return name.Name, nil
}

func tweakMap(tweaks []domain.Tweak) map[string]any {
	if len(tweaks) == 0 {
		return nil
	}
	out := make(map[string]any, len(tweaks))
	for _, tweak := range tweaks {
		out[tweak.Name] = tweak.Value
	}
	return out
}

func anyUrgentTweak(tweaks []domain.Tweak) bool {
	for _, tweak := range tweaks {
		if tweak.IsHighlight() || tweak.IsSound() {
			return true
		}
	}
	return false
}
