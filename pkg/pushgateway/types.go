package pushgateway

import "encoding/json"

// Priority is the urgency hint handed to the device's native push service.
type Priority string

const (
	// PriorityLow is the default delivery priority.
	PriorityLow Priority = "low"
	// PriorityHigh wakes the device for time-sensitive notifications.
	PriorityHigh Priority = "high"
)

// Counts carries the unread and missed-call badge numbers.
type Counts struct {
	Unread      int64 `json:"unread"`
	MissedCalls int64 `json:"missed_calls"`
}

// DeviceData is pusher configuration forwarded verbatim to the gateway.
type DeviceData struct {
	Format         string          `json:"format,omitempty"`
	DefaultPayload json.RawMessage `json:"default_payload,omitempty"`
}

// Device identifies one push target within a notification.
type Device struct {
	AppID   string         `json:"app_id"`
	Pushkey string         `json:"pushkey"`
	Data    *DeviceData    `json:"data,omitempty"`
	Tweaks  map[string]any `json:"tweaks,omitempty"`
}

// Notification is the wire body posted to a push gateway. Optional event
// metadata is omitted in event-id-only payloads.
type Notification struct {
	EventID           string          `json:"event_id,omitempty"`
	RoomID            string          `json:"room_id,omitempty"`
	EventType         string          `json:"type,omitempty"`
	Sender            string          `json:"sender,omitempty"`
	SenderDisplayName string          `json:"sender_display_name,omitempty"`
	RoomName          string          `json:"room_name,omitempty"`
	UserIsTarget      bool            `json:"user_is_target,omitempty"`
	Priority          Priority        `json:"prio"`
	Content           json.RawMessage `json:"content,omitempty"`
	Counts            Counts          `json:"counts"`
	Devices           []Device        `json:"devices"`
}

type notifyRequest struct {
	Notification Notification `json:"notification"`
}

// Response is the gateway's decoded reply. Rejected lists pushkeys the
// gateway wants unregistered.
type Response struct {
	Rejected []string `json:"rejected"`
}
