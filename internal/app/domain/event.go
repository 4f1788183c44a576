package domain

import "encoding/json"

// Room event types this core needs to recognize. Everything else is opaque.
const (
	EventTypeMessage   = "m.room.message"
	EventTypeEncrypted = "m.room.encrypted"
	EventTypeMember    = "m.room.member"

	StateTypePowerLevels = "m.room.power_levels"
	StateTypeRoomName    = "m.room.name"
)

// Event is a read-only view of one persistent data unit (PDU) in a room's
// event graph. The caller owns the event; nothing here mutates it.
type Event struct {
	EventID  string
	RoomID   string
	Sender   string
	Type     string
	StateKey *string
	Content  json.RawMessage
}

// PowerLevels is the decoded content of an m.room.power_levels state event.
// Absent fields keep their zero defaults, matching the room-version defaults.
type PowerLevels struct {
	Users         map[string]int64 `json:"users,omitempty"`
	UsersDefault  int64            `json:"users_default,omitempty"`
	Notifications map[string]int64 `json:"notifications,omitempty"`
}

// RoomNameContent is the decoded content of an m.room.name state event.
type RoomNameContent struct {
	Name string `json:"name"`
}
