package domain

import "encoding/json"

// PushFormat selects how much event detail a gateway payload carries.
type PushFormat string

const (
	// PushFormatFull sends the complete event metadata.
	PushFormatFull PushFormat = ""
	// PushFormatEventIDOnly sends only the event id and room id.
	PushFormatEventIDOnly PushFormat = "event_id_only"
)

// Pusher is a registered notification target for one of a user's devices.
// Identity is (UserID, Pushkey); the dispatch path never mutates a pusher.
type Pusher struct {
	UserID            string
	Pushkey           string
	AppID             string
	AppDisplayName    string
	DeviceDisplayName string
	ProfileTag        string
	Lang              string
	Kind              PusherKind
}

// PusherKind is the closed set of pusher transports. Unknown kinds survive
// storage round trips and are delivered as a documented no-op.
type PusherKind interface {
	KindName() string
}

// HTTPPusher targets a remote push gateway over HTTP.
type HTTPPusher struct {
	URL            string
	Format         PushFormat
	DefaultPayload json.RawMessage
}

// KindName implements PusherKind.
func (HTTPPusher) KindName() string { return "http" }

// EmailPusher targets an email address. Delivery is intentionally
// unimplemented; dispatch treats it as a successful no-op.
type EmailPusher struct {
	Address string
}

// KindName implements PusherKind.
func (EmailPusher) KindName() string { return "email" }

// UnknownPusher preserves a kind this server does not understand.
type UnknownPusher struct {
	Name string
	Data json.RawMessage
}

// KindName implements PusherKind.
func (p UnknownPusher) KindName() string { return p.Name }

// PusherAction is one set-pusher request: upsert when Pusher is non-nil,
// otherwise delete the pusher registered under DeletePushkey.
type PusherAction struct {
	Pusher        *Pusher
	DeletePushkey string
}
