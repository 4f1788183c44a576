package services

import (
	"errors"

	"github.com/mlanys/roomsignal/pkg/pushgateway"
)

var (
	// ErrConflictingActions indicates a stored rule yielded more than one of
	// notify/dont_notify/coalesce for a single event.
	ErrConflictingActions = errors.New("malformed push rule: conflicting notify actions")
	// ErrBadStateEvent indicates persisted room state content failed to decode.
	ErrBadStateEvent = errors.New("invalid state event content in database")
)

// DispatchErrorKind classifies dispatch failures for transport-specific mapping.
type DispatchErrorKind string

const (
	// DispatchErrorUnknown is used when the error is nil or unclassified.
	DispatchErrorUnknown DispatchErrorKind = "unknown"
	// DispatchErrorDataIntegrity indicates malformed stored rules or state.
	DispatchErrorDataIntegrity DispatchErrorKind = "data_integrity"
	// DispatchErrorDelivery indicates the gateway call failed or its
	// response could not be used.
	DispatchErrorDelivery DispatchErrorKind = "delivery"
)

// ClassifyDispatchError classifies a returned dispatch error.
func ClassifyDispatchError(err error) DispatchErrorKind {
	switch {
	case err == nil:
		return DispatchErrorUnknown
	case errors.Is(err, ErrConflictingActions), errors.Is(err, ErrBadStateEvent):
		return DispatchErrorDataIntegrity
	case errors.Is(err, pushgateway.ErrInvalidDestination),
		errors.Is(err, pushgateway.ErrBadGatewayResponse):
		return DispatchErrorDelivery
	default:
		return DispatchErrorUnknown
	}
}
