package domain

import "strings"

// ActionKind discriminates push-rule actions.
type ActionKind string

const (
	// ActionNotify causes a notification to be delivered.
	ActionNotify ActionKind = "notify"
	// ActionDontNotify suppresses the notification.
	ActionDontNotify ActionKind = "dont_notify"
	// ActionCoalesce is a deprecated notify-class action kept for stored rules.
	ActionCoalesce ActionKind = "coalesce"
	// ActionSetTweak attaches a presentation hint to the notification.
	ActionSetTweak ActionKind = "set_tweak"
)

// NotifyClass reports whether the action kind decides notify/don't-notify.
// A well-formed rule evaluation yields at most one of these.
func (k ActionKind) NotifyClass() bool {
	switch k {
	case ActionNotify, ActionDontNotify, ActionCoalesce:
		return true
	default:
		return false
	}
}

// Action is one evaluated push-rule action. Tweak is set only for ActionSetTweak.
type Action struct {
	Kind  ActionKind
	Tweak Tweak
}

// Tweak is a notification presentation hint attached by a matched rule.
type Tweak struct {
	Name  string
	Value any
}

// SoundTweak builds a sound tweak.
func SoundTweak(sound string) Tweak {
	return Tweak{Name: "sound", Value: sound}
}

// HighlightTweak builds a highlight tweak.
func HighlightTweak(on bool) Tweak {
	return Tweak{Name: "highlight", Value: on}
}

// IsSound reports whether the tweak requests a sound.
func (t Tweak) IsSound() bool {
	return t.Name == "sound"
}

// IsHighlight reports whether the tweak is highlight=true.
func (t Tweak) IsHighlight() bool {
	on, ok := t.Value.(bool)
	return t.Name == "highlight" && ok && on
}

// ApproximateCount is a member count that is known to be inexact. The push
// condition context carries a best-effort value, not a resolved room count.
type ApproximateCount int64

// PushConditionContext is the per-evaluation room context handed to a ruleset.
// Built fresh for every evaluation call and never persisted.
type PushConditionContext struct {
	RoomID                  string
	MemberCount             ApproximateCount
	UserID                  string
	UserDisplayName         string
	UsersPowerLevels        map[string]int64
	DefaultPowerLevel       int64
	NotificationPowerLevels map[string]int64
}

// Ruleset evaluates a user's push rules against an event. The condition
// grammar lives behind this contract; the core only supplies the context.
type Ruleset interface {
	Actions(event *Event, rctx *PushConditionContext) []Action
}

// RulesetFunc adapts a function to the Ruleset contract.
type RulesetFunc func(event *Event, rctx *PushConditionContext) []Action

// Actions implements Ruleset.
func (f RulesetFunc) Actions(event *Event, rctx *PushConditionContext) []Action {
	return f(event, rctx)
}

// ServerDefaultRuleset is the fallback ruleset used when a user has no rules
// of their own: message and encrypted events notify with the default sound.
func ServerDefaultRuleset() Ruleset {
	return RulesetFunc(func(event *Event, _ *PushConditionContext) []Action {
		switch event.Type {
		case EventTypeMessage, EventTypeEncrypted:
			return []Action{
				{Kind: ActionNotify},
				{Kind: ActionSetTweak, Tweak: SoundTweak("default")},
			}
		default:
			return nil
		}
	})
}

// Localpart extracts the local part of a user id of the form @local:server.
// Used as the display-name fallback when the directory has no entry.
func Localpart(userID string) string {
	trimmed := strings.TrimPrefix(userID, "@")
	if idx := strings.IndexByte(trimmed, ':'); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
