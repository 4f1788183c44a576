package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mlanys/roomsignal/internal/app/domain"
	"github.com/mlanys/roomsignal/internal/app/ports"
)

var errMissingGatewayURL = errors.New("http pusher requires data.url")

// PusherRoutes exposes the client pusher-management API.
type PusherRoutes struct {
	pushers ports.PusherStore
	users   ports.UserDirectory
}

// NewPusherRoutes constructs pusher routes.
func NewPusherRoutes(pushers ports.PusherStore, users ports.UserDirectory) *PusherRoutes {
	return &PusherRoutes{pushers: pushers, users: users}
}

// RegisterRoutes registers pusher endpoints.
func (p *PusherRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/_matrix/client/v3/pushers/set", p.handleSetPusher)
	s.GET("/_matrix/client/v3/pushers", p.handleListPushers)
}

type pusherDataBody struct {
	URL            string          `json:"url,omitempty"`
	Format         string          `json:"format,omitempty"`
	DefaultPayload json.RawMessage `json:"default_payload,omitempty"`
	Address        string          `json:"address,omitempty"`
}

type setPusherBody struct {
	Pushkey           string          `json:"pushkey"`
	Kind              *string         `json:"kind"`
	AppID             string          `json:"app_id"`
	AppDisplayName    string          `json:"app_display_name"`
	DeviceDisplayName string          `json:"device_display_name"`
	ProfileTag        string          `json:"profile_tag"`
	Lang              string          `json:"lang"`
	Data              *pusherDataBody `json:"data"`
}

func (p *PusherRoutes) handleSetPusher(c echo.Context) error {
	userID, err := authedUser(c, p.users)
	if err != nil {
		return err
	}

	var body setPusherBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if body.Pushkey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "pushkey is required")
	}

	action, err := toPusherAction(userID, body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := p.pushers.SetPusher(c.Request().Context(), userID, action); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store pusher")
	}

	return c.JSON(http.StatusOK, map[string]any{})
}

func (p *PusherRoutes) handleListPushers(c echo.Context) error {
	userID, err := authedUser(c, p.users)
	if err != nil {
		return err
	}

	pushers, err := p.pushers.GetPushers(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load pushers")
	}

	out := make([]setPusherBody, 0, len(pushers))
	for _, pusher := range pushers {
		out = append(out, toPusherBody(pusher))
	}

	return c.JSON(http.StatusOK, map[string]any{"pushers": out})
}

// toPusherAction maps the wire body onto a set-pusher action. A null or
// "null" kind deletes the registration.
func toPusherAction(userID string, body setPusherBody) (domain.PusherAction, error) {
	if body.Kind == nil || *body.Kind == "" || *body.Kind == "null" {
		return domain.PusherAction{DeletePushkey: body.Pushkey}, nil
	}

	pusher := &domain.Pusher{
		UserID:            userID,
		Pushkey:           body.Pushkey,
		AppID:             body.AppID,
		AppDisplayName:    body.AppDisplayName,
		DeviceDisplayName: body.DeviceDisplayName,
		ProfileTag:        body.ProfileTag,
		Lang:              body.Lang,
	}

	switch *body.Kind {
	case "http":
		if body.Data == nil || body.Data.URL == "" {
			return domain.PusherAction{}, errMissingGatewayURL
		}
		pusher.Kind = domain.HTTPPusher{
			URL:            body.Data.URL,
			Format:         domain.PushFormat(body.Data.Format),
			DefaultPayload: body.Data.DefaultPayload,
		}
	case "email":
		var address string
		if body.Data != nil {
			address = body.Data.Address
		}
		pusher.Kind = domain.EmailPusher{Address: address}
	default:
		var raw json.RawMessage
		if body.Data != nil {
			raw, _ = json.Marshal(body.Data)
		}
		pusher.Kind = domain.UnknownPusher{Name: *body.Kind, Data: raw}
	}

	return domain.PusherAction{Pusher: pusher}, nil
}

func toPusherBody(pusher domain.Pusher) setPusherBody {
	kind := pusher.Kind.KindName()
	body := setPusherBody{
		Pushkey:           pusher.Pushkey,
		Kind:              &kind,
		AppID:             pusher.AppID,
		AppDisplayName:    pusher.AppDisplayName,
		DeviceDisplayName: pusher.DeviceDisplayName,
		ProfileTag:        pusher.ProfileTag,
		Lang:              pusher.Lang,
	}

	switch k := pusher.Kind.(type) {
	case domain.HTTPPusher:
		body.Data = &pusherDataBody{
			URL:            k.URL,
			Format:         string(k.Format),
			DefaultPayload: k.DefaultPayload,
		}
	case domain.EmailPusher:
		body.Data = &pusherDataBody{Address: k.Address}
	}

	return body
}
