package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mlanys/roomsignal/internal/app/services"
)

// RelationRoutes exposes the internal event-relation API the rest of the
// homeserver calls while persisting events.
type RelationRoutes struct {
	tracker *services.RelationTracker
}

// NewRelationRoutes constructs relation routes.
func NewRelationRoutes(tracker *services.RelationTracker) *RelationRoutes {
	return &RelationRoutes{tracker: tracker}
}

// RegisterRoutes registers the internal relation endpoints.
func (r *RelationRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/_internal/relations", r.handleAddRelation)
	s.POST("/_internal/relations/referenced", r.handleMarkReferenced)
	s.POST("/_internal/relations/soft_failed", r.handleMarkSoftFailed)
	s.GET("/_internal/relations/flags", r.handleFlags)
}

type addRelationBody struct {
	EventID   string `json:"event_id"`
	RelatesTo string `json:"relates_to"`
}

func (r *RelationRoutes) handleAddRelation(c echo.Context) error {
	var body addRelationBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if body.EventID == "" || body.RelatesTo == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id and relates_to are required")
	}

	if err := r.tracker.AddRelation(c.Request().Context(), body.EventID, body.RelatesTo); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to record relation")
	}
	return c.JSON(http.StatusOK, map[string]any{})
}

type markReferencedBody struct {
	RoomID   string   `json:"room_id"`
	EventIDs []string `json:"event_ids"`
}

func (r *RelationRoutes) handleMarkReferenced(c echo.Context) error {
	var body markReferencedBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if body.RoomID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id is required")
	}

	if err := r.tracker.MarkAsReferenced(c.Request().Context(), body.RoomID, body.EventIDs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to mark events referenced")
	}
	return c.JSON(http.StatusOK, map[string]any{})
}

type markSoftFailedBody struct {
	EventID string `json:"event_id"`
}

func (r *RelationRoutes) handleMarkSoftFailed(c echo.Context) error {
	var body markSoftFailedBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if body.EventID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id is required")
	}

	if err := r.tracker.MarkEventSoftFailed(c.Request().Context(), body.EventID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to mark event soft failed")
	}
	return c.JSON(http.StatusOK, map[string]any{})
}

func (r *RelationRoutes) handleFlags(c echo.Context) error {
	roomID := c.QueryParam("room_id")
	eventID := c.QueryParam("event_id")
	if roomID == "" || eventID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room_id and event_id are required")
	}

	ctx := c.Request().Context()
	referenced, err := r.tracker.IsEventReferenced(ctx, roomID, eventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read referenced flag")
	}
	softFailed, err := r.tracker.IsEventSoftFailed(ctx, eventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read soft-failed flag")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"referenced":  referenced,
		"soft_failed": softFailed,
	})
}
