package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tranyenminhbd/docuflow/internal/core/events"
)

// EventHandler writes activity entries for events published by the other
// services, so none of them depends on this package directly.
type EventHandler struct {
	service ServiceAPI
	logger  *slog.Logger
}

func NewEventHandler(service ServiceAPI, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) HandleActivityRecorded(ctx context.Context, event events.Event) error {
	activityEvent, ok := event.(*events.ActivityRecordedEvent)
	if !ok {
		h.logger.Error("invalid event type for activity handler", "event_type", event.EventType())
		return fmt.Errorf("expected ActivityRecordedEvent, got %T", event)
	}

	if err := h.service.Record(activityEvent.UserName, activityEvent.Action); err != nil {
		h.logger.Error("failed to record activity",
			"user_name", activityEvent.UserName,
			"action", activityEvent.Action,
			"event_id", activityEvent.EventID())
		return fmt.Errorf("record activity: %w", err)
	}

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeActivityRecorded, h.HandleActivityRecorded)

	h.logger.Info("activity event handlers registered",
		"handlers", []string{events.EventTypeActivityRecorded})
}
