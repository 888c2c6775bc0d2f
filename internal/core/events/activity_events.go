package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeActivityRecorded = "activity.recorded"
)

// ActivityRecordedEvent is published after every user-attributed action so
// the activity log can append an entry without the domain services knowing
// about its storage.
type ActivityRecordedEvent struct {
	BaseEvent
	UserName string `json:"user_name"`
	Action   string `json:"action"`
}

func NewActivityRecordedEvent(userName, action string) *ActivityRecordedEvent {
	return &ActivityRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeActivityRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_name": userName,
				"action":    action,
			},
		},
		UserName: userName,
		Action:   action,
	}
}
