// Package notify is the publish hook handlers use to announce item mutations.
// The real-time transport behind it is an external collaborator; the default
// implementation only records the event.
package notify

import (
	"context"
	"log/slog"
)

const (
	EventItemCreated = "item.created"
	EventItemUpdated = "item.updated"
	EventItemDeleted = "item.deleted"
)

// Notifier publishes an event with an arbitrary payload
type Notifier interface {
	Notify(ctx context.Context, event string, payload interface{})
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a Notifier that logs published events
func NewLogNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(_ context.Context, event string, payload interface{}) {
	n.logger.Info("event published", "event", event, "payload", payload)
}
