package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rpbazaar/backoffice/pkg/logger"
)

// Type enumerates the domain events published after a successful commit.
type Type string

const (
	TypeOrderCreated    Type = "order.created"
	TypeOrderCancelled  Type = "order.cancelled"
	TypePaymentRecorded Type = "payment.recorded"
	TypePaymentDeleted  Type = "payment.deleted"
	TypeExpenseRecorded Type = "expense.recorded"
)

// Event is the envelope handed to sinks. Events are emitted strictly after
// the owning transaction commits; a failed publish never affects the commit.
type Event struct {
	ID         string
	Type       Type
	OccurredAt time.Time
	Data       any
}

// Notifier receives post-commit events. Implementations must not block the
// request path for long and must never return control-flow errors upward.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// LogNotifier writes each event to the structured log. It is the default
// sink; a broadcast transport can replace it without touching the services.
type LogNotifier struct {
	logg *logger.Logger
}

// NewLogNotifier builds the logging sink.
func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, event Event) {
	if n == nil || n.logg == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	fields := map[string]any{
		"event_id":   event.ID,
		"event_type": string(event.Type),
		"payload":    event.Data,
	}
	n.logg.Info(n.logg.WithFields(ctx, fields), "event published")
}

// NopNotifier discards events; used where no sink is wired.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, Event) {}
