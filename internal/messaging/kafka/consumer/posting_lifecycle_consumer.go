package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-backoffice/internal/bootstrap"
	"go-backoffice/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumePostingLifecycle turns posting events into audit entries until ctx
// is done. Undecodable messages are committed and skipped.
func ConsumePostingLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.posting_lifecycle")
	log.Info("posting lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("posting lifecycle consumer stopped")
				return
			}
			log.Error("fetch posting lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.PostingLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode posting lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		audit.Log(ctx, auditEntry(event))

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit posting lifecycle message failed", zap.Error(err))
			continue
		}
	}
}

func auditEntry(event events.PostingLifecycleEvent) bootstrap.AuditLog {
	var message string
	switch event.EventType {
	case events.PostingCreated:
		message = fmt.Sprintf("internal recruitment %q created", event.OfferTitle)
	case events.PostingUpdated:
		message = fmt.Sprintf("internal recruitment %d updated", event.PostingID)
	case events.PostingDeleted:
		message = fmt.Sprintf("internal recruitment %d deleted", event.PostingID)
	default:
		message = "unknown internal recruitment event " + event.EventType
	}

	meta := map[string]any{
		"list":        event.List,
		"occurred_at": event.OccurredAt,
	}
	if event.PostingID != 0 {
		meta["posting_id"] = event.PostingID
	}
	if event.City != "" {
		meta["city"] = event.City
	}
	if event.Deadline != "" {
		meta["deadline"] = event.Deadline
	}

	return bootstrap.AuditLog{
		Action:    strings.ToUpper(event.EventType),
		Message:   message,
		RequestID: event.RequestID,
		Meta:      meta,
	}
}
