package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-backoffice/internal/bootstrap"
	"go-backoffice/internal/events"
	"go-backoffice/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const postingAuditGroup = "go-backoffice-audit"

// RunConsumer writes an audit entry for every posting lifecycle event until
// SIGINT/SIGTERM.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.PostingLifecycleTopic,
		GroupID:        postingAuditGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	consumer.ConsumePostingLifecycle(ctx, reader, bootstrap.NewStdoutAuditLogger(), logger)

	logger.Info("consumer shutting down")
	return nil
}
