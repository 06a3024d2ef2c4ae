package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-backoffice/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	event := kafka.OutboxEvent{
		ID:            "evt-1",
		RequestID:     "rid-1",
		AggregateType: "posting",
		AggregateID:   "3",
		EventType:     "posting_updated",
		Topic:         "backoffice.recruitment.posting.v1",
		Payload:       []byte(`{"posting_id":3}`),
		Status:        kafka.OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO outbox_events`)).
		WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID,
			event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	err = kafka.NewOutboxRepository(db).Create(context.Background(), kafka.OutboxEvent{ID: "evt-1"})

	assert.EqualError(t, err, "outbox topic is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, request_id, aggregate_type, aggregate_id, event_type, `+
		`topic, payload, status, retry_count, COALESCE(next_retry_at, created_at) FROM outbox_events `+
		`WHERE status IN ($1, $2) AND retry_count < $3 `+
		`AND (next_retry_at IS NULL OR next_retry_at <= NOW()) ORDER BY created_at ASC LIMIT $4`)).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "request_id", "aggregate_type", "aggregate_id", "event_type",
			"topic", "payload", "status", "retry_count", "next_retry_at",
		}).AddRow("evt-1", "rid-1", "posting", "3", "posting_deleted",
			"backoffice.recruitment.posting.v1", []byte(`{}`), kafka.OutboxStatusPending, 0, now))

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "rid-1", events[0].RequestID)
	assert.Equal(t, "3", events[0].AggregateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "1", Topic: "t", Payload: []byte("x"), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	bad := valid
	bad.Status = "queued"
	assert.EqualError(t, kafka.ValidateOutboxEvent(bad), "invalid outbox status: queued")
}
