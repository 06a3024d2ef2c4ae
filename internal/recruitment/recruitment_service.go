package recruitment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go-backoffice/internal/events"
	"go-backoffice/internal/messaging/kafka"
	recruitmenterrors "go-backoffice/internal/recruitment/errors"
	"go-backoffice/internal/shared/apperror"
	"go-backoffice/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	PostingsAllKeyPrefix = "postings:all:"
	PostingsGenKeyPrefix = "postings:gen:"
)

// GetPostingsAllKey is the redis key of the list snapshot taken at
// generation gen.
func GetPostingsAllKey(list string, gen int64) string {
	return fmt.Sprintf("%s%s:%d", PostingsAllKeyPrefix, list, gen)
}

// GetPostingsGenerationKey holds the list generation. Every committed
// mutation increments it, so snapshots of earlier generations are never read
// again and simply expire.
func GetPostingsGenerationKey(list string) string {
	return PostingsGenKeyPrefix + list
}

// CacheConfig controls the list snapshot cache. A zero TTL disables it.
type CacheConfig struct {
	List string
	TTL  time.Duration
}

//go:generate mockgen -source=recruitment_service.go -destination=mock/recruitment_service_mock.go -package=mock
type Service interface {
	ListAll(ctx context.Context) ([]Posting, error)
	Create(ctx context.Context, p Posting) error
	Update(ctx context.Context, p Posting) error
	Delete(ctx context.Context, id int) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	cache  CacheConfig
	sf     *singleflight.Group
	// gen counts mutations committed through this service. Reads started
	// under an older value never serve or cache a later caller.
	gen    atomic.Int64
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, cache CacheConfig, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, cache, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	cache CacheConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("recruitment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.service")
	}
	if cache.List == "" {
		cache.List = DefaultListName
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		cache:  cache,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// log returns the request logger set by middleware.ContextLogger, falling
// back to the service logger.
func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) cacheEnabled() bool {
	return s.rdb != nil && s.cache.TTL > 0
}

// sharedGeneration reads the list generation from redis. ok is false when
// the cache is disabled or unreachable.
func (s *service) sharedGeneration(ctx context.Context) (gen int64, ok bool) {
	if !s.cacheEnabled() {
		return 0, false
	}
	gen, err := s.rdb.Get(ctx, GetPostingsGenerationKey(s.cache.List)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		s.log(ctx).Warn("read postings generation failed", zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (s *service) ListAll(ctx context.Context) ([]Posting, error) {
	local := s.gen.Load()
	shared, cached := s.sharedGeneration(ctx)
	cacheKey := GetPostingsAllKey(s.cache.List, shared)

	if cached {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var postings []Posting
			if json.Unmarshal([]byte(raw), &postings) == nil {
				return postings, nil
			}
		}
	}

	flightKey := fmt.Sprintf("%s@%d", cacheKey, local)
	v, err, _ := s.sf.Do(flightKey, func() (interface{}, error) {
		postings, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}

		// A mutation committed while reading makes this snapshot stale.
		if cached && s.gen.Load() == local {
			if jsonData, err := json.Marshal(postings); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, s.cache.TTL).Err(); err != nil {
					s.log(ctx).Warn("cache postings snapshot failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return postings, nil
	})
	if err != nil {
		s.log(ctx).Error("list postings failed", zap.Error(err))
		return nil, err
	}

	return v.([]Posting), nil
}

func (s *service) Create(ctx context.Context, p Posting) error {
	l := s.log(ctx)
	l.Debug("create posting requested",
		zap.String("offre_title", p.OfferTitle),
		zap.String("city", string(p.City)),
	)

	if err := validateFields(p); err != nil {
		return err
	}
	p.ID = 0

	err := s.inTx(ctx, recruitmenterrors.ErrCreateFailed, func(tx *sql.Tx) error {
		if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
			return err
		}
		return s.enqueue(ctx, tx, events.PostingCreated, p)
	})
	if err != nil {
		l.Error("create posting failed", zap.Error(err))
		return err
	}

	s.invalidate(ctx)
	l.Info("create posting success")
	return nil
}

func (s *service) Update(ctx context.Context, p Posting) error {
	l := s.log(ctx)
	l.Debug("update posting requested", zap.Int("posting_id", p.ID))

	if !p.Persisted() {
		return recruitmenterrors.ErrMissingID
	}
	if err := validateFields(p); err != nil {
		return err
	}

	err := s.inTx(ctx, recruitmenterrors.ErrUpdateFailed, func(tx *sql.Tx) error {
		if err := s.repo.WithTx(tx).Update(ctx, p); err != nil {
			return err
		}
		return s.enqueue(ctx, tx, events.PostingUpdated, p)
	})
	if err != nil {
		l.Error("update posting failed", zap.Int("posting_id", p.ID), zap.Error(err))
		return err
	}

	s.invalidate(ctx)
	l.Info("update posting success", zap.Int("posting_id", p.ID))
	return nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	l := s.log(ctx)
	l.Debug("delete posting requested", zap.Int("posting_id", id))

	if id <= 0 {
		return recruitmenterrors.ErrInvalidPostingID
	}

	err := s.inTx(ctx, recruitmenterrors.ErrDeleteFailed, func(tx *sql.Tx) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.enqueue(ctx, tx, events.PostingDeleted, Posting{ID: id})
	})
	if err != nil {
		l.Error("delete posting failed", zap.Int("posting_id", id), zap.Error(err))
		return err
	}

	s.invalidate(ctx)
	l.Info("delete posting success", zap.Int("posting_id", id))
	return nil
}

// inTx runs fn in a transaction. Begin, commit and outbox failures are
// reported as kind, the store failure kind of the calling operation.
func (s *service) inTx(ctx context.Context, kind *apperror.AppError, fn func(tx *sql.Tx) error) error {
	if s.db == nil {
		return fn(nil)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return kind.WithErr(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return kind.WithErr(err)
	}

	if err := tx.Commit(); err != nil {
		return kind.WithErr(fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, p Posting) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.PostingLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		List:       s.cache.List,
		PostingID:  p.ID,
		OccurredAt: time.Now().UTC(),
	}
	if eventType != events.PostingDeleted {
		event.OfferTitle = p.OfferTitle
		event.City = string(p.City)
		event.Deadline = p.Deadline.Format(DateLayout)
		event.AttachmentName = p.AttachmentName
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	id := uuid.NewString()
	aggregateID := id
	if p.Persisted() {
		aggregateID = strconv.Itoa(p.ID)
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            id,
		RequestID:     rid,
		AggregateType: "posting",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         events.PostingLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return fmt.Errorf("persist %s outbox event: %w", eventType, err)
	}
	return nil
}

// invalidate moves the list to a new generation. Other processes sharing
// redis see it through the generation key.
func (s *service) invalidate(ctx context.Context) {
	s.gen.Add(1)
	if s.rdb == nil {
		return
	}
	genKey := GetPostingsGenerationKey(s.cache.List)
	if err := s.rdb.Incr(ctx, genKey).Err(); err != nil {
		s.log(ctx).Error("failed to bump postings generation",
			zap.Error(err),
			zap.String("key", genKey),
		)
	}
}

// validateFields checks presence of the five business fields and the city set.
func validateFields(p Posting) error {
	if missing := p.MissingFields(); len(missing) > 0 {
		return recruitmenterrors.ErrMissingRequiredFields.WithErr(
			fmt.Errorf("missing %s", strings.Join(missing, ", ")),
		)
	}
	if !p.City.Valid() {
		return recruitmenterrors.ErrInvalidCity.WithErr(fmt.Errorf("got %q", p.City))
	}
	return nil
}
