// Package rediscache wraps job.Repository with a Redis-backed cache of the job list.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/artem13815/jobboard/pkg/events"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/logger"
	"github.com/artem13815/jobboard/pkg/metrics"
)

const (
	jobsGenKey        = "jobboard:jobs:gen"
	jobsListKeyPrefix = "jobboard:jobs:list:"
)

// CachedJobs кэширует только List: вакансия и её список откликов меняются
// при публикации и отклике, после которых кэш сбрасывается по событию.
// Список хранится под ключом текущего поколения; сброс увеличивает поколение,
// поэтому список, прочитанный до сброса, записывается под старый ключ и уже не читается.
// Ошибки Redis не ломают чтение, запрос уходит в основной репозиторий.
type CachedJobs struct {
	repo   job.Repository
	client redis.UniversalClient
	ttl    time.Duration
}

func NewCachedJobs(repo job.Repository, client redis.UniversalClient, ttl time.Duration) *CachedJobs {
	return &CachedJobs{repo: repo, client: client, ttl: ttl}
}

func (c *CachedJobs) Create(ctx context.Context, j job.Job) error {
	if err := c.repo.Create(ctx, j); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

func (c *CachedJobs) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *CachedJobs) List(ctx context.Context) ([]job.Job, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("read jobs cache generation: %v", err)
		metrics.JobsCacheCounter.WithLabelValues("miss").Inc()
		return c.repo.List(ctx)
	}
	key := listKey(gen)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var jobs []job.Job
		if err := json.Unmarshal(raw, &jobs); err == nil {
			metrics.JobsCacheCounter.WithLabelValues("hit").Inc()
			return jobs, nil
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("decode cached jobs: %v", err)
	case errors.Is(err, redis.Nil):
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("read cached jobs: %v", err)
	}
	metrics.JobsCacheCounter.WithLabelValues("miss").Inc()

	jobs, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(jobs); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("store cached jobs: %v", err)
		}
	}
	return jobs, nil
}

// Invalidate starts a new cache generation; lists of older generations expire by TTL.
func (c *CachedJobs) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, jobsGenKey).Err(); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("invalidate cached jobs: %v", err)
	}
}

func (c *CachedJobs) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, jobsGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func listKey(gen int64) string {
	return jobsListKeyPrefix + strconv.FormatInt(gen, 10)
}

// Subscribe сбрасывает кэш при новых вакансиях и откликах.
func (c *CachedJobs) Subscribe(bus EventBus.Bus) error {
	if err := bus.Subscribe(events.TopicJobCreated, func(events.JobCreated) {
		c.Invalidate(context.Background())
	}); err != nil {
		return err
	}
	return bus.Subscribe(events.TopicApplicationSubmitted, func(events.ApplicationSubmitted) {
		c.Invalidate(context.Background())
	})
}
