package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/persistence"
	"github.com/spec-kit/careers-portal/internal/repository"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// StatsService serves the dashboard tallies, caching them in Redis with a
// short TTL. Redis being down degrades to direct store queries.
type StatsService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	redis        *persistence.Redis
	ttl          time.Duration
	logger       *zap.Logger
}

// NewStatsService constructs the service.
func NewStatsService(jobs repository.JobRepository, applications repository.ApplicationRepository, redis *persistence.Redis, ttl time.Duration, logger *zap.Logger) *StatsService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &StatsService{
		jobs:         jobs,
		applications: applications,
		redis:        redis,
		ttl:          ttl,
		logger:       logger,
	}
}

// ActiveJobCount tallies the owner's ACTIVE postings.
func (s *StatsService) ActiveJobCount(ctx context.Context, ownerID string) (int, error) {
	key := jobCountKey(ownerID)
	if count, ok := s.cached(ctx, key); ok {
		return count, nil
	}

	count, err := s.jobs.CountActiveByOwner(ctx, ownerID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	s.store(ctx, key, count)
	return count, nil
}

// ApplicationCount tallies applications across the owner's postings,
// optionally filtered by status.
func (s *StatsService) ApplicationCount(ctx context.Context, ownerID string, status *domain.ApplicationStatus) (int, error) {
	key := applicationCountKey(ownerID, status)
	if count, ok := s.cached(ctx, key); ok {
		return count, nil
	}

	count, err := s.applications.CountByOwnerAndStatus(ctx, ownerID, status)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	s.store(ctx, key, count)
	return count, nil
}

// InvalidateOwner drops every cached tally for an owner after a mutation.
func (s *StatsService) InvalidateOwner(ctx context.Context, ownerID string) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	keys := []string{
		jobCountKey(ownerID),
		applicationCountKey(ownerID, nil),
	}
	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationStatusPending,
		domain.ApplicationStatusInterviewing,
		domain.ApplicationStatusAccepted,
		domain.ApplicationStatusRejected,
	} {
		st := status
		keys = append(keys, applicationCountKey(ownerID, &st))
	}
	if err := s.redis.Client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Debug("stats cache invalidate failed", zap.Error(err))
	}
}

func (s *StatsService) cached(ctx context.Context, key string) (int, bool) {
	if s.redis == nil || s.redis.Client == nil {
		return 0, false
	}
	val, err := s.redis.Client.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (s *StatsService) store(ctx context.Context, key string, count int) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	if err := s.redis.Client.Set(ctx, key, strconv.Itoa(count), s.ttl).Err(); err != nil {
		s.logger.Debug("stats cache store failed", zap.Error(err))
	}
}

func jobCountKey(ownerID string) string {
	return fmt.Sprintf("stats:jobs:active:%s", ownerID)
}

func applicationCountKey(ownerID string, status *domain.ApplicationStatus) string {
	if status == nil {
		return fmt.Sprintf("stats:applications:%s:all", ownerID)
	}
	return fmt.Sprintf("stats:applications:%s:%s", ownerID, *status)
}
