// Package cache keeps archived reports in redis. Reports are immutable once
// written, so entries are never invalidated, only expired.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/yunta/internal/domain"
	customError "github.com/segyhp/yunta/pkg/errors"
)

const keyPrefix = "yunta:report:"

// ReportCache stores final reports by junta id
type ReportCache interface {
	Get(ctx context.Context, juntaID uuid.UUID) (*domain.FinalReport, bool, error)
	Set(ctx context.Context, report *domain.FinalReport) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache caches reports for ttl. A zero ttl keeps them forever.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	return &redisReportCache{client: client, ttl: ttl}
}

func reportKey(juntaID uuid.UUID) string {
	return keyPrefix + juntaID.String()
}

func (c *redisReportCache) Get(ctx context.Context, juntaID uuid.UUID) (*domain.FinalReport, bool, error) {
	raw, err := c.client.Get(ctx, reportKey(juntaID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, customError.WrapCacheError(fmt.Errorf("redis get: %w", err))
	}

	var report domain.FinalReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, customError.WrapCacheError(fmt.Errorf("decode cached report: %w", err))
	}
	return &report, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, report *domain.FinalReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return customError.WrapCacheError(fmt.Errorf("encode report: %w", err))
	}
	if err := c.client.Set(ctx, reportKey(report.JuntaID), raw, c.ttl).Err(); err != nil {
		return customError.WrapCacheError(fmt.Errorf("redis set: %w", err))
	}
	return nil
}

type noopReportCache struct{}

// NewNoopReportCache never hits. Used when redis is not configured.
func NewNoopReportCache() ReportCache {
	return noopReportCache{}
}

func (noopReportCache) Get(context.Context, uuid.UUID) (*domain.FinalReport, bool, error) {
	return nil, false, nil
}

func (noopReportCache) Set(context.Context, *domain.FinalReport) error {
	return nil
}
