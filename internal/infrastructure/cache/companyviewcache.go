// Package cache holds redis-backed read caches.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// CompanyViewCache stores assembled company view payloads so repeat reads
// of hot companies skip the facet fan-out. Values are opaque JSON; the
// cache never inspects them.
type CompanyViewCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewCompanyViewCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *CompanyViewCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CompanyViewCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CompanyViewCache) key(companyID uint) string {
	return fmt.Sprintf("companyview:%d", companyID)
}

// Get returns the cached payload and whether it was present. Cache errors
// degrade to a miss; the database is the source of truth.
func (c *CompanyViewCache) Get(ctx context.Context, companyID uint) ([]byte, bool) {
	payload, err := c.client.Get(ctx, c.key(companyID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("company view cache read failed", "company_id", companyID, "error", err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores a payload. Failures are logged and swallowed.
func (c *CompanyViewCache) Set(ctx context.Context, companyID uint, payload []byte) {
	if err := c.client.Set(ctx, c.key(companyID), payload, c.ttl).Err(); err != nil {
		c.logger.Warnw("company view cache write failed", "company_id", companyID, "error", err)
	}
}

// Invalidate drops the cached view after a company update.
func (c *CompanyViewCache) Invalidate(ctx context.Context, companyID uint) {
	if err := c.client.Del(ctx, c.key(companyID)).Err(); err != nil {
		c.logger.Warnw("company view cache invalidation failed", "company_id", companyID, "error", err)
	}
}
