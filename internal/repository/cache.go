package repo

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sgf_review/internal/domain"
)

const cacheTTL = 30 * 24 * time.Hour

// AnalysisCache keeps finished response streams in Redis keyed by the md5 of
// the canonical record text, so re-analysis of a known record skips the
// engine entirely.
type AnalysisCache struct {
	redis *redis.Client
	log   *zap.SugaredLogger
}

func NewAnalysisCache(client *redis.Client, log *zap.SugaredLogger) *AnalysisCache {
	return &AnalysisCache{redis: client, log: log}
}

func cacheKey(canonical string) string {
	sum := md5.Sum([]byte(canonical))
	return "review:" + hex.EncodeToString(sum[:])
}

// Save stores the response stream for a canonical record.
func (c *AnalysisCache) Save(ctx context.Context, canonical string, responses []domain.Response) error {
	payload, err := json.Marshal(responses)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, cacheKey(canonical), payload, cacheTTL).Err()
}

// Load fetches a cached response stream. found is false on a miss.
func (c *AnalysisCache) Load(ctx context.Context, canonical string) (responses []domain.Response, found bool, err error) {
	val, err := c.redis.Get(ctx, cacheKey(canonical)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal([]byte(val), &responses); err != nil {
		// A stale or corrupt entry is a miss, not a failure.
		c.log.Warnw("dropping undecodable cache entry", "error", err)
		return nil, false, nil
	}
	return responses, true, nil
}
