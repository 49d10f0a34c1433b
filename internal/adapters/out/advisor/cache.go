package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "shipping:advisor:v1:"

// DefaultCacheTTL is used when NewCachedRecommender gets a non-positive ttl.
const DefaultCacheTTL = 6 * time.Hour

type cachedRecommendation struct {
	Carrier   string `json:"carrier"`
	Reasoning string `json:"reasoning"`
}

// CachedRecommender keeps recommendations in Redis per destination. Redis failures
// degrade to calling the wrapped recommender; they are never returned.
type CachedRecommender struct {
	next   ports.AdvisoryRecommender
	rdb    goredis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRecommender wraps next with a Redis cache.
func NewCachedRecommender(
	next ports.AdvisoryRecommender,
	rdb goredis.Cmdable,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedRecommender {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedRecommender{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With("component", "advisor_cache"),
	}
}

// Recommend serves from the cache when possible. Failed lookups are not cached.
func (c *CachedRecommender) Recommend(ctx context.Context, city, department string) (shipment.Recommendation, error) {
	key := CacheKey(city, department)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedRecommendation
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return shipment.Recommendation{Carrier: cached.Carrier, Reasoning: cached.Reasoning}, nil
		}
		c.logger.WarnContext(ctx, "corrupt cache entry", "key", key)
	case !errors.Is(err, goredis.Nil):
		c.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	rec, err := c.next.Recommend(ctx, city, department)
	if err != nil {
		return shipment.Recommendation{}, err
	}

	payload, err := json.Marshal(cachedRecommendation{Carrier: rec.Carrier, Reasoning: rec.Reasoning})
	if err == nil {
		err = c.rdb.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}

	return rec, nil
}

// CacheKey is the Redis key for a destination. City and department are folded to
// lower case and trimmed so spelling variants of the same place share an entry.
func CacheKey(city, department string) string {
	return keyPrefix + normalize(city) + "|" + normalize(department)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
