package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis hash key and field names for the shared usage counters.
const (
	redisKey          = "poresight:usage"
	redisFieldCount   = "total_analysis_count"
	redisFieldCPUTime = "cpu_time_seconds"
	redisFieldUpdated = "last_updated"
)

// RedisStore persists usage counters in a Redis hash so several analyzer
// processes can share them. Increments are atomic per field.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed recorder against addr.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Record implements Recorder.
func (r *RedisStore) Record(ctx context.Context, elapsed time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, redisKey, redisFieldCount, 1)
	pipe.HIncrByFloat(ctx, redisKey, redisFieldCPUTime, elapsed.Seconds())
	pipe.HSet(ctx, redisKey, redisFieldUpdated, time.Now().UTC().Format(time.RFC3339Nano))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record usage in redis: %w", err)
	}
	return nil
}

// Snapshot implements Recorder.
func (r *RedisStore) Snapshot(ctx context.Context) (Usage, error) {
	fields, err := r.client.HGetAll(ctx, redisKey).Result()
	if err != nil {
		return Usage{}, fmt.Errorf("read usage from redis: %w", err)
	}
	var usage Usage
	if v, ok := fields[redisFieldCount]; ok {
		usage.TotalAnalysisCount, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := fields[redisFieldCPUTime]; ok {
		usage.CPUTimeSeconds, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := fields[redisFieldUpdated]; ok {
		usage.LastUpdated, _ = time.Parse(time.RFC3339Nano, v)
	}
	return usage, nil
}

// Close releases the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
