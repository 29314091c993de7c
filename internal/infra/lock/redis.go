package lock

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Negosyo-Digital/platform-backend/pkg/env"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects using env vars. A nil return means redis is not
// available and callers degrade to unguarded operation; the website upsert is
// keyed by submission id either way, so concurrent regenerations still
// converge last-write-wins.
func NewRedisClient() *redis.Client {
	addr := env.GetEnv("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: env.GetEnv("REDIS_PASSWORD", ""),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, generation locking disabled", "err", err)
		return nil
	}
	return client
}

// GenerationLock serializes website generation per submission. The TTL is the
// staleness timeout: a crashed or cancelled generation holds the lock at most
// this long before a new attempt may proceed.
type GenerationLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGenerationLock(client *redis.Client) *GenerationLock {
	ttlSeconds, err := strconv.Atoi(env.GetEnv("GENERATION_LOCK_TTL", "120"))
	if err != nil {
		ttlSeconds = 120
	}
	return &GenerationLock{client: client, ttl: time.Duration(ttlSeconds) * time.Second}
}

func (l *GenerationLock) Acquire(ctx context.Context, submissionID uint64) (func(), bool, error) {
	if l.client == nil {
		return func() {}, true, nil
	}
	key := fmt.Sprintf("generate:submission:%d", submissionID)
	ok, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("err acquiring generation lock, %v", err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		if err := l.client.Del(context.Background(), key).Err(); err != nil {
			slog.Warn("err releasing generation lock", "submissionID", submissionID, "err", err)
		}
	}
	return release, true, nil
}
