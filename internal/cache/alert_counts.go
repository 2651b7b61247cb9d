package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"ferrybackend/internal/config"
)

// NewRedisClient creates a Redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	return client, nil
}

// AlertCounts is the cached active/notified tally for one owner, so list
// screens do not re-derive it from the store on every render.
type AlertCounts struct {
	Active   int `json:"active"`
	Notified int `json:"notified"`
}

// AlertCountCache keeps per-owner alert counters in Redis. Every lifecycle
// transition invalidates the owner's entry; a miss falls back to the store.
type AlertCountCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func countsKey(ownerEmail string) string {
	return "alerts:counts:" + ownerEmail
}

// Get returns the cached counts and whether the entry was present.
func (c AlertCountCache) Get(ctx context.Context, ownerEmail string) (AlertCounts, bool) {
	var counts AlertCounts
	if c.Client == nil {
		return counts, false
	}
	vals, err := c.Client.HGetAll(ctx, countsKey(ownerEmail)).Result()
	if err != nil || len(vals) == 0 {
		return counts, false
	}
	counts.Active, _ = strconv.Atoi(vals["active"])
	counts.Notified, _ = strconv.Atoi(vals["notified"])
	return counts, true
}

// Set stores the counts with the configured TTL.
func (c AlertCountCache) Set(ctx context.Context, ownerEmail string, counts AlertCounts) {
	if c.Client == nil {
		return
	}
	key := countsKey(ownerEmail)
	pipe := c.Client.TxPipeline()
	pipe.HSet(ctx, key, "active", counts.Active, "notified", counts.Notified)
	pipe.Expire(ctx, key, c.TTL)
	_, _ = pipe.Exec(ctx)
}

// Invalidate drops the owner's cached counts.
func (c AlertCountCache) Invalidate(ctx context.Context, ownerEmail string) {
	if c.Client == nil {
		return
	}
	_ = c.Client.Del(ctx, countsKey(ownerEmail)).Err()
}
